// Package benchconfig loads configuration for the poolbench driver from
// YAML or JSON files, with defaults matching the reference benchmark
// (8 workers, 100000 tasks, 100 warm-up tasks).
package benchconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the benchmark parameters.
type Config struct {
	Workers     int    `yaml:"workers" json:"workers"`
	Tasks       int    `yaml:"tasks" json:"tasks"`
	WarmupTasks int    `yaml:"warmup_tasks" json:"warmup_tasks"`
	QueueLimit  int    `yaml:"queue_limit" json:"queue_limit"`
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`
}

// Default returns the reference benchmark parameters.
func Default() Config {
	return Config{
		Workers:     8,
		Tasks:       100000,
		WarmupTasks: 100,
	}
}

// LoadFile reads a YAML or JSON config file. Unset fields keep their
// defaults.
func LoadFile(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return config, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return config, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return config, fmt.Errorf("unsupported config format: %s", ext)
	}

	config.merge(file)
	return config, nil
}

func (c *Config) merge(other Config) {
	if other.Workers > 0 {
		c.Workers = other.Workers
	}
	if other.Tasks > 0 {
		c.Tasks = other.Tasks
	}
	if other.WarmupTasks > 0 {
		c.WarmupTasks = other.WarmupTasks
	}
	if other.QueueLimit > 0 {
		c.QueueLimit = other.QueueLimit
	}
	if other.MetricsAddr != "" {
		c.MetricsAddr = other.MetricsAddr
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Tasks <= 0 {
		return fmt.Errorf("tasks must be positive, got %d", c.Tasks)
	}
	if c.WarmupTasks < 0 {
		return fmt.Errorf("warmup_tasks must be >= 0, got %d", c.WarmupTasks)
	}
	return nil
}
