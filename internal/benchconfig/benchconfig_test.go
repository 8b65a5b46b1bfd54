package benchconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Tasks != 100000 {
		t.Errorf("Tasks = %d, want 100000", cfg.Tasks)
	}
	if cfg.WarmupTasks != 100 {
		t.Errorf("WarmupTasks = %d, want 100", cfg.WarmupTasks)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "bench.yaml", `
workers: 4
tasks: 500
metrics_addr: ":9090"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Tasks != 500 {
		t.Errorf("Tasks = %d, want 500", cfg.Tasks)
	}
	// Unset fields keep defaults
	if cfg.WarmupTasks != 100 {
		t.Errorf("WarmupTasks = %d, want default 100", cfg.WarmupTasks)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want %q", cfg.MetricsAddr, ":9090")
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "bench.json", `{"workers": 2, "queue_limit": 50}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.QueueLimit != 50 {
		t.Errorf("QueueLimit = %d, want 50", cfg.QueueLimit)
	}
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	path := writeTempConfig(t, "bench.toml", `workers = 4`)

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile should fail for unsupported format")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile should fail for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Workers: 1, Tasks: 1}, false},
		{"zero workers", Config{Workers: 0, Tasks: 1}, true},
		{"zero tasks", Config{Workers: 1, Tasks: 0}, true},
		{"negative warmup", Config{Workers: 1, Tasks: 1, WarmupTasks: -1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
