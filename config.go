package workerpool

import (
	"fmt"

	"github.com/tessen-dev/go-worker-pool/core"
)

// Config tunes optional pool behavior. The zero value matches the reference
// semantics: unbounded queue, log-and-continue panic policy, no metrics.
type Config struct {
	// ID names the pool on metrics and log lines. Defaults to "pool".
	ID string

	// QueueLimit bounds the task queue when > 0. Submit then fails with
	// ErrQueueFull once the limit is reached instead of blocking.
	// 0 keeps the queue unbounded.
	QueueLimit int

	// PanicHandler receives task panics. Defaults to logging via Logger.
	PanicHandler core.PanicHandler

	// Metrics receives execution metrics. Defaults to a no-op.
	Metrics core.Metrics

	// RejectedTaskHandler receives rejected submissions. Defaults to logging.
	RejectedTaskHandler core.RejectedTaskHandler

	// Logger backs the default handlers above. Defaults to the standard
	// log package.
	Logger core.Logger
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.QueueLimit < 0 {
		return fmt.Errorf("queue limit must be >= 0, got %d", c.QueueLimit)
	}
	return nil
}

func (c *Config) dispatcherConfig() *core.DispatcherConfig {
	logger := c.Logger
	if logger == nil {
		logger = core.NewDefaultLogger()
	}

	dc := &core.DispatcherConfig{
		QueueLimit:          c.QueueLimit,
		PanicHandler:        c.PanicHandler,
		Metrics:             c.Metrics,
		RejectedTaskHandler: c.RejectedTaskHandler,
	}
	if dc.PanicHandler == nil {
		dc.PanicHandler = &core.DefaultPanicHandler{Logger: logger}
	}
	if dc.RejectedTaskHandler == nil {
		dc.RejectedTaskHandler = &core.DefaultRejectedTaskHandler{Logger: logger}
	}
	return dc
}
