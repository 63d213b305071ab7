package store

import (
	"fmt"
	"time"
)

// Config contains document store configuration.
type Config struct {
	// Path is the sqlite database file; ":memory:" for an in-memory store.
	Path string `yaml:"path" mapstructure:"path"`
	// MaxRetries bounds connection attempts at startup.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
	// RetryInterval is the pause between connection attempts.
	RetryInterval time.Duration `yaml:"retry_interval" mapstructure:"retry_interval"`
	// LogLevel controls gorm statement logging: silent, error, warn, info.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// ApplyDefaults applies default values to store configuration.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "duoguard.db"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate validates store configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "silent", "error", "warn", "info":
		return nil
	default:
		return fmt.Errorf("store.log_level must be one of [silent, error, warn, info] (got: %s)", c.LogLevel)
	}
}
