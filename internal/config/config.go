// Package config loads tool configuration from an HCL file.
//
// All blocks and attributes are optional; anything unset falls back to a
// default. A full file looks like:
//
//	database {
//	  busy_timeout_ms = 5000
//	  journal_mode    = "wal"
//	  read_only       = false
//	}
//
//	export {
//	  dir = "exports"
//	}
//
//	log {
//	  level  = "info"
//	  format = "text"
//	}
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the root of the configuration file.
type Config struct {
	Database *DatabaseConfig `hcl:"database,block"`
	Export   *ExportConfig   `hcl:"export,block"`
	Log      *LogConfig      `hcl:"log,block"`
}

// DatabaseConfig tunes how database files are opened.
type DatabaseConfig struct {
	// BusyTimeoutMS is the busy_timeout pragma in milliseconds. Unset or
	// zero applies the 5000 ms default; negative disables the pragma.
	BusyTimeoutMS int `hcl:"busy_timeout_ms,optional"`
	// JournalMode is applied as a journal_mode pragma when non-empty.
	JournalMode string `hcl:"journal_mode,optional"`
	// ReadOnly opens every database read-only.
	ReadOnly bool `hcl:"read_only,optional"`
}

// ExportConfig tunes where exported files land.
type ExportConfig struct {
	Dir string `hcl:"dir,optional"`
}

// LogConfig tunes the global logger.
type LogConfig struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads an HCL configuration file (the name must end in .hcl or
// .json) and fills defaults for anything the file leaves unset.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = 5000
	}
	if c.Export == nil {
		c.Export = &ExportConfig{}
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "exports"
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Timeout returns the busy timeout as a duration, or zero when disabled.
func (d *DatabaseConfig) Timeout() time.Duration {
	if d.BusyTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(d.BusyTimeoutMS) * time.Millisecond
}
