// Package config loads and validates dataport configuration from defaults,
// an optional dataport.yaml, DATAPORT_-prefixed environment variables and
// CLI flags, in ascending precedence.
package config

import (
	"fmt"

	"github.com/leapstack-labs/dataport/pkg/adapter"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// Defaults applied before any other configuration source.
const (
	DefaultType      = "postgres"
	DefaultHost      = "localhost"
	DefaultPort      = 5432
	DefaultSchema    = "public"
	DefaultBatchSize = 1000
	DefaultOutput    = "table"
)

// Config is the resolved dataport configuration.
type Config struct {
	// Target connection.
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Schema   string            `koanf:"schema"`
	Options  map[string]string `koanf:"options"`

	// Behavior.
	BatchSize int    `koanf:"batch_size"`
	Verbose   bool   `koanf:"verbose"`
	Output    string `koanf:"output"`
}

// Validate checks the configuration before any connection is attempted.
// Failures are configuration errors, raised fail-fast.
func (c *Config) Validate() error {
	if c.Type == "" {
		return dberr.Newf(dberr.KindConfiguration, "target type is required")
	}
	if !adapter.IsRegistered(c.Type) {
		return dberr.Newf(dberr.KindConfiguration,
			"unsupported target type %q (supported: %v)", c.Type, adapter.List())
	}

	switch c.Type {
	case "postgres":
		if c.Database == "" {
			return dberr.Newf(dberr.KindConfiguration, "postgres target requires a database name")
		}
		if c.User == "" {
			return dberr.Newf(dberr.KindConfiguration, "postgres target requires a user")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return dberr.Newf(dberr.KindConfiguration, "invalid port %d", c.Port)
		}
	}

	if c.BatchSize <= 0 {
		return dberr.Newf(dberr.KindConfiguration, "batch_size must be positive, got %d", c.BatchSize)
	}

	switch c.Output {
	case "table", "json", "csv", "markdown":
	default:
		return dberr.Newf(dberr.KindConfiguration,
			"invalid output format %q (supported: table, json, csv, markdown)", c.Output)
	}

	return nil
}

// ToAdapterConfig converts the resolved configuration into the adapter's
// connection parameters.
func (c *Config) ToAdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     c.Type,
		Path:     c.Path,
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Database,
		Username: c.User,
		Password: c.Password,
		Schema:   c.Schema,
		Options:  c.Options,
	}
}

// String renders the configuration with the password masked.
func (c *Config) String() string {
	pw := ""
	if c.Password != "" {
		pw = "****"
	}
	return fmt.Sprintf("type=%s host=%s port=%d database=%s user=%s password=%s schema=%s",
		c.Type, c.Host, c.Port, c.Database, c.User, pw, c.Schema)
}
