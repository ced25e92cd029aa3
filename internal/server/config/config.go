// Package config handles configuration for the verifier server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the verifier server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - IdentifierLength: length of issued auth_ids and session ids.
//   - LogLevel: one of debug, info, warn, error.
//   - ShutdownTimeout: how long graceful stop may take before a hard stop.
type Config struct {
	EndpointAddrGRPC string
	DatabaseDSN      string
	IdentifierLength int
	LogLevel         string
	ShutdownTimeout  time.Duration
}

// MinIdentifierLength is the shortest identifier the server will issue.
const MinIdentifierLength = 6

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.IdentifierLength = 16
	c.LogLevel = "info"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
// Identifier lengths below MinIdentifierLength are raised to it.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	if cfg.IdentifierLength < MinIdentifierLength {
		cfg.IdentifierLength = MinIdentifierLength
	}
	return cfg
}
