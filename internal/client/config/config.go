package config

import "time"

// Secret derivation modes.
const (
	SecretModeArgon2  = "argon2"
	SecretModeDecimal = "decimal"
)

// Wire encodings understood by the server.
const (
	WireCodecProto = "proto"
	WireCodecCBOR  = "cbor"
)

// Config holds runtime settings for the prover CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the verifier gRPC endpoint.
//   - RequestTimeout: deadline applied to each RPC.
//   - SecretMode: how the password becomes the secret x (argon2 or decimal).
//   - LogLevel: one of debug, info, warn, error.
//   - WireCodec: message encoding on the wire (proto or cbor).
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	SecretMode         string
	LogLevel           string
	WireCodec          string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.SecretMode = SecretModeArgon2
	c.LogLevel = "warn"
	c.WireCodec = WireCodecProto
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
