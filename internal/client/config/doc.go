// Package config loads runtime configuration for the prover CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the verifier gRPC endpoint
//	-t int      per-request timeout (seconds)
//	-m string   secret mode: argon2 or decimal
//	-l string   log level
//	-w string   wire codec: proto (default) or cbor
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s",
//	  "secret_mode": "argon2",
//	  "log_level": "warn",
//	  "wire_codec": "proto"
//	}
//
// Environment variables are not consulted.
package config
