package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Unknown secret modes and wire codecs panic like any other malformed flag.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-m", "-l", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SecretMode, "m", cfg.SecretMode, "secret mode (argon2 or decimal)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.WireCodec, "w", cfg.WireCodec, "wire codec (proto or cbor)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	switch cfg.SecretMode {
	case SecretModeArgon2, SecretModeDecimal:
	default:
		panic(fmt.Sprintf("unknown secret mode %q", cfg.SecretMode))
	}

	switch cfg.WireCodec {
	case WireCodecProto, WireCodecCBOR:
	default:
		panic(fmt.Sprintf("unknown wire codec %q", cfg.WireCodec))
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
