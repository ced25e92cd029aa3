package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-d", "postgres://db", "-n", "24", "-l", "debug", "-t", "9"},
			expected: &Config{
				EndpointAddrGRPC: "127.0.0.1:9090",
				DatabaseDSN:      "postgres://db",
				IdentifierLength: 24,
				LogLevel:         "debug",
				ShutdownTimeout:  9 * time.Second,
			},
		},
		{
			name: "unknown flags ignored",
			args: []string{"cmd", "-x", "1", "-a", ":7000"},
			expected: &Config{
				EndpointAddrGRPC: ":7000",
				IdentifierLength: 16,
				LogLevel:         "info",
				ShutdownTimeout:  5 * time.Second,
			},
		},
		{name: "bad identifier length", args: []string{"cmd", "-n", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			config.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
