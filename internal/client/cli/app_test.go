package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/zkpauth/internal/client/config"
	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/stretchr/testify/require"
)

func newTestApp(f *fakeAuth, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService: f,
		logger:      logging.Nop(),
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         &out,
	}, &out
}

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	require.False(t, app.isLoggedIn())

	app.sessionID = "abc"
	require.True(t, app.isLoggedIn())
}

func TestParseUser(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-u", "alice"}, "alice"},
		{"equals", []string{"-u=bob"}, "bob"},
		{"mixed with globals", []string{"-a", "localhost:1", "-u", "carol", "-m", "decimal"}, "carol"},
		{"absent", []string{"-a", "localhost:1"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUser("login", tt.args)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRun_LoginCommand(t *testing.T) {
	restore := stubPassword(t, []byte("123456789"))
	defer restore()

	f := &fakeAuth{loginSID: "SID42"}
	a, out := newTestApp(f, "")

	err := a.Run(context.Background(), []string{"login", "-u", "user123"})
	require.NoError(t, err)
	require.Equal(t, "user123", f.loginUser)
	require.Contains(t, out.String(), "SessionID=SID42\n")
	require.True(t, f.closed)
}

func TestRun_RegisterCommand(t *testing.T) {
	restore := stubPassword(t, []byte("pw"))
	defer restore()

	f := &fakeAuth{}
	a, out := newTestApp(f, "")

	require.NoError(t, a.Run(context.Background(), []string{"register", "-u", "user123"}))
	require.Equal(t, "user123", f.regUser)
	require.Contains(t, out.String(), "Success!")
}

func TestRun_UnknownCommand(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f, "")

	err := a.Run(context.Background(), []string{"whoami"})
	require.ErrorContains(t, err, "unknown command")
	require.True(t, f.closed)
}

func TestRun_NoCommandStartsREPL(t *testing.T) {
	silencePrintln(t)

	f := &fakeAuth{}
	a, _ := newTestApp(f, "help\nexit\n")

	require.NoError(t, a.Run(context.Background(), nil))
	require.True(t, f.closed)
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app.authService)
	require.NoError(t, app.authService.Close(context.Background()))
}

func TestNewApp_BadSecretMode(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretMode = "plain"

	_, err := NewApp(cfg)
	require.Error(t, err)
}

func TestNewApp_BadLogLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.LogLevel = "loud"

	_, err := NewApp(cfg)
	require.Error(t, err)
}
