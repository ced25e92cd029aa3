package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/zkpauth/internal/client/client"
	"github.com/dmitrijs2005/zkpauth/internal/client/config"
	"github.com/dmitrijs2005/zkpauth/internal/client/prover"
	"github.com/dmitrijs2005/zkpauth/internal/client/services"
	"github.com/dmitrijs2005/zkpauth/internal/flagx"
	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	userName    string
	sessionID   string
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := logging.New(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	params := zkp.DefaultParams()
	secret, err := services.SecretFor(c.SecretMode, params.Q)
	if err != nil {
		return nil, err
	}

	apiClient, err := client.NewAuthClient(c.ServerEndpointAddr, c.RequestTimeout, c.WireCodec)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(apiClient, prover.New(params), secret)

	return &App{
		config:      c,
		authService: as,
		logger:      logger.With("module", "cli"),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run executes a single command taken from args, or starts the REPL when
// args name no command. Global flags (-a, -t, -m, -l, -c) may appear
// anywhere and are ignored here.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.authService.Close(ctx)

	cmd, rest := flagx.SplitCommand(args)
	if cmd == "" {
		a.Root(ctx)
		return nil
	}

	user, err := parseUser(cmd, rest)
	if err != nil {
		return err
	}

	switch cmd {
	case "register":
		return a.Register(ctx, user)
	case "login":
		return a.Login(ctx, user)
	default:
		return fmt.Errorf("unknown command %q (want register or login)", cmd)
	}
}

func parseUser(cmd string, args []string) (string, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	user := fs.String("u", "", "user id")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u"})); err != nil {
		return "", err
	}
	return *user, nil
}

func (a *App) isLoggedIn() bool {
	return a.sessionID != ""
}
