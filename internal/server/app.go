// Package server initializes and runs the verifier: it selects the session
// store, builds the authentication service, serves gRPC and shuts down
// gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/dmitrijs2005/zkpauth/internal/server/config"
	"github.com/dmitrijs2005/zkpauth/internal/server/services"
	"github.com/dmitrijs2005/zkpauth/internal/server/store"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"

	gs "github.com/dmitrijs2005/zkpauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       store.Store
	authService *services.AuthService
}

// openStore is a test seam for store selection.
var openStore = func(ctx context.Context, c *config.Config) (store.Store, error) {
	if c.DatabaseDSN == "" {
		return store.NewMemoryStore(), nil
	}
	return store.OpenPostgres(ctx, c.DatabaseDSN)
}

// NewApp builds the App from c, logging JSON to w. A non-empty DatabaseDSN
// selects PostgreSQL (migrations are applied), otherwise state is kept in
// memory.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger, err := logging.New(w, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	st, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	as := services.NewAuthService(st, zkp.DefaultParams(), c.IdentifierLength, logger)

	return &App{config: c, logger: logger, store: st, authService: as}, nil
}

func (app *App) startGRPCServer(ctx context.Context) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService, app.config.ShutdownTimeout)
	return s.Run(ctx)
}

// Run serves until ctx is done or a termination signal arrives, then closes
// the store.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storeKind := "memory"
	if app.config.DatabaseDSN != "" {
		storeKind = "postgres"
	}
	app.logger.Info(ctx, "Starting app...", "store", storeKind)

	// Run blocks until the listener fails or shutdown has drained in-flight
	// calls, so the store is closed only once nothing can reach it.
	err := app.startGRPCServer(ctx)
	if err != nil {
		app.logger.Error(ctx, "server error", "error", err)
	}

	if cerr := app.store.Close(); cerr != nil {
		app.logger.Error(ctx, "store close error", "error", cerr)
		if err == nil {
			err = cerr
		}
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}

// Main loads configuration and runs the server until it is signalled.
func Main() error {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
