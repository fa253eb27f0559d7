// Package server wires the credential subsystem together and runs the HTTP
// and gRPC listeners until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/walletkeeper/internal/cryptox"
	"github.com/dmitrijs2005/walletkeeper/internal/logging"
	"github.com/dmitrijs2005/walletkeeper/internal/server/auth"
	"github.com/dmitrijs2005/walletkeeper/internal/server/config"
	"github.com/dmitrijs2005/walletkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/walletkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/walletkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/walletkeeper/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	credentials *services.CredentialService
	verifier    *auth.Verifier
}

// NewApp validates c and builds every collaborator. Configuration problems
// are reported as common.ErrConfiguration before anything is opened. Logs go
// to out.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(c.LogLevel, c.LogFormat, out)
	if err != nil {
		return nil, err
	}

	hasher, err := cryptox.NewHasher(c.Argon2)
	if err != nil {
		return nil, err
	}
	issuer, err := auth.NewIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewVerifier([]byte(c.SecretKey))
	if err != nil {
		return nil, err
	}

	db, rm, err := openStore(ctx, c.DatabaseDSN, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		credentials: services.NewCredentialService(db, rm, hasher, issuer, logger),
		verifier:    verifier,
	}, nil
}

// openStore connects to PostgreSQL and migrates it, or falls back to the
// in-memory store when dsn is empty.
func openStore(ctx context.Context, dsn string, logger logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
	if dsn == "" {
		logger.Warn(ctx, "no database configured, credentials are kept in memory and lost on restart")
		return nil, repomanager.NewInMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migration error: %w", err)
	}

	return db, rm, nil
}

// Credentials exposes the credential service, e.g. for admin commands.
func (app *App) Credentials() *services.CredentialService {
	return app.credentials
}

// Close releases the database connection, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Service:        app.credentials,
		Verifier:       app.verifier,
		Logger:         app.logger,
		AllowedOrigins: app.config.CORSAllowedOrigins,
	})

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server failed", "err", err)
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.verifier)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "err", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, SIGINT/SIGTERM/SIGQUIT arrives or a
// listener fails, then waits for both servers to drain.
func (app *App) Run(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "db close", "err", err)
	}
	app.logger.Info(ctx, "App stopped")
}
