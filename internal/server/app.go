// Package server wires configuration, storage, services and transports into
// a runnable notes server and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/access"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/dmitrijs2005/notekeeper/internal/telemetry"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/notekeeper/internal/server/grpc"
)

const serviceName = "notekeeper"

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	userService *services.UserService
	noteService *services.NoteService
	gate        *access.Gate
}

// NewApp opens storage and builds the services described by c. The
// caller must call Close when done.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	tokens, err := auth.NewTokenService(c.SecretKey, c.JWTAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	rm, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us, err := services.NewUserService(rm.Users(), hasher, tokens, c.AccessTokenTTL, logger)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}
	ns := services.NewNoteService(rm.Notes(), logger)

	return &App{
		config:      c,
		logger:      logger,
		repos:       rm,
		userService: us,
		noteService: ns,
		gate:        access.NewGate(tokens, logger),
	}, nil
}

// Run serves HTTP and, when configured, gRPC until ctx is cancelled, a
// termination signal arrives or one of the listeners fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			app.logger.Warn(ctx, "telemetry shutdown failed", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageDriver)

	g, ctx := errgroup.WithContext(ctx)

	if app.config.HTTPAddr != "" {
		h := httpapi.NewHandler(app.userService, app.noteService, app.gate, app.repos, app.logger)
		srv := httpapi.NewServer(app.config.HTTPAddr, h, app.config.CORSOrigins, app.config.ShutdownTimeout, app.logger)
		g.Go(func() error {
			if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
	}

	if app.config.GRPCAddr != "" {
		srv := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.userService, app.noteService, app.gate)
		g.Go(func() error {
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	err = g.Wait()
	app.logger.Info(ctx, "App stopped")
	return err
}

// Close releases the storage backend.
func (app *App) Close() error {
	return app.repos.Close()
}

// Main loads configuration, runs the server and returns the process exit
// code.
func Main() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx := context.Background()
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "close storage", "error", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server failed", "error", err)
		return 1
	}
	return 0
}
