package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaibs3/election-api/internal/config"
	"github.com/shaibs3/election-api/internal/handlers"
	"github.com/shaibs3/election-api/internal/router"
	"github.com/shaibs3/election-api/internal/storage"
	"github.com/shaibs3/election-api/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// App represents the main application
type App struct {
	config    *config.Config
	logger    *zap.Logger
	telemetry *telemetry.Telemetry
	gateway   storage.Gateway
	server    *http.Server
}

var newTelemetry = telemetry.NewTelemetry

func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	// Initialize telemetry
	tel, err := newTelemetry(logger)
	if err != nil {
		return nil, err
	}

	app, err := newApp(cfg, logger, tel)
	if err != nil {
		if shutdownErr := tel.Shutdown(context.Background()); shutdownErr != nil {
			logger.Warn("failed to shutdown telemetry", zap.Error(shutdownErr))
		}
		return nil, err
	}
	return app, nil
}

func newApp(cfg *config.Config, logger *zap.Logger, tel *telemetry.Telemetry) (*App, error) {
	// The gateway is opened once and shared by every handler
	factory := storage.NewDbProviderFactory(logger, tel)
	gateway, err := factory.CreateProvider(cfg.DBConfig)
	if err != nil {
		return nil, err
	}

	handlerList := []router.Handler{
		handlers.NewRootHandler(),
		handlers.NewCandidatesHandler(gateway),
		handlers.NewPartiesHandler(gateway),
	}

	appRouter := router.NewRouter(newLimiter(cfg), tel, logger, handlerList)
	server := appRouter.CreateServer(":" + cfg.Port)

	return &App{
		config:    cfg,
		logger:    logger,
		telemetry: tel,
		gateway:   gateway,
		server:    server,
	}, nil
}

// newLimiter returns nil, which disables rate limiting, unless a positive RPS limit is configured
func newLimiter(cfg *config.Config) *rate.Limiter {
	if cfg.RPSLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.RPSLimit), cfg.RPSBurst)
}

// Start starts the application server
func (app *App) start() error {
	app.logger.Info("starting server", zap.String("port", app.config.Port))

	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the server, then releases the database and telemetry
func (app *App) stop() error {
	app.logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	serverErr := app.server.Shutdown(shutdownCtx)
	if serverErr != nil {
		app.logger.Error("server forced to shutdown", zap.Error(serverErr))
	}

	if err := app.gateway.Close(); err != nil {
		app.logger.Error("failed to close database", zap.Error(err))
	}
	if err := app.telemetry.Shutdown(shutdownCtx); err != nil {
		app.logger.Warn("failed to shutdown telemetry", zap.Error(err))
	}

	if serverErr != nil {
		return serverErr
	}
	app.logger.Info("server exited gracefully")
	return nil
}

// Run starts the application and waits for shutdown signals
func (app *App) Run() error {
	if err := app.start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	return app.stop()
}
