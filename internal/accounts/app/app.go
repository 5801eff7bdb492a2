package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/university/internal/accounts/http"
	"github.com/aussiebroadwan/university/internal/accounts/metrics"
	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/internal/accounts/store"
	"github.com/aussiebroadwan/university/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/university/pkg/cryptox"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

// tokenLeeway tolerates clock skew when verifying exp and nbf.
const tokenLeeway = 5 * time.Second

// BuildVersion is overridden at build time via -ldflags "-X ...BuildVersion=".
var BuildVersion = "v0.1.0"

// Application encapsulates the accounts service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	metrics *metrics.Metrics

	tokenService        *service.TokenService
	userService         *service.UserService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the service logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "accounts",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// OpenStore opens the configured database and applies pending migrations.
func OpenStore(cfg Config, logger *slog.Logger) (store.Store, error) {
	db, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "path", cfg.DatabaseFile)
	return db, nil
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:     cfg,
		logger:  NewLogger(cfg),
		metrics: metrics.New(),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	db, err := OpenStore(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.initServices(); err != nil {
		_ = db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler is the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("accounts service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down accounts service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

func (app *Application) initServices() error {
	signer, err := InitSigner(app.cfg, app.logger)
	if err != nil {
		return err
	}

	app.tokenService, err = service.NewTokenService(app.db, signer, service.TokenConfig{
		Issuer:              app.cfg.Issuer,
		AccessTTL:           app.cfg.AccessTTL,
		RefreshTTL:          app.cfg.RefreshTTL,
		RotateRefreshTokens: app.cfg.RotateRefreshTokens,
		Leeway:              tokenLeeway,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	app.userService = &service.UserService{
		Store:               app.db,
		BlockedEmailDomains: app.cfg.BlockedEmailDomains,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.Leeway = tokenLeeway
	return nil
}

func (app *Application) initHTTP() {
	var secret []byte
	if app.cfg.CSRFSecret != "" {
		secret = []byte(app.cfg.CSRFSecret)
	} else {
		secret = []byte(cryptox.MustGenerateToken(cryptox.TokenSize256))
		app.logger.Warn("CSRF_SECRET not set, issued CSRF tokens will not survive a restart")
	}

	router := httpapi.NewRouter(app.db, app.logger, httpapi.Options{
		BuildVersion: BuildVersion,
		Cookie:       app.cfg.Cookie(),
		CORS:         httpx.CORSConfig{AllowedOrigins: app.cfg.CORSAllowedOrigins},
		CSRF: &httpx.CSRF{
			Secret: secret,
			Cookie: app.cfg.Cookie(),
		},
		CSRFEnabled:     app.cfg.CSRFEnabled,
		AllowHeaderAuth: app.cfg.AllowHeaderAuth,
		RateLimits:      app.cfg.RateLimits,
		Metrics:         app.metrics,
	})

	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
