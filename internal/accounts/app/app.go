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

	httpapi "github.com/flowmerce/accounts/internal/accounts/http"
	"github.com/flowmerce/accounts/internal/accounts/mail"
	"github.com/flowmerce/accounts/internal/accounts/service"
	"github.com/flowmerce/accounts/internal/accounts/store"
	"github.com/flowmerce/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/flowmerce/accounts/pkg/cryptox"
	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/flowmerce/accounts/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the accounts service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	mailer     *mail.Dispatcher

	credentials         *service.CredentialStore
	tokens              *service.TokenRegistry
	sessions            *service.SessionManager
	authService         *service.AuthService
	userService         *service.UserService
	merchantService     *service.MerchantService
	seedService         *service.SeedService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "accounts-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	app.initMail()
	app.initServices()

	if err := app.seedAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	applyRateLimits(cfg.RateLimits)
	app.initHTTP()

	return app, nil
}

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

// Shutdown stops accepting requests, flushes queued mail and closes the
// database.
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

	// Requests are done, so nothing enqueues mail any more.
	if err := app.mailer.Shutdown(ctx); err != nil {
		app.logger.Warn("mail queue not drained before deadline", "error", err)
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initMail starts the mail dispatcher. The log driver prints links only in
// development.
func (app *Application) initMail() {
	var sender mail.Sender
	switch app.cfg.MailDriver {
	case "smtp":
		sender = mail.SMTPSender{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
		}
		app.logger.Info("smtp mail delivery enabled", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
	default:
		sender = mail.LogSender{ShowLinks: slogx.IsDevelopment(app.cfg.Env)}
		app.logger.Info("mail delivery disabled, emails are logged")
	}

	composer := mail.Composer{
		BaseURL:          app.cfg.BaseURL,
		ActivationExpiry: mail.HumanDuration(app.cfg.ActivationTTL),
		ResetExpiry:      mail.HumanDuration(app.cfg.ResetTTL),
	}

	app.mailer = mail.NewDispatcher(composer, sender, app.logger, mail.DispatcherOptions{
		Workers:   app.cfg.MailWorkers,
		QueueSize: app.cfg.MailQueueSize,
	})
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.credentials = &service.CredentialStore{Store: app.db}
	app.tokens = &service.TokenRegistry{
		Store:         app.db,
		ActivationTTL: app.cfg.ActivationTTL,
		ResetTTL:      app.cfg.ResetTTL,
	}
	app.sessions = &service.SessionManager{
		Store:      app.db,
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		TTL:        app.cfg.SessionTTL,
	}

	app.authService = &service.AuthService{
		Store:             app.db,
		Credentials:       app.credentials,
		Tokens:            app.tokens,
		Sessions:          app.sessions,
		Mailer:            app.mailer,
		RequireActivation: app.cfg.RequireActivation,
	}
	app.userService = &service.UserService{Credentials: app.credentials}
	app.merchantService = &service.MerchantService{
		Store:       app.db,
		Credentials: app.credentials,
		Sessions:    app.sessions,
	}
	app.seedService = &service.SeedService{
		Store:       app.db,
		Credentials: app.credentials,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.tokens,
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// seedAdmin makes sure SEED_ADMIN_EMAIL exists as an administrator.
func (app *Application) seedAdmin(ctx context.Context) error {
	if app.cfg.SeedAdminEmail == "" {
		return nil
	}

	res, err := app.seedService.SeedAdmin(ctx, app.cfg.SeedAdminEmail, app.cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	log := app.logger.With("email", app.cfg.SeedAdminEmail, "account_id", res.AccountID)
	switch {
	case res.GeneratedPassword != "":
		// Printed once; there is no other way to learn it.
		log.Warn("admin account created with a generated password", "password", res.GeneratedPassword)
	case res.Created:
		log.Info("admin account created")
	default:
		log.Info("admin account present")
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.MerchantService = app.merchantService
	router.SessionManager = app.sessions
	router.PhoneRegion = app.cfg.PhoneRegion
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
