package app

import (
	"context"
	"log/slog"

	"github.com/km-arc/go-fixture/framework/catalog"
	"github.com/km-arc/go-fixture/framework/config"
	"github.com/km-arc/go-fixture/framework/fixture"
	"github.com/km-arc/go-fixture/framework/logging"
	"github.com/km-arc/go-fixture/framework/providers"
	"github.com/km-arc/go-fixture/framework/server"
)

// Version is overridden during build with ldflags.
var Version = "0.1.0"

// Application wires configuration, logging, the fixture builder and the
// catalog together for the CLI and the fixture server.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Catalog *catalog.Catalog

	providers []catalog.Provider
	booted    bool
}

// New loads configuration from envFiles (default .env), validates it and
// creates the application.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig creates the application from an already validated config.
// Its logger also becomes slog's default, so packages that fall back to
// slog.Default() log the same way. The framework's default providers are
// registered first.
func NewWithConfig(cfg *config.Config) *Application {
	level := cfg.App.LogLevel
	if cfg.App.Debug {
		level = "debug"
	}
	logger := logging.SetDefaultStructuredLoggerWithLevel(cfg.App.Name, Version, level)

	b := fixture.New(
		fixture.WithLogger(logger),
		fixture.WithMaxDepth(cfg.Fixture.MaxDepth),
	)

	a := &Application{
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog.New(b),
	}
	a.Register(providers.Defaults()...)
	return a
}

// Register queues fixture providers to load on Boot.
func (a *Application) Register(p ...catalog.Provider) {
	a.providers = append(a.providers, p...)
}

// Boot loads every registered provider into the catalog. Later calls are
// no-ops.
func (a *Application) Boot() {
	if a.booted {
		return
	}
	catalog.Load(a.Catalog, a.providers...)
	a.booted = true
	a.Logger.Debug("application booted", "providers", len(a.providers), "fixtures", len(a.Catalog.Names()))
}

// Booted reports whether Boot has run.
func (a *Application) Booted() bool { return a.booted }

// Server boots the application if needed and returns an HTTP server over its
// catalog.
func (a *Application) Server() *server.Server {
	a.Boot()
	return server.New(a.Config, a.Catalog, a.Logger)
}

// Run serves the catalog until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	return a.Server().Start(ctx)
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
