package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/km-arc/go-fixture/framework/catalog"
	"github.com/km-arc/go-fixture/framework/config"
	"github.com/km-arc/go-fixture/framework/routing"
)

// Server serves a fixture catalog over HTTP.
type Server struct {
	config      *config.Config
	catalog     *catalog.Catalog
	rateLimiter *rate.Limiter
	router      *routing.Router
	httpServer  *http.Server
	logger      *slog.Logger
}

// New builds a Server for c. A nil logger means slog.Default().
//
// Every fixture the catalog builds from then on is counted in
// fixtured_fixture_builds_total, including builds outside HTTP requests.
func New(cfg *config.Config, c *catalog.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:      cfg,
		catalog:     c,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst),
		logger:      logger,
	}

	c.AfterResolving(func(name string, _ any) {
		fixtureBuildsTotal.WithLabelValues(name).Inc()
	})

	s.router = s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort("", cfg.App.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// setupRoutes configures all HTTP routes and middleware. System endpoints
// are not rate limited.
func (s *Server) setupRoutes() *routing.Router {
	r := routing.New()
	r.Middleware(s.requestIDMiddleware, s.metricsMiddleware, s.loggingMiddleware)
	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Prefix("/v1", func(v1 *routing.Router) {
		v1.Middleware(s.rateLimitMiddleware)
		v1.Get("/fixtures", s.handleListFixtures)
		v1.Get("/fixtures/{name}", s.handleShowFixture)
		v1.Get("/tags", s.handleListTags)
		v1.Get("/tags/{tag}", s.handleShowTag)
	})
	return r
}

// Handler returns the fully wired http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the address the server listens on.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr, "fixtures", len(s.catalog.Names()))

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown stops accepting requests and waits up to ShutdownTimeout for
// in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}
