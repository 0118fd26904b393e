package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/server"
)

// Application holds the configuration and the long-lived parts of the
// lookup service. Pass it to commands rather than using package-level
// variables.
type Application struct {
	Config *Config
	Logger logging.Logger

	components *Components
	server     *server.Server
	httpServer *http.Server
}

// NewLogger builds the zerolog-backed logger described by cfg, writing to
// out (stdout when nil).
func NewLogger(cfg *Config, out io.Writer) logging.Logger {
	return logging.NewZerologLogger("caselookup", logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: out,
	})
}

// NewApplication wires the webclient, coordinator and HTTP server.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop()
	}

	comps, err := NewComponents(cfg, logger)
	if err != nil {
		return nil, err
	}

	srv, err := server.NewServer(cfg.ServerCfg, comps.Coordinator, logger)
	if err != nil {
		_ = comps.Close()
		return nil, fmt.Errorf("new server: %w", err)
	}

	return &Application{
		Config:     cfg,
		Logger:     logger,
		components: comps,
		server:     srv,
		httpServer: srv.HTTPServer(),
	}, nil
}

// Handler exposes the HTTP routes, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.server
}

// Start serves HTTP until Shutdown is called.
func (a *Application) Start() error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application starting",
		logging.Field{Key: "addr", Value: a.httpServer.Addr},
		logging.Field{Key: "backend", Value: string(a.Config.WebClientCfg.Client)})

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for running ones within a
// bounded timeout and closes the webclient.
func (a *Application) Shutdown(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		firstErr = fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.components.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
