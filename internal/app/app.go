package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"blogia/blog-client/internal/apiclient"
	"blogia/blog-client/internal/audit"
	"blogia/blog-client/internal/config"
	"blogia/blog-client/internal/httpserver"
	"blogia/blog-client/internal/observability"
	"blogia/blog-client/internal/proxy"
	"blogia/blog-client/internal/tokenstore"
)

// App is the edge proxy server: the /api forwarder, the login proxy and the
// built SPA behind one listener.
type App struct {
	cfg    config.Config
	log    *slog.Logger
	server *httpserver.Server
}

func New(cfg config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.LogLevel)
	return NewWithLogger(cfg, logger)
}

func NewWithLogger(cfg config.Config, logger *slog.Logger) (*App, error) {
	auditLogger := audit.NewLogger(cfg.AuditLogFile)

	forwarder, err := proxy.NewForwarder(proxy.Config{
		BackendURL: cfg.Proxy.BackendURL,
		Prefix:     cfg.Proxy.Prefix,
		CORS:       cfg.Proxy.CORS,
		Timeout:    cfg.Proxy.Timeout,
	}, proxy.WithRecorder(auditLogger), proxy.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create proxy: %w", err)
	}

	// Readiness probes the backend directly, never through the proxy.
	backend, err := apiclient.New(cfg.Proxy.BackendURL, tokenstore.NewMemoryStore(),
		apiclient.WithTimeout(3*time.Second),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create backend health client: %w", err)
	}

	server := httpserver.New(cfg.HTTP, httpserver.Deps{
		Proxy:           forwarder,
		Ready:           backend.Health,
		FrontendDistDir: cfg.FrontendDistDir,
		Logger:          logger,
	})

	return &App{
		cfg:    cfg,
		log:    logger,
		server: server,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.Info("http server starting",
			"addr", a.cfg.HTTP.Addr,
			"backend", a.cfg.Proxy.BackendURL,
			"prefix", a.cfg.Proxy.Prefix,
			"cors", a.cfg.Proxy.CORS,
		)
		errCh <- a.server.Start()
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server exited: %w", err)
	}
}
