// Package gateway exposes the observability HTTP endpoint: process health
// and Prometheus metrics. It carries no message traffic.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gateway serves health and metrics over HTTP.
type Gateway struct {
	config    Config
	logger    *slog.Logger
	gatherer  prometheus.Gatherer
	server    *http.Server
	startedAt time.Time
}

// New creates a Gateway. The gatherer supplies the /metrics exposition;
// nil leaves the route unmounted.
func New(cfg Config, logger *slog.Logger, gatherer prometheus.Gatherer) *Gateway {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		config:   cfg,
		logger:   logger,
		gatherer: gatherer,
	}
}

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", g.handleHealth())

	if g.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// Start begins serving in the background. It returns once the listener is
// bound, so a bind failure surfaces immediately.
func (g *Gateway) Start() error {
	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully within the configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
