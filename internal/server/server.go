// Package server exposes the modeling core over HTTP.
//
// Routes:
//
//	GET    /api/groups                   list stored annotation groups
//	GET    /api/groups/{name}            read a group
//	PUT    /api/groups/{name}            save a group (shared groups are validated)
//	DELETE /api/groups/{name}            delete a group
//	POST   /api/groups/validate          validate a group as a shared dimension
//	POST   /api/schemas/transform        retarget an analysis schema at the configured table
//	POST   /api/models                   create a model for a table
//	POST   /api/models/update            retarget an existing model at a table
//	GET    /healthz                      liveness
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapcube/internal/modeler"
	"github.com/leapstack-labs/leapcube/internal/state"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Config holds configuration for the server.
type Config struct {
	Addr       string
	Store      state.Store
	Connection core.ConnectionInfo
	Strategy   modeler.ImportStrategy
	Geo        *core.GeoConfig
	Logger     *slog.Logger
}

// Server serves the HTTP API.
type Server struct {
	addr     string
	handlers *Handlers
	logger   *slog.Logger
}

// New creates a server. If cfg.Logger is nil, a discard logger is used.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		addr: cfg.Addr,
		handlers: &Handlers{
			store:    cfg.Store,
			synth:    modeler.NewSynthesizer(logger),
			conn:     cfg.Connection,
			strategy: cfg.Strategy,
			geo:      cfg.Geo,
			logger:   logger,
		},
		logger: logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(s.logger),
		middleware.Recoverer,
	)
	SetupRoutes(r, s.handlers)
	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting server", "addr", ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
