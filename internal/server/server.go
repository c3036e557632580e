// Package server exposes the processing pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/completion"
)

// DefaultMaxUploadBytes bounds the size of an uploaded workbook.
const DefaultMaxUploadBytes = 32 << 20

// Config holds configuration for the HTTP server.
type Config struct {
	Addr           string
	Completer      completion.Completer
	Logger         *slog.Logger
	MaxUploadBytes int64
	// Now is the clock used for validation and export names.
	Now func() time.Time
}

// Server serves the processing API.
type Server struct {
	addr           string
	completer      completion.Completer
	logger         *slog.Logger
	maxUploadBytes int64
	now            func() time.Time
}

// New creates a new server instance.
func New(cfg Config) *Server {
	s := &Server{
		addr:           cfg.Addr,
		completer:      cfg.Completer,
		logger:         cfg.Logger,
		maxUploadBytes: cfg.MaxUploadBytes,
		now:            cfg.Now,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = DefaultMaxUploadBytes
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler returns the router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/schema", s.handleSchema)
		r.Post("/process", s.handleProcess)
		r.Post("/export", s.handleExport)
	})
	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
