// File: internal/server/server.go

// Package server exposes the generation and analysis engines over a small
// HTTP facade. It is a local tool surface with no authentication; bind it
// to loopback.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/internal/analysis"
	"github.com/salman3757/passgauge/internal/config"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	requestTimeout         = 60 * time.Second
)

// Options wires a Server. Estimator and Generator are required; everything
// else has a usable zero value.
type Options struct {
	Config    config.ServerConfig
	Estimator *analysis.Estimator
	Generator *analysis.Generator

	// WordSets are shared by every analyze request. Sets are read-only after
	// load, so concurrent handlers need no locking.
	WordSets []analysis.WordSet

	// ZxcvbnCrossCheck attaches the advisory zxcvbn score to analyze
	// responses.
	ZxcvbnCrossCheck bool

	Logger *zap.Logger
}

// Server hosts the HTTP facade.
type Server struct {
	cfg      config.ServerConfig
	log      *zap.Logger
	handlers *Handlers
}

// New builds a Server from opts.
func New(opts Options) (*Server, error) {
	if opts.Estimator == nil || opts.Generator == nil {
		return nil, fmt.Errorf("server: estimator and generator are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      opts.Config,
		log:      logger.Named("server"),
		handlers: NewHandlers(logger, opts.Generator, opts.Estimator, opts.WordSets, opts.ZxcvbnCrossCheck),
	}, nil
}

// Router assembles the chi router with the standard middleware stack. It is
// separate from Run so tests can drive the handlers through httptest.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	s.handlers.RegisterRoutes(r)
	return r
}

// Run serves until ctx is canceled, then drains in-flight requests within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.log.Info("HTTP facade listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen on %s: %w", s.cfg.Addr, err)
		}
		return nil
	}

	s.log.Info("Shutting down HTTP facade")
	shutdownTimeout := s.cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
