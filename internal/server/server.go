// Package server provides the HTTP server for the mudra prediction gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	Predictor api.Predictor
	Store     *store.Store
	// Templates is the number of templates loaded into the classifier.
	Templates int
	Logger    *slog.Logger
}

// Server represents the HTTP server for the mudra application.
type Server struct {
	config  Config
	mux     *http.ServeMux
	handler http.Handler
	stream  *PredictStream
	logger  *slog.Logger
	start   time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		logger: logger,
		start:  time.Now(),
	}
	s.setupRoutes()
	s.handler = withCORS(withRequestLogging(logger, withRecover(logger, s.mux)))
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Predictor != nil {
		predictHandler := api.NewPredictHandler(s.config.Predictor, s.config.MaxBodyBytes, s.logger)
		s.stream = NewPredictStream(predictHandler, s.logger)

		s.mux.Handle("/predict", predictHandler)
		s.mux.Handle("/ws/predict", s.stream)
	}

	if s.config.Store != nil {
		gestureHandler := api.NewGestureHandler(s.config.Store)
		s.mux.Handle("/api/gestures", gestureHandler)
		s.mux.Handle("/api/gestures/", gestureHandler)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type healthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Templates int    `json:"templates"`
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	api.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Uptime:    time.Since(s.start).Round(time.Second).String(),
		Templates: s.config.Templates,
	})
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	if s.stream != nil {
		srv.RegisterOnShutdown(s.stream.CloseAll)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
