package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/chamberhub/bizportal/infrastructure/api/middleware"
)

// Server owns the chi router and the http.Server in front of it.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a Server for addr with the base middleware installed.
// Unknown routes and methods answer with the JSON error envelope.
func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()

	// StripSlashes only rewrites the route path; Authorize trims r.URL.Path
	// itself before the policy check. Timeout is applied per route group since the MCP stream cannot sit
	// behind it.
	router.Use(chimiddleware.StripSlashes)
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, middleware.NewAPIError(http.StatusNotFound, "route not found", nil), nil)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, middleware.NewAPIError(http.StatusMethodNotAllowed, "method not allowed", nil), nil)
	})

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      2 * requestTimeout,
			IdleTimeout:       120 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}
}

// Router returns the chi router for registering routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("portal API listening", slog.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down portal API")
	return s.httpServer.Shutdown(ctx)
}
