package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chamberhub/bizportal"
	apimiddleware "github.com/chamberhub/bizportal/infrastructure/api/middleware"
	v1 "github.com/chamberhub/bizportal/infrastructure/api/v1"
	"github.com/chamberhub/bizportal/infrastructure/api/v1/dto"
	"github.com/chamberhub/bizportal/internal/access"
	"github.com/chamberhub/bizportal/internal/config"
	mcpinternal "github.com/chamberhub/bizportal/internal/mcp"
)

const requestTimeout = 60 * time.Second

// Access configures who may call the API and from which browser origins.
type Access struct {
	StaffKeys      []string
	MemberKeys     []string
	AllowedOrigins []string
}

// AccessFromConfig reads the API keys and CORS origins of cfg.
func AccessFromConfig(cfg config.AppConfig) Access {
	return Access{
		StaffKeys:      cfg.StaffAPIKeys(),
		MemberKeys:     cfg.MemberAPIKeys(),
		AllowedOrigins: cfg.AllowedOrigins(),
	}
}

// APIServer provides the portal HTTP API backed by a bizportal Client.
type APIServer struct {
	client   *bizportal.Client
	resolver access.Resolver
	enforcer *access.Enforcer
	origins  []string
	version  string
	router   chi.Router
	logger   *slog.Logger

	mu     sync.Mutex
	server *Server
}

// NewAPIServer creates a new APIServer wired to the given Client.
//
// With no keys configured the portal is open and every caller acts as staff.
// Otherwise X-API-KEY selects the member or staff role, and callers without
// a key are anonymous.
func NewAPIServer(client *bizportal.Client, acc Access, version string) (*APIServer, error) {
	enforcer, err := access.NewEnforcer()
	if err != nil {
		return nil, fmt.Errorf("build access policy: %w", err)
	}
	resolver := access.NewResolver(acc.StaffKeys, acc.MemberKeys)
	if resolver.Open() {
		client.Logger().Warn("no API keys configured, every caller is treated as staff")
	}
	return &APIServer{
		client:   client,
		resolver: resolver,
		enforcer: enforcer,
		origins:  acc.AllowedOrigins,
		version:  version,
		logger:   client.Logger(),
	}, nil
}

// mountRoutes wires middleware and every route on router.
func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(a.logger))
	router.Use(cors.Handler(a.corsOptions()))
	router.Use(apimiddleware.Authorize(a.resolver, a.enforcer, a.logger))

	router.Get("/health", a.health)
	router.Mount("/docs", NewDocsRouter("/docs/openapi.json", a.version).Routes())

	router.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))

		r.Mount("/services", v1.NewServicesRouter(c).Routes())
		r.Mount("/applications", v1.NewApplicationsRouter(c).Routes())
		r.Mount("/certificates", v1.NewCertificatesRouter(c).Routes())
		r.Mount("/ai", v1.NewAIRouter(c).Routes())
		r.Mount("/member", v1.NewMemberRouter(c).Routes())
		r.Mount("/staff", v1.NewStaffRouter(c).Routes())
	})

	// MCP streams responses and keeps session state in headers, which chi's
	// Timeout middleware breaks, so it sits outside the /api group.
	mcpSrv := mcpinternal.NewServer(c.Directory, c.Assistant, a.version, a.logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

func (a *APIServer) corsOptions() cors.Options {
	origins := a.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", apimiddleware.APIKeyHeader, apimiddleware.CorrelationHeader, "Mcp-Session-Id"},
		ExposedHeaders: []string{apimiddleware.CorrelationHeader, "Mcp-Session-Id"},
		MaxAge:         300,
	}
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, dto.HealthResponse{
		Success: true,
		Status:  "healthy",
		AI:      a.client.Assistant.TextAvailable(),
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	srv := NewServer(addr, a.logger)
	a.mountRoutes(srv.Router())
	a.mu.Lock()
	a.server = srv
	a.mu.Unlock()
	return srv.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	srv := a.server
	a.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Handler returns the fully wired router for use with custom servers and
// tests.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.router = NewServer("", a.logger).Router()
		a.mountRoutes(a.router)
	}
	return a.router
}
