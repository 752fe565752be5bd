// Package api provides the HTTP API server for Cachium.
// It uses Echo framework to serve the REST endpoints for group
// provisioning and a WebSocket feed of group lifecycle events.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"evalgo.org/cachium/internal/config"
	"evalgo.org/cachium/internal/provision"
	"evalgo.org/cachium/internal/storage"
	"evalgo.org/cachium/internal/version"
)

// Server represents the Cachium API server.
type Server struct {
	echo    *echo.Echo
	store   *storage.Store
	prov    *provision.Provisioner
	config  *config.Config
	wsHub   *Hub // WebSocket hub for group lifecycle events
	started time.Time
}

// debugLog logs a message only if debug mode is enabled in config
func (s *Server) debugLog(format string, args ...interface{}) {
	if s.config.Server.Debug {
		log.Printf(format, args...)
	}
}

// New creates a new API server instance.
func New(cfg *config.Config, store *storage.Store, prov *provision.Provisioner) *Server {
	e := echo.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug

	// Set custom error handler and request validator
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = NewRequestValidator()

	// Create WebSocket hub
	hub := NewHub()

	// Create server instance
	server := &Server{
		echo:    e,
		store:   store,
		prov:    prov,
		config:  cfg,
		wsHub:   hub,
		started: time.Now(),
	}

	// Start WebSocket hub in background
	go hub.Run()

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	// Logger middleware
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))

	// Recover middleware
	s.echo.Use(middleware.Recover())

	// Security headers middleware
	s.echo.Use(SecurityHeaders)

	// CORS middleware
	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Rate limiting
	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	// Content-Type validation middleware for API routes
	s.echo.Use(ValidateContentType)

	// Accept header validation middleware
	s.echo.Use(ValidateAcceptHeader)
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	// Greeting and health check
	s.echo.GET("/", s.index)
	s.echo.GET("/health", s.healthCheck)

	// API group
	api := s.echo.Group("/api")

	// Group routes
	groups := api.Group("/groups")
	groups.GET("", s.listGroups)
	groups.POST("", s.createGroup)
	groups.GET("/:id", s.getGroup)
	groups.PUT("/:id", s.updateGroup)
	groups.DELETE("/:id", s.deleteGroup)

	// Static health-state catalog
	api.GET("/states", s.listStates)

	// WebSocket feed of group lifecycle events
	api.GET("/events", s.handleEvents)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	fmt.Printf("Starting Cachium API Server\n")
	fmt.Printf("   Address: http://%s\n", addr)
	fmt.Printf("   Subnet:  %s\n", s.config.Allocator.Subnet)
	fmt.Printf("   Debug:   %v\n", s.config.Server.Debug)
	fmt.Println()

	// Configure server timeouts
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	fmt.Println("\nShutting down Cachium API Server...")

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	fmt.Println("Server shutdown complete")
	return nil
}

// index handles the plain-text greeting on /.
func (s *Server) index(c echo.Context) error {
	return c.String(http.StatusOK, "Hello World\n")
}

// healthCheck handles health check requests.
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "cachium",
		Version: version.Version,
		Groups:  s.store.Count(),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

// BroadcastGroupEvent broadcasts a group lifecycle event to all WebSocket clients
func (s *Server) BroadcastGroupEvent(eventType GroupEventType, data interface{}) {
	s.debugLog("broadcasting %s event to %d clients", eventType, s.wsHub.ClientCount())
	if err := s.wsHub.BroadcastEvent(GroupEvent{Type: eventType, Data: data}); err != nil {
		log.Printf("ERROR: Failed to broadcast event: %v", err)
	}
}

// ServeHTTP allows Server to implement http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
