// file: internal/server/server.go
// version: 2.0.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookstreamer/internal/autofill"
	"github.com/jdfalk/bookstreamer/internal/config"
	"github.com/jdfalk/bookstreamer/internal/logging"
	"github.com/jdfalk/bookstreamer/internal/metrics"
	"github.com/jdfalk/bookstreamer/internal/server/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LivenessMessage is the plain-text body served on GET /.
const LivenessMessage = "BookStreamer Server Running"

// Autofiller produces the combined summary and cover for a book.
type Autofiller interface {
	Autofill(ctx context.Context, title, author string) (autofill.Result, error)
	SummarizerName() string
	CoverSourceName() string
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router       *gin.Engine
	autofiller   Autofiller
	maxBodyBytes int64
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	MaxBodyBytes    int64
}

// NewServerConfig extracts the HTTP settings from the application config
func NewServerConfig(cfg config.Config) ServerConfig {
	return ServerConfig{
		Port:            cfg.Port,
		Host:            cfg.Host,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		AllowedOrigins:  cfg.AllowedOrigins,
		MaxBodyBytes:    cfg.MaxBodyBytes,
	}
}

// NewServer creates a new server instance
func NewServer(cfg ServerConfig, autofiller Autofiller) *Server {
	router := gin.New()

	// Set up middleware
	router.Use(middleware.RequestID())
	router.Use(requestLogger())
	router.Use(gin.CustomRecovery(recoverWithJSON))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register metrics (idempotent)
	metrics.Register()

	server := &Server{
		router:       router,
		autofiller:   autofiller,
		maxBodyBytes: cfg.MaxBodyBytes,
	}

	server.setupRoutes()

	return server
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully within cfg.ShutdownTimeout.
func (s *Server) Start(ctx context.Context, cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down server")

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logging.Info("server exited")
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.liveness)

	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		// Counted outside recovery and the body limit so 413s and panics show up.
		api.POST("/autofill",
			countAutofillRequests(),
			gin.CustomRecovery(recoverWithJSON),
			middleware.MaxRequestBodySize(s.maxBodyBytes),
			s.autofill,
		)
	}
}

func (s *Server) liveness(c *gin.Context) {
	c.String(http.StatusOK, LivenessMessage)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Summarizer:  s.autofiller.SummarizerName(),
		CoverSource: s.autofiller.CoverSourceName(),
	})
}

func (s *Server) autofill(c *gin.Context) {
	ol := NewOperationLogger("autofill", c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c))

	var req AutofillRequest
	if err := c.ShouldBindJSON(&req); HandleBindError(c, err) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		RespondWithValidationError(c, "title", "required")
		return
	}

	ol.AddDetail("title", req.Title)
	ol.AddDetail("author", req.Author)
	ol.LogStart()

	result, err := s.autofiller.Autofill(c.Request.Context(), req.Title, req.Author)
	if err != nil {
		ol.LogError(http.StatusInternalServerError, err)
		RespondWithInternalError(c, err.Error())
		return
	}

	if result.CoverURL == nil {
		ol.LogWarning("no cover found")
	}
	c.JSON(http.StatusOK, result)
	ol.LogSuccess(http.StatusOK)
}

// countAutofillRequests records every autofill response by status code
func countAutofillRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.IncAutofillRequest(strconv.Itoa(c.Writer.Status()))
	}
}

// recoverWithJSON turns a handler panic into the standard 500 envelope
func recoverWithJSON(c *gin.Context, recovered any) {
	logging.Error("panic recovered", "panic", fmt.Sprint(recovered), "path", c.Request.URL.Path,
		"request_id", middleware.GetRequestID(c))
	RespondWithInternalError(c, "internal server error")
}
