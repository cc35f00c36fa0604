// Package api serves constant-product quotes over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/confio/tfi/telemetry"
	"github.com/confio/tfi/x/pair/types"
)

// Server is the quote HTTP server
type Server struct {
	router          *gin.Engine
	handler         http.Handler
	config          *Config
	logger          log.Logger
	requestDuration metric.Float64Histogram
}

// Config holds server configuration
type Config struct {
	Host            string
	Port            string
	CORSOrigins     []string
	RateLimitRPS    int
	Commission      math.LegacyDec
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "127.0.0.1",
		Port:            "1318",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    50,
		Commission:      types.DefaultCommissionRate(),
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks the configuration before the server starts
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimitRPS)
	}
	return types.ValidateCommission(c.Commission)
}

// NewServer creates a new quote server
func NewServer(logger log.Logger, config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	requestDuration, err := otel.Meter(telemetry.ServiceName).Float64Histogram(
		"tfi.api.request.duration",
		metric.WithDescription("Quote request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request histogram: %w", err)
	}

	s := &Server{
		config:          config,
		logger:          logger.With("module", "api"),
		requestDuration: requestDuration,
	}
	s.setupRouter()
	return s, nil
}

func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.router.GET("/health", s.healthCheck)
	s.registerRoutes()

	s.handler = cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}).Handler(s.router)
}

// Handler returns the root HTTP handler including CORS handling
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().Unix(),
		"commission": s.config.Commission.String(),
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.config.Host, s.config.Port),
		Handler:           s.handler,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting quote server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down quote server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}
