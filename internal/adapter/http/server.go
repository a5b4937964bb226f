// Package http exposes the comparison engine over a JSON API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/geekendzone/dcasim-backend/internal/config"
)

// Server wires the router, middleware and handlers together.
type Server struct {
	router *gin.Engine
	server *http.Server
	log    zerolog.Logger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, comparer Comparer, log zerolog.Logger) *Server {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	log = log.With().Str("component", "http").Logger()

	router := gin.New()
	router.Use(RequestLogger(log))
	router.Use(ErrorHandler())
	router.Use(CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler := NewComparisonHandler(comparer, cfg.ResultTTL())

	api := router.Group("/api/v1")
	api.Use(Auth(cfg.APIToken))
	{
		api.POST("/comparisons", handler.Create)
		api.GET("/comparisons/:id", handler.Get)
		api.GET("/comparisons/:id/export.csv", handler.ExportCSV)
	}

	return &Server{
		router: router,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: router,
		},
		log: log,
	}
}

// Run starts serving and blocks until the listener closes or fails.
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
