// Package api serves the read side of the business directory over HTTP.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"trustgrade-workers/internal/common/config"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/directory"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

// Server exposes directory search, slug lookup and public profiles.
type Server struct {
	cfg         config.APIConfig
	serviceName string
	directory   *directory.Directory
	profile     config.ProfileConfig
	logger      logger.Logger
	zap         *zap.Logger
	checks      map[string]CheckFunc
	http        *http.Server
}

func NewServer(cfg config.APIConfig, serviceName string, dir *directory.Directory, profileDefaults config.ProfileConfig, log logger.Logger) *Server {
	s := &Server{
		cfg:         cfg,
		serviceName: serviceName,
		directory:   dir,
		profile:     profileDefaults,
		logger:      log.WithFields(map[string]interface{}{"component": "api"}),
		zap:         logger.Unwrap(log),
		checks:      make(map[string]CheckFunc),
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// AddReadinessCheck registers a dependency checked by /ready. Call before Start.
func (s *Server) AddReadinessCheck(name string, fn CheckFunc) {
	s.checks[name] = fn
}

// Router builds the gin engine with logging, recovery, tracing and CORS.
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(ginzap.Ginzap(s.zap, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(s.zap, true))
	router.Use(otelgin.Middleware(s.serviceName))
	router.Use(cors.New(s.corsConfig()))

	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/views", s.handleViews)
		v1.GET("/businesses", s.handleSearch)
		v1.GET("/businesses/:slug", s.handleGetBusiness)
		v1.GET("/businesses/:slug/profile", s.handleGetProfile)
	}
	return router
}

func (s *Server) corsConfig() cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	if len(s.cfg.CORSOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = s.cfg.CORSOrigins
	}
	return c
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("api listening", map[string]interface{}{"address": s.cfg.Address})
	if err := s.http.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
