package http_server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/duccv/shop-admin/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/penglongli/gin-metrics/ginmetrics"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/duccv/shop-admin/docs"
)

type Server struct {
	App    *gin.Engine
	server *http.Server
	notify chan error

	address         string
	timeout         time.Duration
	shutdownTimeout time.Duration
	middleware      []gin.HandlerFunc
	monitor         *ginmetrics.Monitor
	routes          []func(r *gin.Engine)
}

// New -.
func New(env *config.Env, opts ...Option) *Server {
	s := &Server{
		notify:          make(chan error, 1),
		address:         _defaultAddr,
		timeout:         _defaultTimeout,
		shutdownTimeout: _defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.App = s.initGinServer(env)
	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.App,
		ReadHeaderTimeout: _defaultReadHeader,
	}

	return s
}

func timeoutResponse(c *gin.Context) {
	c.JSON(http.StatusRequestTimeout, gin.H{"ec": http.StatusRequestTimeout, "msg": "Request timeout"})
}

func timeoutMiddleware(to time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(to),
		timeout.WithResponse(timeoutResponse),
	)
}

func (s *Server) initGinServer(env *config.Env) *gin.Engine {
	pathPrefix := env.AppConfig.PathPrefix
	if pathPrefix == "" {
		pathPrefix = "/api"
	}
	switch {
	case gin.Mode() == gin.TestMode:
	case env.AppConfig.Environment == "production":
		gin.SetMode(gin.ReleaseMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(env.AppConfig.TrustedProxies); err != nil {
		zap.L().Warn("Invalid trusted proxies, forwarding headers ignored",
			zap.Strings("trusted_proxies", env.AppConfig.TrustedProxies),
			zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(s.middleware...)
	r.Use(timeoutMiddleware(s.timeout))

	if s.monitor != nil {
		s.monitor.Use(r)
	}

	if env.CORSConfig.Enabled {
		corsConfig := cors.Config{
			AllowOrigins:     env.CORSConfig.AllowedOrigins,
			AllowMethods:     env.CORSConfig.AllowedMethods,
			AllowHeaders:     env.CORSConfig.AllowedHeaders,
			ExposeHeaders:    env.CORSConfig.ExposedHeaders,
			AllowCredentials: env.CORSConfig.AllowCredentials,
			MaxAge:           time.Duration(env.CORSConfig.MaxAge) * time.Second,
		}

		r.Use(cors.New(corsConfig))
	}

	r.GET("/health", health)

	// Swagger documentation
	r.GET(pathPrefix+"/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	for _, register := range s.routes {
		register(r)
	}
	return r
}

// HealthCheck godoc
//
//	@Summary		Health Check
//	@Description	Returns status 200 if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func health(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Name() string { return "http" }

// Start -.
func (s *Server) Start() {
	go func() {
		zap.L().Info("HTTP server listening", zap.String("addr", s.address))
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.notify <- err
		}
		close(s.notify)
	}()
}

// Notify -.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown drains in-flight requests, bounded by the shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
