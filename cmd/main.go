package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/duccv/shop-admin/config"
	"github.com/duccv/shop-admin/internal/handler"
	"github.com/duccv/shop-admin/internal/middleware"
	"github.com/duccv/shop-admin/internal/repository"
	"github.com/duccv/shop-admin/internal/router"
	"github.com/duccv/shop-admin/internal/service"
	"github.com/duccv/shop-admin/internal/token"
	"github.com/duccv/shop-admin/pkg/cache"
	"github.com/duccv/shop-admin/pkg/database"
	"github.com/duccv/shop-admin/pkg/logger"
	"github.com/duccv/shop-admin/pkg/metrics"
	"github.com/duccv/shop-admin/pkg/server"
	grpc_server "github.com/duccv/shop-admin/pkg/server/grpc"
	http_server "github.com/duccv/shop-admin/pkg/server/http"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Shop Admin APIs
//	@version		1.0
//	@description	Admin back office for the e-commerce store: login, products, orders and database status.
//	@termsOfService	http://swagger.io/terms/
//	@contact.name	DucCV
//	@contact.email	duccv@gviet.vn
//	@BasePath		/api

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				JWT authorization header
func main() {
	env := config.GetEnv()

	zapLogger := logger.GetLogger(env.LoggerConfig)
	zap.ReplaceGlobals(zapLogger)
	defer zapLogger.Sync()

	if err := run(env); err != nil {
		zap.L().Error("Application stopped with error", zap.Error(err))
		zapLogger.Sync()
		os.Exit(1)
	}
}

func run(env *config.Env) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbFactory := database.NewDatabaseFactory()
	defer dbFactory.CloseAll()

	db, err := dbFactory.CreateDatabase(ctx, "main", &env.DatabaseConfig)
	if err != nil {
		return err
	}

	rdb, err := cache.NewRedisClient(ctx, env.RedisConfig)
	if err != nil {
		// the memory tier still serves; redis is an optimisation
		zap.L().Warn("Redis unavailable, continuing with memory cache only", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	memCache := cache.NewCache(env.CacheConfig)
	defer memCache.Stop()
	loader := cache.NewLoader(memCache, rdb, env.CacheConfig)

	tokenOpts := []token.Option{token.WithTTL(time.Duration(env.AuthConfig.TTLSeconds) * time.Second)}
	if env.AuthConfig.RequireExpiry {
		tokenOpts = append(tokenOpts, token.WithRequiredExpiry())
	}
	tokens, err := token.New([]byte(env.AuthConfig.Secret), tokenOpts...)
	if err != nil {
		return err
	}

	recorder := metrics.Noop
	httpOpts := []http_server.Option{
		http_server.Port(strconv.Itoa(env.AppConfig.Port)),
		http_server.Timeout(time.Duration(env.AppConfig.RequestTimeout) * time.Second),
		http_server.ShutdownTimeout(time.Duration(env.AppConfig.ShutdownTimeout) * time.Second),
		http_server.Middleware(
			middleware.CorrelationIDMiddleware(),
			middleware.RequestLogger(middleware.DefaultSlowRequestThreshold),
		),
	}
	if env.MetricsConfig.Enabled {
		monitor := metrics.GetMonitor(env.MetricsConfig.Path)
		recorder = metrics.NewRecorder(monitor)
		httpOpts = append(httpOpts, http_server.Monitor(monitor))
	}

	// Repository
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	statusRepo := repository.NewStatusRepository(db)

	// Service
	authService := service.NewAuthService(userRepo, tokens, recorder)
	catalogService := service.NewCatalogService(productRepo, loader)
	orderService := service.NewOrderService(orderRepo)
	statusService := service.NewStatusService(statusRepo, db.Host(), db.Name())

	// Handler
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(catalogService),
		Order:   handler.NewOrderHandler(orderService),
		Status:  handler.NewStatusHandler(statusService),
	}
	auth := middleware.NewAuthMiddleware(tokens, recorder)

	httpOpts = append(httpOpts, http_server.Routes(func(r *gin.Engine) {
		router.Register(r, env.AppConfig.PathPrefix, handlers, auth)
	}))

	servers := []server.Runnable{http_server.New(env, httpOpts...)}
	if env.GRPCConfig.Enabled {
		servers = append(servers, grpc_server.New(
			grpc_server.Port(strconv.Itoa(env.GRPCConfig.Port)),
			grpc_server.HealthCheck(db.Ping, time.Duration(env.GRPCConfig.HealthCheckInterval)*time.Second),
			grpc_server.ServiceName(env.AppConfig.Name),
		))
	}

	zap.L().Info("Starting application",
		zap.String("name", env.AppConfig.Name),
		zap.String("version", env.AppConfig.Version),
		zap.String("environment", env.AppConfig.Environment))

	shutdownTimeout := time.Duration(env.AppConfig.ShutdownTimeout) * time.Second
	return server.Run(ctx, func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), shutdownTimeout)
	}, servers...)
}
