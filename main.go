package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pawshearts/pawshearts/backend/go-services/handlers"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/config"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/database"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/diagnostics"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation/handler"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation/repository"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation/service"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/logger"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/metrics"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// storeDeps carries the store handle into the handlers. Both fields stay nil
// when no store could be initialized.
type storeDeps struct {
	gateway   repository.Gateway
	inspector diagnostics.Inspector
	close     func(context.Context)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	logger.Infof("config loaded: driver=%s database_url=%v database=%s rate_limit=%v",
		cfg.Database.Driver, cfg.Database.URL != "", cfg.Database.Name, cfg.RateLimit.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := openStore(ctx, cfg)
	rdb := connectRedis(ctx, cfg)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(cfg, deps, rdb)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting donation service on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("server shutdown: %v", err)
	}
	deps.close(shutdownCtx)
	if rdb != nil {
		_ = rdb.Close()
	}
}

// openStore initializes the store once without waiting for the database.
// A missing or unreachable database is not fatal: the service still starts,
// reports the problem on /test and picks the database up once it answers.
func openStore(ctx context.Context, cfg *config.Config) storeDeps {
	deps := storeDeps{close: func(context.Context) {}}

	if cfg.Database.Driver == config.DriverMemory {
		logger.Warnf("using in-memory donation store; data is lost on restart")
		mem := repository.NewMemoryGateway()
		deps.gateway = mem
		deps.inspector = mem
		return deps
	}

	if cfg.Database.URL == "" {
		logger.Warnf("DATABASE_URL not set; donation endpoints will fail until a database is configured")
		return deps
	}
	h, err := database.OpenMongo(cfg.Database)
	if err != nil {
		logger.Errorf("could not create MongoDB client: %v", err)
		return deps
	}
	go func() {
		if err := h.WaitReady(ctx); err != nil {
			logger.Errorf("MongoDB not reachable, requests will fail until it is: %v", err)
			return
		}
		logger.Infof("connected to MongoDB database %q", cfg.Database.Name)
	}()
	deps.gateway = repository.NewMongoGateway(h.DB)
	deps.inspector = h.DB
	deps.close = func(ctx context.Context) {
		if err := h.Close(ctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
	return deps
}

// connectRedis returns a client only when the Redis-backed limiter is enabled and reachable.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.RateLimit.Enabled || !cfg.RateLimit.UseRedis || cfg.Redis.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s:%s), using in-memory rate limiter: %v", cfg.Redis.Host, cfg.Redis.Port, err)
		_ = client.Close()
		return nil
	}
	logger.Infof("connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
	return client
}

func newRouter(cfg *config.Config, deps storeDeps, rdb *redis.Client) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.CORS())

	if cfg.RateLimit.Enabled {
		if rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.NewStatusHandler(deps.inspector, cfg.Database.URL != "").Register(r)
	handlers.RegisterSwagger(r)
	handler.RegisterDonationRoutes(r, service.New(deps.gateway))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
