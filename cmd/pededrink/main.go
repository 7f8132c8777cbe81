package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	_ "github.com/tair/pededrink/docs"
	"github.com/tair/pededrink/internal/config"
	"github.com/tair/pededrink/internal/inventory"
	httpDelivery "github.com/tair/pededrink/internal/inventory/delivery/http"
	"github.com/tair/pededrink/internal/inventory/repository"
	"github.com/tair/pededrink/internal/user"
	userHTTP "github.com/tair/pededrink/internal/user/delivery/http"
	"github.com/tair/pededrink/kafka"
	"github.com/tair/pededrink/pkg/auth"
	"github.com/tair/pededrink/pkg/database"
	"github.com/tair/pededrink/pkg/logger"
	"github.com/tair/pededrink/pkg/middleware"
	"github.com/tair/pededrink/pkg/tracing"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(logger.Options{
		Service:     cfg.ServiceName,
		Development: cfg.IsDevelopment(),
		File:        cfg.LogFile,
	})
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("store_driver", cfg.StoreDriver).
		Msg("Starting PedeDrink service")

	// Prices and totals are written as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
	auth.Configure(cfg.JWTSecret, cfg.JWTTTL)

	tp, err := tracing.InitTracer(cfg.ServiceName, version, cfg.JaegerEndpoint, cfg.TracingEnabled)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	ctx := context.Background()

	var db *gorm.DB
	if cfg.StoreDriver == config.DriverPostgres {
		db, err = database.NewGormConnection(database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
	}

	rdb := connectRedis(ctx, cfg)

	store, err := inventory.NewSnapshotStore(cfg, db, rdb)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open snapshot store")
	}
	defer store.Close()

	state, err := inventory.InitializeState(cfg, store)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize state")
	}
	if err := state.Load(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load snapshot")
	}
	if cfg.SeedDemoData {
		created, err := state.Seed(ctx, repository.DemoProducts())
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to seed demo catalog")
		}
		logger.Logger.Info().Int("products", created).Msg("Demo catalog seeded")
	}

	userRepo, err := user.ProvideUserRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user repository")
	}
	if err := user.SeedAdmin(ctx, userRepo, cfg); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed admin")
	}

	var events httpDelivery.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, domain events disabled")
		} else {
			events = publisher
			defer publisher.Close()
		}
	}

	reg := prometheus.DefaultRegisterer
	metrics := middleware.NewHTTPMetrics("pededrink", reg)
	inventoryHandler := inventory.InitializeHTTPHandler(state, events, metrics, reg)
	userHandler := user.InitializeHTTPHandler(userRepo, metrics, reg)

	sweep := inventory.InitializeLowStockSweep(state, reg)
	if err := sweep.Start(cfg.LowStockSchedule); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to schedule low stock sweep")
	}
	sweep.Run(ctx)

	srv := newServer(cfg, inventoryHandler, userHandler, inventory.StoreHealthCheck(db, rdb), rdb)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	sweep.Stop(shutdownCtx)
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}
	if rdb != nil {
		rdb.Close()
	}
}

// connectRedis returns nil when Redis is not configured. An unreachable
// Redis is fatal only for the redis store driver.
func connectRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		if cfg.StoreDriver == config.DriverRedis {
			logger.Logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, rate limiting disabled")
		rdb.Close()
		return nil
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	return rdb
}

func newServer(
	cfg config.Config,
	inventoryHandler *httpDelivery.InventoryHandler,
	userHandler *userHTTP.UserHandler,
	health httpDelivery.HealthCheck,
	rdb *redis.Client,
) *http.Server {
	router := mux.NewRouter()

	mwConfig := middleware.DefaultConfig(cfg.CORSOrigin)
	middleware.RegisterMiddlewares(router, mwConfig)

	userHandler.RegisterRoutes(router)
	inventoryHandler.RegisterRoutes(router)
	inventoryHandler.RegisterHealthCheck(router, health)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var handler http.Handler = router
	if rdb != nil {
		limiter := middleware.NewRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow)
		handler = limiter.Middleware(handler)
	}
	handler = middleware.CORS(mwConfig)(handler)

	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
