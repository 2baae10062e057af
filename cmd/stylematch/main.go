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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylematch/internal/config"
	"github.com/kailas-cloud/stylematch/internal/db"
	dbRedis "github.com/kailas-cloud/stylematch/internal/db/redis"
	logpkg "github.com/kailas-cloud/stylematch/internal/logger"
	"github.com/kailas-cloud/stylematch/internal/metrics"
	catalogrepo "github.com/kailas-cloud/stylematch/internal/repository/catalog"
	"github.com/kailas-cloud/stylematch/internal/repository/reccache"
	chiTransport "github.com/kailas-cloud/stylematch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/stylematch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/stylematch/internal/usecase/recommend"
	"github.com/kailas-cloud/stylematch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting stylematch API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Int("max_features", cfg.Engine.MaxFeatures),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	ctx := context.Background()

	// Optional result cache
	var store db.Store
	var cache recommenduc.ResultCache
	if cfg.Cache.Enabled {
		store = openStore(ctx, cfg.Cache, logger)
		defer store.Close()
		cache = reccache.New(store, time.Duration(cfg.Cache.TTLSec)*time.Second, metrics.ResultCacheTotal, logger)
	}

	source, err := catalogrepo.Open(cfg.Catalog.Path, cfg.Catalog.Format, cfg.Catalog.IDColumn)
	if err != nil {
		logger.Fatal("Invalid catalog source", zap.Error(err))
	}

	recommendSvc := recommenduc.New(source, recommenduc.BuildOptions{
		MaxFeatures: cfg.Engine.MaxFeatures,
		Workers:     cfg.Engine.Workers,
	}, cache, logger)

	// The service never starts without a model.
	if _, err := recommendSvc.Load(ctx); err != nil {
		logger.Fatal("Failed to build corpus model", zap.Error(err))
	}

	// Pass nil interface (not typed nil pointer!) when the cache is disabled.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(recommendSvc, cachePinger)

	server := chiTransport.NewServer(recommendSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// SIGHUP reloads the catalog; SIGINT/SIGTERM shut down.
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	for running := true; running; {
		select {
		case <-reload:
			logger.Info("Received reload signal")
			if _, err := recommendSvc.Load(ctx); err != nil {
				logger.Error("Reload failed, keeping previous model", zap.Error(err))
			}
		case <-quit:
			running = false
		}
	}
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore connects to the result cache backend and waits for it to answer.
func openStore(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) db.Store {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case "valkey", "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.String("driver", cfg.Driver), zap.Error(err))
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Cache not ready", zap.Error(err))
	}
	logger.Info("Connected to result cache",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store
}
