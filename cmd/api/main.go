package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lyvest/lyvest-backend/api/controllers"
	"github.com/lyvest/lyvest-backend/api/routes"
	"github.com/lyvest/lyvest-backend/internal/cart"
	"github.com/lyvest/lyvest-backend/internal/favorites"
	"github.com/lyvest/lyvest-backend/internal/sizing"
	"github.com/lyvest/lyvest-backend/pkg/config"
	"github.com/lyvest/lyvest-backend/pkg/db"
	"github.com/lyvest/lyvest-backend/pkg/kvstore"
	"github.com/lyvest/lyvest-backend/pkg/logger"
	"github.com/lyvest/lyvest-backend/pkg/metrics"
	"github.com/lyvest/lyvest-backend/pkg/migrate"
	"github.com/lyvest/lyvest-backend/pkg/outbox"
	"github.com/lyvest/lyvest-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	readyChecks := map[string]controllers.Pinger{}

	backend, redisClient, err := storageBackend(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage backend", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}()
		readyChecks["redis"] = redisClient
	}

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	var remote favorites.RemoteStore
	if cfg.DB.Enabled() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}()
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}
		remote = favorites.NewRepository(dbClient.DB())
		readyChecks["db"] = dbClient
	}

	queue := outbox.NewQueue(cfg.Outbox.BufferSize, logg)
	if remote != nil {
		consumer, err := favorites.NewConsumer(favorites.ConsumerParams{
			Remote:      remote,
			Logger:      logg,
			Metrics:     engineMetrics,
			MaxAttempts: cfg.Outbox.MaxAttempts,
		})
		if err != nil {
			logg.Error(ctx, "failed to create favorites consumer", err)
			os.Exit(1)
		}
		go queue.Run(ctx, consumer.Handle)
	}

	cartSlot := kvstore.NewSlot(backend, "cart", cart.ValidLineItem, cart.MaxDistinctItems, logg)
	cartService := cart.NewService(ctx, cart.ServiceParams{
		Slot:    cartSlot,
		Logger:  logg,
		Metrics: engineMetrics,
	})

	favoritesSlot := kvstore.NewSlot(backend, "favorites", favorites.ValidID, favorites.MaxFavorites, logg)
	favoritesService := favorites.NewService(ctx, favorites.ServiceParams{
		Slot:        favoritesSlot,
		Remote:      remote,
		Queue:       queue,
		Logger:      logg,
		Metrics:     engineMetrics,
		ClearRemote: cfg.Favorites.ClearRemote,
	})

	advisor := sizing.NewAdvisor(sizing.AdvisorParams{
		Client:  clientOrNil(sizing.NewHTTPClient(cfg.SizeAI)),
		Logger:  logg,
		Metrics: engineMetrics,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	lctx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Backend,
		"remote":  remote != nil,
	})
	logg.Info(lctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:          cfg,
			Logger:          logg,
			Cart:            cartService,
			Favorite:        favoritesService,
			Sizing:          advisor,
			ReadyChecks:     readyChecks,
			MetricsGatherer: registry,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(lctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(lctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(lctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

// storageBackend wires the slot adapter to the configured backend. The redis
// client is returned separately so the caller can close it and probe it.
func storageBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kvstore.Backend, *redis.Client, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendFile:
		backend, err := kvstore.NewFile(cfg.Storage.FileDir)
		return backend, nil, err

	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewRedis(client), client, nil

	default:
		return kvstore.NewMemory(), nil, nil
	}
}

// clientOrNil keeps a typed nil *HTTPClient from masquerading as a non-nil
// AIClient interface.
func clientOrNil(c *sizing.HTTPClient) sizing.AIClient {
	if c == nil {
		return nil
	}
	return c
}
