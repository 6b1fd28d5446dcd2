package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/srgjo27/scalable_booking/internal/adapter/handler"
	"github.com/srgjo27/scalable_booking/internal/adapter/repository"
	"github.com/srgjo27/scalable_booking/internal/core/services"
	"github.com/srgjo27/scalable_booking/internal/platform/cache"
	"github.com/srgjo27/scalable_booking/internal/platform/config"
	"github.com/srgjo27/scalable_booking/internal/platform/logger"
	"github.com/srgjo27/scalable_booking/internal/platform/server"
)

func main() {
	cfg, err := config.Load("inventory-service", 8082)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Encoding:    cfg.Log.Encoding,
		Development: cfg.Log.Development,
		Service:     cfg.App.Name,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logg.Sync()

	ctx := context.Background()

	store, err := repository.Open(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Fatal("failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	inventory := services.NewSeatInventoryService(store.ShowSeats, store.Catalog, redisClient, logg,
		services.WithCacheTTL(cfg.Redis.CacheTTL))

	router := handler.NewRouter(cfg.App.Name, logg, handler.NewInventoryHandler(inventory))

	if err := server.Run(cfg.Server, router, logg); err != nil {
		logg.Error("server failed", zap.Error(err))
	}
}
