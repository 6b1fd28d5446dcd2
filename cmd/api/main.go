package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/srgjo27/scalable_booking/internal/adapter/client"
	"github.com/srgjo27/scalable_booking/internal/adapter/handler"
	"github.com/srgjo27/scalable_booking/internal/adapter/repository"
	"github.com/srgjo27/scalable_booking/internal/core/ports"
	"github.com/srgjo27/scalable_booking/internal/core/services"
	"github.com/srgjo27/scalable_booking/internal/platform/cache"
	"github.com/srgjo27/scalable_booking/internal/platform/config"
	"github.com/srgjo27/scalable_booking/internal/platform/logger"
	"github.com/srgjo27/scalable_booking/internal/platform/server"
)

func main() {
	cfg, err := config.Load("booking-service", 8080)
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

	var routes []handler.Routes
	var seats ports.SeatInventory

	if cfg.SeatService.BaseURL != "" {
		logg.Info("using remote seat inventory", zap.String("base_url", cfg.SeatService.BaseURL))
		seats = client.NewSeatClient(cfg.SeatService, logg)
	} else {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Fatal("failed to connect to redis", zap.Error(err))
		}
		if redisClient != nil {
			defer redisClient.Close()
		}

		logg.Info("using in-process seat inventory")
		inventory := services.NewSeatInventoryService(store.ShowSeats, store.Catalog, redisClient, logg,
			services.WithCacheTTL(cfg.Redis.CacheTTL))
		seats = inventory
		routes = append(routes, handler.NewInventoryHandler(inventory))
	}

	payments := client.NewPaymentClient(cfg.PaymentService, logg)

	bookingService := services.NewBookingService(store.Bookings, seats, logg)
	orchestrator := services.NewBookingOrchestrator(bookingService, payments, logg)
	routes = append(routes, handler.NewBookingHandler(bookingService, orchestrator))

	router := handler.NewRouter(cfg.App.Name, logg, routes...)

	if err := server.Run(cfg.Server, router, logg); err != nil {
		logg.Error("server failed", zap.Error(err))
	}
}
