package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neighbourgood/booking/api"
	"github.com/neighbourgood/booking/config"
	"github.com/neighbourgood/booking/internal/bootstrap"
	"github.com/neighbourgood/booking/internal/cache"
	"github.com/neighbourgood/booking/internal/kafka"
	"github.com/neighbourgood/booking/internal/metrics"
	"github.com/neighbourgood/booking/internal/repository"
	"github.com/neighbourgood/booking/internal/service/booking"
	"github.com/neighbourgood/booking/internal/service/catalog"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ResourceCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	resourceRepo := repository.NewResourceRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	catalogService := catalog.NewCatalogService(resourceRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		catalogService,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithMetrics(metrics.New()),
	)

	bookingHandler := api.NewBookingHandler(bookingService)
	resourceHandler := api.NewResourceHandler(catalogService, bookingService)

	if err := bootstrap.Run(ctx, cfg, bookingHandler, resourceHandler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
