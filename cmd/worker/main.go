package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neighbourgood/booking/config"
	"github.com/neighbourgood/booking/internal/kafka"
	"github.com/neighbourgood/booking/internal/notify"
	"github.com/neighbourgood/booking/internal/repository"
	"github.com/neighbourgood/booking/internal/service/booking"
	"github.com/neighbourgood/booking/internal/service/catalog"
	kafkaGo "github.com/segmentio/kafka-go"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	resourceRepo := repository.NewResourceRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	catalogService := catalog.NewCatalogService(resourceRepo, nil)
	bookingService := booking.NewBookingService(
		bookingRepo,
		catalogService,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := notify.NewSender(slog.Default())

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return sender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweepEvery := time.Duration(cfg.Worker.ReminderSweepHours) * time.Hour
	if sweepEvery <= 0 {
		sweepEvery = 24 * time.Hour
	}
	reminderTicker := time.NewTicker(sweepEvery)
	defer reminderTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-reminderTicker.C:
			due, err := bookingService.RemindDueReturns(ctx)
			if err != nil {
				log.Printf("remind due returns error: %v", err)
				continue
			}
			if len(due) > 0 {
				log.Printf("sent %d return reminders", len(due))
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
