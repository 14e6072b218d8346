package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Korolev91/estatehub/config"
	"github.com/Korolev91/estatehub/internal/email"
	"github.com/Korolev91/estatehub/internal/kafka"
	"github.com/Korolev91/estatehub/internal/logging"
	"github.com/Korolev91/estatehub/internal/metrics"
	"github.com/Korolev91/estatehub/internal/repository"
	"github.com/Korolev91/estatehub/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.Logging)
	metrics.Register()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	bookingService := booking.NewBookingService(
		bookingRepo,
		propertyRepo,
		availabilityRepo,
		producer,
		logger,
		cfg.Commission.RatePercent,
		cfg.Kafka.BookingEventsTopic,
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn().Err(err).Msg("decode event error")
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			logger.Warn().Err(err).Msg("consumer stopped")
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.ArchiveSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	for {
		select {
		case <-sweepTicker.C:
			archived, err := bookingService.ArchiveSweep(ctx, time.Now())
			if err != nil {
				logger.Error().Err(err).Msg("archive sweep error")
				continue
			}
			if archived > 0 {
				logger.Info().Int("archived", archived).Msg("archived stale bookings")
			}
		case <-ctx.Done():
			logger.Info().Msg("shutting down worker")
			return
		}
	}
}
