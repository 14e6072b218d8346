package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Korolev91/estatehub/api"
	"github.com/Korolev91/estatehub/config"
	"github.com/Korolev91/estatehub/internal/bootstrap"
	"github.com/Korolev91/estatehub/internal/cache"
	"github.com/Korolev91/estatehub/internal/kafka"
	"github.com/Korolev91/estatehub/internal/logging"
	"github.com/Korolev91/estatehub/internal/repository"
	"github.com/Korolev91/estatehub/internal/service/agents"
	"github.com/Korolev91/estatehub/internal/service/availability"
	"github.com/Korolev91/estatehub/internal/service/booking"
	"github.com/Korolev91/estatehub/internal/service/catalog"
	"github.com/Korolev91/estatehub/internal/service/commission"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := repository.InitSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("init schema")
	}

	catalogTTL := time.Duration(cfg.Worker.CatalogCacheTTLSecs) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, catalogTTL)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	agentRepo := repository.NewAgentRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	commissionRepo := repository.NewCommissionRepository(pool)

	agentService := agents.NewAgentService(agentRepo, logger)
	catalogService := catalog.NewCatalogService(propertyRepo, redisCache, logger)
	availabilityService := availability.NewAvailabilityService(availabilityRepo, propertyRepo, logger)
	commissionService := commission.NewCommissionService(commissionRepo, logger)
	bookingService := booking.NewBookingService(
		bookingRepo,
		propertyRepo,
		availabilityRepo,
		producer,
		logger,
		cfg.Commission.RatePercent,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	handlers := bootstrap.Handlers{
		Agents:       api.NewAgentHandler(agentService),
		Properties:   api.NewPropertyHandler(catalogService),
		Availability: api.NewAvailabilityHandler(availabilityService),
		Bookings:     api.NewBookingHandler(bookingService),
		Commissions:  api.NewCommissionHandler(commissionService),
	}

	if err := bootstrap.Run(ctx, cfg, logger, handlers); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
