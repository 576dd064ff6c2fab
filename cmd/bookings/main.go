package main

import (
	adminhandler "washq/internal/admin/handler"
	adminservice "washq/internal/admin/service"
	"washq/internal/bookings/events"
	"washq/internal/bookings/handler"
	"washq/internal/bookings/repository"
	"washq/internal/bookings/service"
	"washq/internal/bookings/validator"
	"washq/pkg/app"
	"washq/pkg/config"
	"washq/pkg/kafka"
	kafka_config "washq/pkg/kafka/config"
	kafka_middleware "washq/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	if cfg.RedisAddr != "" {
		cfg.SetRedis()
	}
	defer cfg.GracefulShutdown()

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	cfg.Log.Info("Starting bookings service")
	bookingService := initServices(cfg, publisher)
	authService := adminservice.NewAuthService(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, authService, cfg.Log),
		adminhandler.NewAuthHandler(authService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.SlotTimes, cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled (no Kafka brokers configured)")
		return events.NewNoopPublisher()
	}

	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsTopic+".dlq")
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Booking events enabled",
		"topic", cfg.BookingEventsTopic,
		"brokers", kafkaCfg.Brokers,
	)
	return events.NewKafkaPublisher(producer, cfg.Log)
}
