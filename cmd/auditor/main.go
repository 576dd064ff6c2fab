package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"washq/internal/auditor"
	"washq/pkg/config"
	"washq/pkg/kafka"
	kafka_config "washq/pkg/kafka/config"
	kafka_middleware "washq/pkg/kafka/middleware"
	"washq/pkg/logger"
)

const (
	ServiceName = "auditor"
	GroupID     = "booking-auditor"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:     getEnv(config.EnvLogLevel, logger.INFO),
		Format:    logger.JSON,
		AddSource: true,
		Service:   ServiceName,
		File:      getEnv(config.EnvLogFile, ""),
	})

	topic := getEnv(config.EnvBookingEventsTopic, config.DefaultBookingEventsTopic)
	kafkaCfg := kafka_config.Load()

	consumer, err := kafka.NewConsumer(kafkaCfg, topic, GroupID, topic+".dlq", auditor.New(log).Handle)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	log.Info("Starting booking auditor", "topic", topic, "group_id", GroupID, "brokers", kafkaCfg.Brokers)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
	log.Info("Auditor stopped gracefully")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
