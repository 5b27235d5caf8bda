package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nutrisur/config"
	"nutrisur/di"
	"nutrisur/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, set KAFKA_ENABLE=true to run the notifier")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeNotifier()

	defer func() {
		if err := worker.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}()

	if err := worker.Notifier.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Notifier stopped")

		return
	}

	log.Info().Msg("Notifier shut down gracefully")
}
