package main

import (
	"os"

	"nutrisur/config"
	"nutrisur/infras/postgres"
	"nutrisur/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: migrate up|down|step-up|drop")
	}

	if err := postgres.Migrate(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
