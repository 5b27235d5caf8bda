package main

import (
	"nutrisur/config"
	"nutrisur/di"
	"nutrisur/infras/postgres"
	"nutrisur/shared/logger"

	"github.com/rs/zerolog/log"
)

//	@title						NutriSur API
//	@version					1.0
//	@description				Appointments, products and orders for the NutriSur clinic, with chat booking and ordering.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Refusing to start")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := postgres.Migrate(cfg, postgres.MigrateUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
