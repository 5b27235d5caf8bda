// Package handler exposes the service as a single serverless function.
package handler

import (
	"net/http"
	"sync"

	"nutrisur/config"
	"nutrisur/di"
	"nutrisur/shared/logger"

	"github.com/rs/zerolog/log"
)

// service is built on the first invocation and reused while the instance stays warm.
var service = sync.OnceValue(func() http.Handler {
	cfg := config.Get()

	logger.Init(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Refusing to start")
	}

	return di.InitializeService()
})

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	service().ServeHTTP(w, r)
}
