package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"nutrisur/config"
	"nutrisur/shared/constant"
	"nutrisur/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func production(level string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = level
	cfg.App.Name = "nutrisur"

	return cfg
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.Level("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.Level("WARN"))
	assert.Equal(t, zerolog.InfoLevel, logger.Level(""))
	assert.Equal(t, zerolog.InfoLevel, logger.Level("chatty"))
}

func TestSetup(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	t.Run("production writes json", func(t *testing.T) {
		var buf bytes.Buffer

		logger.Setup(&buf, production("info"))
		log.Info().Str("order_id", "order-1").Msg("order finalized")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

		assert.Equal(t, "order finalized", line["message"])
		assert.Equal(t, "order-1", line["order_id"])
		assert.Equal(t, "nutrisur", line["app"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer

		logger.Setup(&buf, production("warn"))
		log.Info().Msg("hidden")

		assert.Empty(t, buf.String())
	})

	t.Run("development is human readable", func(t *testing.T) {
		var buf bytes.Buffer

		cfg := production("debug")
		cfg.Server.Env = "development"

		logger.Setup(&buf, cfg)
		log.Debug().Msg("slot offered")

		assert.Contains(t, buf.String(), "slot offered")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}

func TestErrorWithStack(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer

	logger.Setup(&buf, production("error"))
	logger.ErrorWithStack(errors.New("insert failed"))

	assert.Contains(t, buf.String(), "insert failed")
	assert.Contains(t, buf.String(), "logger_test.go")
}
