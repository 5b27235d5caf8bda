package logger

import (
	"io"
	"os"
	"time"

	"nutrisur/config"
	"nutrisur/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger: console output while developing, JSON lines in production.
func Init(cfg *config.Config) {
	Setup(os.Stdout, cfg)
}

// Setup is Init with an explicit writer.
func Setup(out io.Writer, cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Server.Env != constant.ServerEnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("app", cfg.App.Name).Logger()

	zerolog.SetGlobalLevel(Level(cfg.Server.LogLevel))
}

// Level parses a zerolog level name, defaulting to info.
func Level(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}

	return level
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
