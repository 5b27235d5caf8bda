package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV" default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT" default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"nutrisur"`
		Timezone string `envconfig:"TIMEZONE" default:"America/Santiago"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary Redis `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN" default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int      `envconfig:"MAX_RETRY" default:"3"`
			RetryWaitTime  int      `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string   `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool     `envconfig:"AUTO_MIGRATE"`
			Prefix         string   `envconfig:"PREFIX"`
			Read           Postgres `envconfig:"READ"`
			Write          Postgres `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"nutrisur-notifier"`
		Topic         string   `envconfig:"TOPIC" default:"notifications"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Dialogue struct {
		SessionTTLSeconds int      `envconfig:"SESSION_TTL_SECONDS" default:"3600"`
		Languages         []string `envconfig:"LANGUAGES" default:"en,es"`
	} `envconfig:"DIALOGUE"`

	Assistant struct {
		RequestsPerMinute   int    `envconfig:"REQUESTS_PER_MINUTE" default:"20"`
		Burst               int    `envconfig:"BURST" default:"5"`
		HistoryLimit        int    `envconfig:"HISTORY_LIMIT" default:"20"`
		BookingInstructions string `envconfig:"BOOKING_INSTRUCTIONS"`
		OrderInstructions   string `envconfig:"ORDER_INSTRUCTIONS"`
	} `envconfig:"ASSISTANT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
		LLM struct {
			Provider       string `envconfig:"PROVIDER" default:"gemini"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"20"`
			Gemini         struct {
				APIKey string `envconfig:"API_KEY"`
				Model  string `envconfig:"MODEL" default:"gemini-1.5-flash"`
			} `envconfig:"GEMINI"`
			Ark struct {
				APIKey  string `envconfig:"API_KEY"`
				BaseURL string `envconfig:"BASE_URL"`
				Region  string `envconfig:"REGION"`
				Model   string `envconfig:"MODEL"`
			} `envconfig:"ARK"`
		} `envconfig:"LLM"`
	} `envconfig:"EXTERNAL"`
}

// Postgres is one side of the read/write split.
type Postgres struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Redis struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

var (
	conf Config

	ErrMissingSecret = errors.New("JWT access and refresh secrets are required")
)

// load reads .env when present, then the process environment. It runs once per process.
var load = sync.OnceValue(func() error {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file, using the process environment")
	}

	if err := envconfig.Process("", &conf); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	log.Info().Str("env", conf.Server.Env).Msg("configuration loaded")

	return nil
})

// Get returns the process configuration, exiting when it cannot be loaded.
func Get() *Config {
	if err := load(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	return &conf
}

// Validate reports settings the HTTP service cannot start without.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return ErrMissingSecret
	}

	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("JWT access and refresh secrets must differ")
	}

	return nil
}
