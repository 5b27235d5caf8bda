package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"nutrisur/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	maxIdleConnections = 10
	maxOpenConnections = 10
)

var ErrUnavailable = errors.New("database connection unavailable")

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	host     string
	port     string
	username string
	password string
	database string
	sslMode  string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  connect(endpointOf("read", pg.Read, pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
		Write: connect(endpointOf("write", pg.Write, pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
	}
}

func endpointOf(name string, pg config.Postgres, prefix string) endpoint {
	return endpoint{
		name:     name,
		host:     pg.Host,
		port:     pg.Port,
		username: pg.Username,
		password: pg.Password,
		database: prefix + pg.Name,
		sslMode:  pg.SSLMode,
	}
}

// WithTx runs fn inside a write transaction, rolling back when fn fails.
func (c *Connection) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if c == nil || c.Write == nil {
		return ErrUnavailable
	}

	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error().Err(rollbackErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return ErrUnavailable
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read pool: %w", err)
	}

	return nil
}

func (e endpoint) dsn() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		e.username,
		e.password,
		net.JoinHostPort(e.host, e.port),
		e.database,
		e.sslMode,
	)
}

func connect(e endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	for attempt := range max(maxRetry, 1) {
		db, err := sqlx.Connect(driverName, e.dsn())
		if err == nil {
			log.Info().
				Str("name", e.name).
				Str("host", e.host).
				Str("dbName", e.database).
				Msg("Connected to database")

			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)

			return db
		}

		log.Error().
			Err(err).
			Str("name", e.name).
			Str("host", e.host).
			Str("dbName", e.database).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	return nil
}
