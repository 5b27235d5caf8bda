package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"nutrisur/config"
	"nutrisur/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStepUp = "step-up"
	MigrateDrop   = "drop"
)

var ErrUnknownMigration = errors.New("unknown migration action, use up, down, step-up or drop")

var migrationSteps = map[string]func(m *migrate.Migrate) error{
	MigrateUp:     (*migrate.Migrate).Up,
	MigrateDown:   func(m *migrate.Migrate) error { return m.Steps(-1) },
	MigrateStepUp: func(m *migrate.Migrate) error { return m.Steps(1) },
	MigrateDrop:   (*migrate.Migrate).Down,
}

// Migrate applies the embedded schema to the write database.
func Migrate(cfg *config.Config, action string) error {
	step, ok := migrationSteps[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMigration, action)
	}

	mig, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer mig.Close()

	if err = step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate %s: %w", action, err)
	}

	version, dirty, _ := mig.Version()
	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func newMigrate(cfg *config.Config) (*migrate.Migrate, error) {
	pg := cfg.DB.Postgres

	source, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	dsn := endpointOf("migrate", pg.Write, pg.Prefix).dsn()

	if pg.MigrationTable != "" {
		dsn += "&x-migrations-table=" + url.QueryEscape(pg.MigrationTable)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return mig, nil
}
