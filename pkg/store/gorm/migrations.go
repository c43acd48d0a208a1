package gorm

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/doodlesbykumbi/ums-in-go/pkg/db"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

//go:embed migrations
var migrations embed.FS

// migrate brings the schema to SchemaVersion. It runs on a dedicated
// handle because closing the migrate instance closes the handle too.
func (c *Connector) migrate(ctx context.Context) error {
	conn, err := c.dial(ctx, "migrate")
	if err != nil {
		return err
	}

	m, err := newMigrate(c.driver, conn)
	if err != nil {
		_ = conn.Close()
		return &store.ConnectionError{Op: "migrate", Err: err}
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			c.log.Warn().Err(err).Msg("failed to close migrate instance")
		}
	}()

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		c.log.Info().Msg("creating store schema")
	case err != nil:
		return &store.ConnectionError{Op: "migrate", Err: err}
	default:
		if dirty {
			return &store.ConnectionError{Op: "migrate", Err: fmt.Errorf("%w at version %d", store.ErrDirtySchema, version)}
		}
		if version > SchemaVersion {
			return &store.ConnectionError{
				Op:  "migrate",
				Err: fmt.Errorf("%w: store is at %d, newer than %d", store.ErrVersionMismatch, version, SchemaVersion),
			}
		}
	}

	if err := m.Migrate(SchemaVersion); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return &store.ConnectionError{Op: "migrate", Err: err}
	}

	c.log.Info().Int("schema_version", SchemaVersion).Msg("store schema migrated")
	return nil
}

func newMigrate(driver string, conn *sql.DB) (*migrate.Migrate, error) {
	var (
		dbDriver database.Driver
		err      error
	)
	switch driver {
	case db.DriverSQLite:
		dbDriver, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{MigrationsTable: migrationsTable})
	case db.DriverPostgres:
		dbDriver, err = migratepostgres.WithInstance(conn, &migratepostgres.Config{MigrationsTable: migrationsTable})
	default:
		err = fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, driver, dbDriver)
}
