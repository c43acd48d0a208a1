package integration

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/doodlesbykumbi/ums-in-go/pkg/db"
)

// Backend hands out a fresh, empty store for every scenario
type Backend interface {
	Driver() string
	NewStore(ctx context.Context) (string, error)
	Close(ctx context.Context)
}

// SQLiteBackend creates one database file per scenario
type SQLiteBackend struct {
	dir string
	n   atomic.Int32
}

func NewSQLiteBackend(dir string) *SQLiteBackend {
	return &SQLiteBackend{dir: dir}
}

func (b *SQLiteBackend) Driver() string {
	return db.DriverSQLite
}

func (b *SQLiteBackend) NewStore(ctx context.Context) (string, error) {
	return filepath.Join(b.dir, fmt.Sprintf("ums-%d.db", b.n.Add(1))), nil
}

func (b *SQLiteBackend) Close(ctx context.Context) {}

// PostgresBackend runs one PostgreSQL container and creates one database
// per scenario
type PostgresBackend struct {
	container *tcpostgres.PostgresContainer
	admin     *sql.DB
	host      string
	port      string
	n         atomic.Int32
}

func NewPostgresBackend(ctx context.Context) (*PostgresBackend, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ums_test"),
		tcpostgres.WithUsername("ums"),
		tcpostgres.WithPassword("ums"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	b := &PostgresBackend{container: pgContainer, host: host, port: port.Port()}
	admin, err := sql.Open("postgres", b.url("ums_test"))
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	b.admin = admin
	return b, nil
}

func (b *PostgresBackend) Driver() string {
	return db.DriverPostgres
}

func (b *PostgresBackend) NewStore(ctx context.Context) (string, error) {
	name := fmt.Sprintf("ums_scenario_%d", b.n.Add(1))
	if _, err := b.admin.ExecContext(ctx, "CREATE DATABASE "+name); err != nil {
		return "", fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return b.url(name), nil
}

func (b *PostgresBackend) Close(ctx context.Context) {
	if b.admin != nil {
		_ = b.admin.Close()
	}
	if b.container != nil {
		_ = b.container.Terminate(ctx)
	}
}

func (b *PostgresBackend) url(database string) string {
	return fmt.Sprintf("postgres://ums:ums@%s:%s/%s?sslmode=disable", b.host, b.port, database)
}
