package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Drivers lists the supported driver names.
var Drivers = []string{DriverSQLite, DriverPostgres}

const (
	sqliteBusyTimeout = "_pragma=busy_timeout(5000)"
	sqliteJournalMode = "_pragma=journal_mode(wal)"
)

// Opener opens a database/sql handle. It is swapped out in tests.
type Opener func(driver, url string) (*sql.DB, error)

// OpenSQL opens a database/sql handle for one of Drivers. Like sql.Open it
// does not connect; callers ping.
func OpenSQL(driver, url string) (*sql.DB, error) {
	switch driver {
	case "", DriverSQLite:
		conn, err := sql.Open("sqlite", SQLiteDSN(url))
		if err != nil {
			return nil, err
		}
		// one writer per handle; concurrent handles wait on busy_timeout
		conn.SetMaxOpenConns(1)
		return conn, nil
	case DriverPostgres:
		return sql.Open("postgres", url)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLiteDSN adds the default pragmas to a sqlite URL.
func SQLiteDSN(url string) string {
	var params []string
	if !strings.Contains(url, "busy_timeout") {
		params = append(params, sqliteBusyTimeout)
	}
	if !strings.Contains(url, "journal_mode") && !strings.Contains(url, ":memory:") {
		params = append(params, sqliteJournalMode)
	}
	if len(params) == 0 {
		return url
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + strings.Join(params, "&")
}

// Dialector returns the GORM dialector for driver over an existing handle.
func Dialector(driver string, conn *sql.DB) (gorm.Dialector, error) {
	switch driver {
	case "", DriverSQLite:
		return sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: conn}), nil
	case DriverPostgres:
		return postgres.New(postgres.Config{
			Conn:                 conn,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Wrap opens GORM on top of conn. Transactions are managed explicitly by
// the stores, so GORM's implicit per-write transaction is off.
func Wrap(driver string, conn *sql.DB, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(driver, conn)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 NewLogger(log),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gormDB, nil
}
