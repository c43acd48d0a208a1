package gorm

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/ums-in-go/pkg/db"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
)

func testSeed() model.Seed {
	return model.Seed{
		Users: []model.User{
			{ID: 1, Name: "Ann", Gender: model.GenderFemale, Role: "admin", GroupIDs: []int64{10}},
			{ID: 2, Name: "Bob", Gender: model.GenderMale, Role: "dev", GroupIDs: []int64{10, 20}},
		},
		Groups: []model.Group{
			{ID: 10, Name: "Ops", Description: "Runs **production**"},
			{ID: 20, Name: "Dev", Description: "Writes code"},
		},
	}
}

func newSQLiteConnector(t *testing.T) *Connector {
	t.Helper()
	return NewConnector(Config{
		Driver: db.DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "ums.db"),
		Logger: zerolog.Nop(),
	})
}

func newInitializedConnector(t *testing.T) *Connector {
	t.Helper()
	c := newSQLiteConnector(t)
	require.NoError(t, c.Initialize(t.Context(), testSeed()))
	return c
}

// newMockConnector returns a postgres-flavoured connector whose every
// handle is the same sqlmock connection. Each test runs one operation.
func newMockConnector(t *testing.T) (*Connector, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return mockConnectorFor(conn), mock
}

func mockConnectorFor(conn *sql.DB) *Connector {
	return NewConnector(Config{
		Driver: db.DriverPostgres,
		URL:    "postgres://mock",
		Logger: zerolog.Nop(),
		Opener: func(string, string) (*sql.DB, error) { return conn, nil },
	})
}

func expectVersion(mock sqlmock.Sqlmock, version int64, dirty bool) {
	mock.ExpectQuery(`SELECT version, dirty FROM schema_migrations LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}).AddRow(version, dirty))
}
