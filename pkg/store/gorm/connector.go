package gorm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/ums-in-go/pkg/db"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

// SchemaVersion is the schema version this build reads and writes.
const SchemaVersion = 2

const migrationsTable = "schema_migrations"

// Ensure Connector implements store.Connector
var _ store.Connector = (*Connector)(nil)

// Config holds the store identity and connection settings
type Config struct {
	// Driver is db.DriverSQLite (default) or db.DriverPostgres
	Driver string
	// URL locates the store
	URL string
	// Logger receives lifecycle and SQL logs
	Logger zerolog.Logger
	// Opener replaces db.OpenSQL, for tests
	Opener db.Opener
}

// Connector implements store.Connector using GORM
type Connector struct {
	driver string
	url    string
	log    zerolog.Logger
	opener db.Opener

	openHandles atomic.Int64
}

// NewConnector creates a new Connector
func NewConnector(cfg Config) *Connector {
	driver := cfg.Driver
	if driver == "" {
		driver = db.DriverSQLite
	}
	opener := cfg.Opener
	if opener == nil {
		opener = db.OpenSQL
	}
	return &Connector{
		driver: driver,
		url:    cfg.URL,
		log:    cfg.Logger.With().Str("component", "store").Str("driver", driver).Logger(),
		opener: opener,
	}
}

// Handle is one open connection to the store
type Handle struct {
	id     string
	db     *gorm.DB
	conn   *sql.DB
	opened time.Time
	closed atomic.Bool
}

// ID identifies the handle in logs
func (h *Handle) ID() string {
	return h.id
}

// DB returns the GORM session bound to this handle
func (h *Handle) DB() *gorm.DB {
	return h.db
}

// Driver returns the configured driver name
func (c *Connector) Driver() string {
	return c.driver
}

// OpenHandles is the number of handles opened and not yet closed.
func (c *Connector) OpenHandles() int64 {
	return c.openHandles.Load()
}

// Open returns a handle to an initialized store at SchemaVersion
func (c *Connector) Open(ctx context.Context) (store.Handle, error) {
	h, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Close releases a handle returned by Open. Closing twice is a no-op.
func (c *Connector) Close(h store.Handle) {
	handle, ok := h.(*Handle)
	if !ok || handle == nil {
		return
	}
	c.release(handle)
}

// Initialize brings the schema to SchemaVersion and seeds it once
func (c *Connector) Initialize(ctx context.Context, seed model.Seed) error {
	if err := seed.Validate(); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	if err := c.migrate(ctx); err != nil {
		return err
	}

	h, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer c.release(h)

	return c.seed(ctx, h, seed)
}

// Version reports the recorded schema version and whether the last
// migration was interrupted.
func (c *Connector) Version(ctx context.Context) (int64, bool, error) {
	h, err := c.connect(ctx, "version")
	if err != nil {
		return 0, false, err
	}
	defer c.release(h)

	version, dirty, err := readVersion(ctx, h.DB())
	if err != nil {
		return 0, false, &store.ConnectionError{Op: "version", Err: err}
	}
	return version, dirty, nil
}

func (c *Connector) open(ctx context.Context) (*Handle, error) {
	h, err := c.connect(ctx, "open")
	if err != nil {
		return nil, err
	}

	version, dirty, err := readVersion(ctx, h.DB())
	if err == nil {
		err = checkVersion(version, dirty)
	}
	if err != nil {
		c.release(h)
		return nil, &store.ConnectionError{Op: "open", Err: err}
	}
	return h, nil
}

// connect opens and pings a handle without looking at the schema.
func (c *Connector) connect(ctx context.Context, op string) (*Handle, error) {
	conn, err := c.dial(ctx, op)
	if err != nil {
		return nil, err
	}

	gormDB, err := db.Wrap(c.driver, conn, c.log)
	if err != nil {
		_ = conn.Close()
		return nil, &store.ConnectionError{Op: op, Err: err}
	}

	h := &Handle{
		id:     uuid.NewString(),
		db:     gormDB,
		conn:   conn,
		opened: time.Now(),
	}
	c.openHandles.Add(1)
	c.log.Debug().Str("handle", h.id).Str("op", op).Msg("store handle opened")
	return h, nil
}

func (c *Connector) dial(ctx context.Context, op string) (*sql.DB, error) {
	conn, err := c.opener(c.driver, c.url)
	if err != nil {
		return nil, &store.ConnectionError{Op: op, Err: err}
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, &store.ConnectionError{Op: op, Err: err}
	}
	return conn, nil
}

func (c *Connector) release(h *Handle) {
	if !h.closed.CompareAndSwap(false, true) {
		return
	}
	c.openHandles.Add(-1)

	if err := h.conn.Close(); err != nil {
		c.log.Warn().Err(err).Str("handle", h.id).Msg("failed to close store handle")
		return
	}
	c.log.Debug().
		Str("handle", h.id).
		Dur("held", time.Since(h.opened)).
		Msg("store handle closed")
}

var errAlreadySeeded = errors.New("already seeded")

var upsertByID = clause.OnConflict{
	Columns:   []clause.Column{{Name: "id"}},
	UpdateAll: true,
}

// seed writes the seed and its marker in one transaction. An existing
// marker for SchemaVersion rolls the transaction back untouched.
func (c *Connector) seed(ctx context.Context, h *Handle, seed model.Seed) error {
	users := mapSlice(seed.Users, userToRecord)
	groups := mapSlice(seed.Groups, groupToRecord)

	err := h.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marker := seedMarker{SchemaVersion: SchemaVersion, SeededAt: time.Now().UTC()}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&marker)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadySeeded
		}

		if len(users) > 0 {
			if err := tx.Clauses(upsertByID).CreateInBatches(&users, 100).Error; err != nil {
				return err
			}
		}
		if len(groups) > 0 {
			if err := tx.Clauses(upsertByID).CreateInBatches(&groups, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})

	switch {
	case errors.Is(err, errAlreadySeeded):
		c.log.Debug().Int("schema_version", SchemaVersion).Msg("store already seeded")
		return nil
	case err != nil:
		return &store.QueryError{Op: "seed", Err: err}
	}

	c.log.Info().
		Int("schema_version", SchemaVersion).
		Int("users", len(users)).
		Int("groups", len(groups)).
		Msg("store seeded")
	return nil
}

func readVersion(ctx context.Context, gormDB *gorm.DB) (int64, bool, error) {
	var (
		version int64
		dirty   bool
	)
	row := gormDB.WithContext(ctx).Raw("SELECT version, dirty FROM " + migrationsTable + " LIMIT 1").Row()
	if err := row.Scan(&version, &dirty); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMissingTable(err) {
			return 0, false, store.ErrNotInitialized
		}
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

func checkVersion(version int64, dirty bool) error {
	if dirty {
		return fmt.Errorf("%w at version %d", store.ErrDirtySchema, version)
	}
	if version != SchemaVersion {
		return fmt.Errorf("%w: store is at %d, expected %d", store.ErrVersionMismatch, version, SchemaVersion)
	}
	return nil
}

func isMissingTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01" // undefined_table
	}
	return strings.Contains(err.Error(), "no such table")
}

func mapSlice[S, D any](in []S, fn func(S) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
