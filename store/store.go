// Package store is the data-access layer behind the admin panel. It talks to
// either an embedded SQLite file or a hosted Postgres database through
// database/sql and exposes one narrow accessor per table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Config selects and tunes the backing database.
type Config struct {
	Driver string // "sqlite" (default) or "postgres"
	DSN    string // file path for sqlite, connection string for postgres

	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration

	// Clock stamps created_at on insert. Defaults to time.Now in UTC.
	Clock func() time.Time
}

// DB wraps a *sql.DB with the dialect details the table accessors need.
type DB struct {
	db     *sql.DB
	driver string
	now    func() time.Time
	log    zerolog.Logger
}

// Open connects to the configured database, applies pending migrations and
// returns a ready handle.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}
	log = log.With().Str("component", "store").Str("driver", cfg.Driver).Logger()

	switch cfg.Driver {
	case DriverSQLite:
		if cfg.DSN == "" {
			return nil, errors.New("store: sqlite path is required")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
			return nil, err
		}
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("store: postgres DSN is required")
		}
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", cfg.Driver)
	}

	if err := migrateUp(cfg.Driver, cfg.DSN, log); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	dsn := cfg.DSN
	if cfg.Driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}
	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, `
			PRAGMA journal_mode=WAL;
			PRAGMA synchronous=NORMAL;
		`); err != nil {
			db.Close()
			return nil, err
		}
		if cfg.MaxOpenConns == 0 {
			cfg.MaxOpenConns = 4
		}
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	log.Info().Int("max_open_conns", cfg.MaxOpenConns).Msg("database connection established")

	return &DB{db: db, driver: cfg.Driver, now: cfg.Clock, log: log}, nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Driver reports which backend this handle uses.
func (d *DB) Driver() string {
	return d.driver
}

// Categories returns the accessor for the blog_categories table.
func (d *DB) Categories() *CategoryTable {
	return &CategoryTable{t: table{db: d, name: "blog_categories"}}
}

// Posts returns the accessor for the blogs table.
func (d *DB) Posts() *PostTable {
	return &PostTable{t: table{db: d, name: "blogs"}}
}

// sqliteDSN adds a per-connection busy timeout so writers wait on
// SQLITE_BUSY instead of failing.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)"
}

// rebind rewrites ? placeholders to $n for Postgres.
func (d *DB) rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
