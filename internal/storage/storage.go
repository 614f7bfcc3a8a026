// Package storage persists match records for one or more users. SQLite is
// the default backend; a postgres:// DSN selects the Postgres backend.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/pable/owstats/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrMatchNotFound is returned when a match does not exist or belongs to
// another user.
var ErrMatchNotFound = errors.New("match not found")

// Store is the persistence surface the commands depend on.
type Store interface {
	InsertMatches(ctx context.Context, userID string, records []model.MatchRecord) ([]string, error)
	DeleteMatch(ctx context.Context, userID, id string) error
	ListMatches(ctx context.Context, userID string) ([]model.MatchRecord, error)
	WeeklyOverview(ctx context.Context, since, prevSince time.Time) (*WeeklyOverview, error)
	QueryRaw(ctx context.Context, query string) ([]string, [][]string, error)
	Close() error
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*PGDB)(nil)
)

// Connect opens the backend matching dsn. Timestamps returned by
// ListMatches are expressed in loc.
func Connect(ctx context.Context, dsn string, loc *time.Location, log zerolog.Logger) (Store, error) {
	if IsPostgresDSN(dsn) {
		return OpenPostgres(ctx, dsn, loc, log)
	}
	return Open(dsn, loc, log)
}

// IsPostgresDSN reports whether dsn names a Postgres server rather than a
// SQLite file.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// DB is the SQLite-backed Store.
type DB struct {
	conn *sql.DB
	loc  *time.Location
	log  zerolog.Logger
}

// Open opens (or creates) the SQLite database at path and migrates it to
// the latest schema.
func Open(path string, loc *time.Location, log zerolog.Logger) (*DB, error) {
	if loc == nil {
		loc = time.UTC
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer at a time; also keeps a :memory: database on a single connection.
	conn.SetMaxOpenConns(1)

	if err := optimizeSQLite(conn, log); err != nil {
		conn.Close()
		return nil, err
	}
	if err := runMigrations(conn, log); err != nil {
		conn.Close()
		return nil, err
	}
	log.Debug().Str("path", path).Msg("sqlite store ready")
	return &DB{conn: conn, loc: loc, log: log}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func runMigrations(conn *sql.DB, log zerolog.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func optimizeSQLite(conn *sql.DB, log zerolog.Logger) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"cache_size", "-64000"},
		{"temp_store", "MEMORY"},
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("failed to set pragma %s: %w", p.name, err)
		}
		log.Debug().Str("pragma", p.name).Str("value", p.value).Msg("SQLite pragma set")
	}
	return nil
}

// gooseLogger routes migration output through zerolog at debug level so it
// stays out of command output.
type gooseLogger struct {
	log zerolog.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
