package infra_sql_init

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/humanbelnik/jukebox/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Schema is valid for both Postgres and SQLite. Timestamps are unix
// milliseconds, veto sets and tallies are JSON text.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS options (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		composer   TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL DEFAULT '',
		section    TEXT NOT NULL DEFAULT '',
		sort_order INTEGER NOT NULL DEFAULT 0,
		enabled    BOOLEAN NOT NULL DEFAULT TRUE,
		has_won    BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS rounds (
		id               TEXT PRIMARY KEY,
		status           TEXT NOT NULL,
		category         TEXT NOT NULL,
		started_at       BIGINT NOT NULL,
		ends_at          BIGINT NOT NULL,
		vetoed           TEXT NOT NULL DEFAULT '[]',
		totals           TEXT NOT NULL DEFAULT '{}',
		total_votes      INTEGER NOT NULL DEFAULT 0,
		winner_option_id TEXT NULL,
		version          BIGINT NOT NULL DEFAULT 1,
		closed_at        BIGINT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS rounds_single_open ON rounds (status) WHERE status = 'open'`,
	`CREATE TABLE IF NOT EXISTS votes (
		round_id       TEXT NOT NULL,
		participant_id TEXT NOT NULL,
		option_id      TEXT NOT NULL,
		cast_at        BIGINT NOT NULL,
		PRIMARY KEY (round_id, participant_id)
	)`,
	`CREATE TABLE IF NOT EXISTS current_round (
		slot             TEXT PRIMARY KEY,
		round_id         TEXT NOT NULL,
		status           TEXT NOT NULL,
		category         TEXT NOT NULL,
		started_at       BIGINT NOT NULL,
		ends_at          BIGINT NOT NULL,
		vetoed           TEXT NOT NULL DEFAULT '[]',
		totals           TEXT NOT NULL DEFAULT '{}',
		total_votes      INTEGER NOT NULL DEFAULT 0,
		winner_option_id TEXT NULL,
		version          BIGINT NOT NULL DEFAULT 1,
		closed_at        BIGINT NULL
	)`,
}

func MustEstablishConn(cfg config.Store) *sqlx.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := Migrate(context.Background(), db); err != nil {
		log.Fatal(err)
	}
	return db
}

func Open(cfg config.Store) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.User,
			cfg.Postgres.Password,
			cfg.Postgres.DBName,
			cfg.Postgres.SSLMode,
		)
		return sqlx.Connect(DriverPostgres, dsn)
	case DriverSQLite:
		return OpenSQLite(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// OpenSQLite opens an embedded store. An in-memory database lives only as
// long as its single connection, so the pool is pinned to one.
func OpenSQLite(path string) (*sqlx.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sqlx.Connect(DriverSQLite, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
