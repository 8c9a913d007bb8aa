package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/tidwall/buntdb"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Pool settings for the Postgres connection
const (
	MaxOpenConns    = 25
	MaxIdleConns    = 5
	ConnMaxLifetime = 5 * time.Minute
	ConnMaxIdleTime = time.Minute
)

// DB wraps the Postgres connection pool
type DB struct {
	*sql.DB
}

// New opens a pooled Postgres connection and verifies it
func New(databaseURL string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(MaxOpenConns)
	sqlDB.SetMaxIdleConns(MaxIdleConns)
	sqlDB.SetConnMaxLifetime(ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(ConnMaxIdleTime)

	db := &DB{DB: sqlDB}
	if err := db.HealthCheck(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// HealthCheck pings the database with a short timeout
func (db *DB) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// PoolStats mirrors sql.DBStats with the configured idle limit
type PoolStats struct {
	sql.DBStats
	MaxIdleConns int
}

// GetStats returns connection pool statistics
func (db *DB) GetStats() PoolStats {
	return PoolStats{DBStats: db.Stats(), MaxIdleConns: MaxIdleConns}
}

// RunMigrations applies the embedded schema migrations
func RunMigrations(db *DB) error {
	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// OpenEmbedded opens the buntdb store used when no Postgres URL is configured.
// The path ":memory:" keeps everything in memory.
func OpenEmbedded(path string) (*buntdb.DB, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded store %s: %w", path, err)
	}
	if path != ":memory:" {
		if err := db.Shrink(); err != nil && err != buntdb.ErrDatabaseClosed {
			db.Close()
			return nil, fmt.Errorf("failed to compact embedded store: %w", err)
		}
	}
	return db, nil
}

// PingEmbedded checks that the embedded store still answers reads
func PingEmbedded(db *buntdb.DB) error {
	return db.View(func(tx *buntdb.Tx) error {
		_, err := tx.Len()
		return err
	})
}
