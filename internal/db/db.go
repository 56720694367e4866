package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"spacetraders-router/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

func defaultPath() string {
	// Prefer working directory so the DB is stable across go run / go build.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "routes.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "routes.db")
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// An empty path uses routes.db in the working directory.
func Open(path string) (*DB, error) {
	if path == "" {
		path = defaultPath()
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	// Missing table on a fresh file leaves version at 0.
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS config (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS systems (
				position INTEGER PRIMARY KEY,
				symbol   TEXT NOT NULL,
				type     TEXT NOT NULL DEFAULT '',
				x        INTEGER NOT NULL,
				y        INTEGER NOT NULL
			);

			CREATE TABLE IF NOT EXISTS waypoints (
				system_position INTEGER NOT NULL REFERENCES systems(position),
				position        INTEGER NOT NULL,
				symbol          TEXT NOT NULL,
				type            TEXT NOT NULL DEFAULT '',
				x               INTEGER NOT NULL,
				y               INTEGER NOT NULL,
				PRIMARY KEY (system_position, position)
			);

			CREATE TABLE IF NOT EXISTS waypoint_traits (
				system_position   INTEGER NOT NULL,
				waypoint_position INTEGER NOT NULL,
				position          INTEGER NOT NULL,
				symbol            TEXT NOT NULL,
				name              TEXT NOT NULL DEFAULT '',
				description       TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (system_position, waypoint_position, position)
			);
			CREATE INDEX IF NOT EXISTS idx_trait_symbol ON waypoint_traits(symbol);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	if version < 2 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS factions (
				position     INTEGER PRIMARY KEY,
				symbol       TEXT NOT NULL,
				name         TEXT NOT NULL DEFAULT '',
				headquarters TEXT NOT NULL
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
		logger.Info("DB", "Applied migration v2 (factions)")
	}

	return nil
}
