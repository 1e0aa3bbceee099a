package storage

import "fmt"

// migrate creates the network schema if it doesn't exist.
func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Debug("database migrations applied", "count", len(migrations))
	return nil
}

var migrations = []string{
	// Stations
	`CREATE TABLE IF NOT EXISTS station (
		station_id INTEGER PRIMARY KEY,
		name       TEXT NOT NULL
	)`,

	// Directed segments between two stations. Endpoints are not foreign
	// keys: the loader drops dangling rows instead of refusing the import.
	`CREATE TABLE IF NOT EXISTS segment (
		segment_id       INTEGER PRIMARY KEY,
		station_a        INTEGER NOT NULL,
		station_b        INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL
	)`,

	// Lines serving each segment
	`CREATE TABLE IF NOT EXISTS line_segment (
		line_id    INTEGER NOT NULL,
		segment_id INTEGER NOT NULL REFERENCES segment(segment_id),
		PRIMARY KEY (line_id, segment_id)
	)`,

	// Import metadata (imported_at, source)
	`CREATE TABLE IF NOT EXISTS network_metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_segment_a ON segment(station_a)`,
	`CREATE INDEX IF NOT EXISTS idx_segment_b ON segment(station_b)`,
	`CREATE INDEX IF NOT EXISTS idx_line_segment_segment ON line_segment(segment_id)`,
	`CREATE INDEX IF NOT EXISTS idx_station_name ON station(name)`,
}
