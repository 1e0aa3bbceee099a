package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// GetMetadata retrieves a value from the network_metadata table.
func (db *DB) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM network_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetMetadata stores a key-value pair in the network_metadata table.
func (db *DB) SetMetadata(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO network_metadata (key, value) VALUES (?, ?)`,
		key, value)
	return err
}

// StationRow is a station as stored.
type StationRow struct {
	StationID int64
	Name      string
}

// Stations returns every station ordered by station_id.
func (db *DB) Stations(ctx context.Context) ([]StationRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT station_id, name FROM station ORDER BY station_id`)
	if err != nil {
		return nil, fmt.Errorf("stations query: %w", err)
	}
	defer rows.Close()

	var stations []StationRow
	for rows.Next() {
		var s StationRow
		if err := rows.Scan(&s.StationID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// SegmentLineRow is one (segment, line) pair: a segment served by n lines
// yields n rows.
type SegmentLineRow struct {
	SegmentID int64
	StationA  int64
	StationB  int64
	Seconds   int
	LineID    int
}

// SegmentLines returns every segment joined with the lines serving it,
// ordered by segment then line. Segments without any line are omitted.
func (db *DB) SegmentLines(ctx context.Context) ([]SegmentLineRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT s.segment_id, s.station_a, s.station_b, s.duration_seconds, l.line_id
		FROM segment s
		JOIN line_segment l ON l.segment_id = s.segment_id
		ORDER BY s.segment_id, l.line_id`)
	if err != nil {
		return nil, fmt.Errorf("segment lines query: %w", err)
	}
	defer rows.Close()

	var out []SegmentLineRow
	for rows.Next() {
		var r SegmentLineRow
		if err := rows.Scan(&r.SegmentID, &r.StationA, &r.StationB, &r.Seconds, &r.LineID); err != nil {
			return nil, fmt.Errorf("scan segment line: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// HasData returns true if the database holds at least one station.
func (db *DB) HasData(ctx context.Context) bool {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM station`).Scan(&count)
	return err == nil && count > 0
}
