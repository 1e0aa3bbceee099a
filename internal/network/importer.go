package network

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"metropath/internal/storage"
)

// Importer loads a parsed network archive into SQLite.
type Importer struct {
	db     *storage.DB
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(db *storage.DB, logger *slog.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// Import replaces the stored network with net.
// The entire operation runs in a single transaction for atomicity.
func (imp *Importer) Import(ctx context.Context, net *Network) error {
	start := time.Now()

	tx, err := imp.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := imp.clearTables(ctx, tx); err != nil {
		return err
	}
	if err := imp.importStations(ctx, tx, net.Stations); err != nil {
		return err
	}
	if err := imp.importSegments(ctx, tx, net.Segments); err != nil {
		return err
	}
	if err := imp.importLines(ctx, tx, net.Lines); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO network_metadata (key, value) VALUES ('imported_at', ?)`, now); err != nil {
		return fmt.Errorf("set imported_at: %w", err)
	}
	if net.Source != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO network_metadata (key, value) VALUES ('source', ?)`, net.Source); err != nil {
			return fmt.Errorf("set source: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	imp.logger.Info("network import complete",
		"duration", time.Since(start).Round(time.Millisecond),
		"stations", len(net.Stations),
		"segments", len(net.Segments),
		"lines", len(net.Lines),
	)
	return nil
}

func (imp *Importer) clearTables(ctx context.Context, tx *sql.Tx) error {
	tables := []string{"line_segment", "segment", "station", "network_metadata"}
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", t)); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}
	return nil
}

func (imp *Importer) importStations(ctx context.Context, tx *sql.Tx, stations []StationRecord) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO station (station_id, name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare station: %w", err)
	}
	defer stmt.Close()

	for i, s := range stations {
		id, err := parseInt(s.StationID, "station_id")
		if err != nil {
			return fmt.Errorf("station row %d: %w", i+1, err)
		}
		if s.Name == "" {
			return fmt.Errorf("station row %d: empty name", i+1)
		}
		if _, err := stmt.ExecContext(ctx, id, s.Name); err != nil {
			return fmt.Errorf("insert station %d: %w", id, err)
		}
	}
	imp.logger.Info("imported stations", "count", len(stations))
	return nil
}

func (imp *Importer) importSegments(ctx context.Context, tx *sql.Tx, segments []SegmentRecord) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO segment (segment_id, station_a, station_b, duration_seconds) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare segment: %w", err)
	}
	defer stmt.Close()

	for i, s := range segments {
		var vals [4]int64
		for j, f := range []struct{ v, name string }{
			{s.SegmentID, "segment_id"},
			{s.StationA, "station_a"},
			{s.StationB, "station_b"},
			{s.DurationSeconds, "duration_seconds"},
		} {
			if vals[j], err = parseInt(f.v, f.name); err != nil {
				return fmt.Errorf("segment row %d: %w", i+1, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, vals[0], vals[1], vals[2], vals[3]); err != nil {
			return fmt.Errorf("insert segment %d: %w", vals[0], err)
		}
	}
	imp.logger.Info("imported segments", "count", len(segments))
	return nil
}

func (imp *Importer) importLines(ctx context.Context, tx *sql.Tx, lines []LineRecord) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO line_segment (line_id, segment_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare line_segment: %w", err)
	}
	defer stmt.Close()

	for i, l := range lines {
		lineID, err := parseInt(l.LineID, "line_id")
		if err != nil {
			return fmt.Errorf("line row %d: %w", i+1, err)
		}
		segID, err := parseInt(l.SegmentID, "segment_id")
		if err != nil {
			return fmt.Errorf("line row %d: %w", i+1, err)
		}
		if _, err := stmt.ExecContext(ctx, lineID, segID); err != nil {
			return fmt.Errorf("insert line %d on segment %d: %w", lineID, segID, err)
		}
	}
	imp.logger.Info("imported lines", "count", len(lines))
	return nil
}

func parseInt(v, column string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: not an integer", column, v)
	}
	return n, nil
}
