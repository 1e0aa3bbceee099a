package network

import (
	"context"
	"fmt"
	"log/slog"

	"metropath/internal/graph"
	"metropath/internal/storage"
)

// Strategy decides how segment rows become graph segments.
type Strategy int

const (
	// MergePairs builds one segment per (origin, destination) pair carrying
	// the union of its lines. The duration comes from the first row.
	MergePairs Strategy = iota
	// PerLine builds one segment per (segment, line) row.
	PerLine
)

// ParseStrategy maps a config value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "merge":
		return MergePairs, nil
	case "per-line":
		return PerLine, nil
	default:
		return 0, fmt.Errorf("unknown load strategy %q (want merge or per-line)", s)
	}
}

func (s Strategy) String() string {
	if s == PerLine {
		return "per-line"
	}
	return "merge"
}

// Source supplies the raw rows of a stored network.
type Source interface {
	Stations(ctx context.Context) ([]storage.StationRow, error)
	SegmentLines(ctx context.Context) ([]storage.SegmentLineRow, error)
}

type pairKey struct{ a, b int64 }

type pendingSegment struct {
	from, to graph.StationID
	seconds  int
	lines    []int
}

// Load builds a read-only graph from src. Rows referencing an unknown
// station or carrying a negative duration are dropped.
func Load(ctx context.Context, src Source, strategy Strategy, logger *slog.Logger) (*graph.Graph, error) {
	stations, err := src.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	rows, err := src.SegmentLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}

	g := graph.New()
	byExternal := make(map[int64]graph.StationID, len(stations))
	for _, s := range stations {
		byExternal[s.StationID] = g.AddStation(s.Name, s.StationID)
	}

	var (
		pending  []*pendingSegment
		byPair   = make(map[pairKey]*pendingSegment)
		dangling int
		negative int
	)
	for _, r := range rows {
		from, okA := byExternal[r.StationA]
		to, okB := byExternal[r.StationB]
		if !okA || !okB {
			dangling++
			continue
		}
		if r.Seconds < 0 {
			negative++
			continue
		}

		if strategy == PerLine {
			pending = append(pending, &pendingSegment{from: from, to: to, seconds: r.Seconds, lines: []int{r.LineID}})
			continue
		}

		key := pairKey{r.StationA, r.StationB}
		p, ok := byPair[key]
		if !ok {
			p = &pendingSegment{from: from, to: to, seconds: r.Seconds}
			byPair[key] = p
			pending = append(pending, p)
		}
		if !containsLine(p.lines, r.LineID) {
			p.lines = append(p.lines, r.LineID)
		}
	}

	for _, p := range pending {
		g.AddSegment(p.from, p.to, p.seconds, p.lines)
	}

	if dangling > 0 || negative > 0 {
		logger.Warn("dropped malformed segment rows",
			"dangling_endpoint", dangling,
			"negative_duration", negative,
		)
	}
	logger.Info("network loaded",
		"strategy", strategy.String(),
		"stations", g.Len(),
		"segments", len(pending),
	)
	return g, nil
}

func containsLine(lines []int, id int) bool {
	for _, l := range lines {
		if l == id {
			return true
		}
	}
	return false
}
