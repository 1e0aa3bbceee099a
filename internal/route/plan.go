package route

import (
	"errors"
	"fmt"

	"metropath/internal/graph"
)

// ErrUnreachable is returned when no path leads to the destination.
var ErrUnreachable = errors.New("destination unreachable")

// Itinerary is a computed route between two stations.
type Itinerary struct {
	From         graph.StationID
	To           graph.StationID
	Path         []graph.StationID
	Events       []Event
	TotalSeconds int
	Changes      int
}

// Plan computes the shortest route from -> to and narrates it.
func Plan(g *graph.Graph, from, to graph.StationID, sel Selection) (*Itinerary, error) {
	if !g.Contains(to) {
		return nil, fmt.Errorf("plan to %d: %w", to, ErrUnknownStation)
	}
	tree, err := ShortestPaths(g, from, sel)
	if err != nil {
		return nil, err
	}

	total, ok := tree.Distance(to)
	if !ok {
		return nil, fmt.Errorf("plan %d -> %d: %w", from, to, ErrUnreachable)
	}

	path := tree.PathTo(to)
	events, err := Annotate(g, path)
	if err != nil {
		return nil, fmt.Errorf("annotate route: %w", err)
	}

	return &Itinerary{
		From:         from,
		To:           to,
		Path:         path,
		Events:       events,
		TotalSeconds: total,
		Changes:      LineChanges(events),
	}, nil
}
