package route

import (
	"errors"
	"fmt"

	"metropath/internal/graph"
)

var (
	// ErrMissingSegment means two consecutive path stations are not joined
	// by any segment.
	ErrMissingSegment = errors.New("no segment between consecutive stations")
	// ErrNoLine means a segment on the path carries no line identifier.
	ErrNoLine = errors.New("segment has no line")
)

// EventKind classifies a narration event.
type EventKind int

const (
	// BeginLine announces the line taken from here on.
	BeginLine EventKind = iota
	// ChangeLine precedes every BeginLine except the first.
	ChangeLine
	// Arrive names a station reached on the current line.
	Arrive
)

func (k EventKind) String() string {
	switch k {
	case BeginLine:
		return "begin"
	case ChangeLine:
		return "change"
	case Arrive:
		return "arrive"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one step of a route narration.
type Event struct {
	Kind    EventKind
	Line    int             // Set for BeginLine
	Station graph.StationID // Set for Arrive
}

// Annotate turns a station path into narration events. Each hop rides the
// first line of the first segment joining its two stations. A change marker
// is emitted whenever that line differs from the previous hop's.
func Annotate(g *graph.Graph, path []graph.StationID) ([]Event, error) {
	var events []Event
	prevLine, riding := 0, false

	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		seg, ok := g.SegmentBetween(a, b)
		if !ok {
			return nil, fmt.Errorf("hop %d (%d -> %d): %w", i, a, b, ErrMissingSegment)
		}
		line, ok := seg.FirstLine()
		if !ok {
			return nil, fmt.Errorf("hop %d (%d -> %d): %w", i, a, b, ErrNoLine)
		}

		if !riding || line != prevLine {
			if riding {
				events = append(events, Event{Kind: ChangeLine})
			}
			events = append(events, Event{Kind: BeginLine, Line: line})
			prevLine, riding = line, true
		}
		events = append(events, Event{Kind: Arrive, Station: b})
	}
	return events, nil
}

// LineChanges counts the change markers in events.
func LineChanges(events []Event) int {
	n := 0
	for _, e := range events {
		if e.Kind == ChangeLine {
			n++
		}
	}
	return n
}
