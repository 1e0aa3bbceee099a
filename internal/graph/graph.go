package graph

import "fmt"

// StationID is the index of a station in its graph's station table.
type StationID int

// NoStation marks an absent station (no predecessor, failed lookup).
const NoStation StationID = -1

// Station is a node of the transit network.
type Station struct {
	ID         StationID
	Name       string
	ExternalID int64 // Key in the relational store, used only while loading
}

// Segment is a directed, weighted edge between two stations.
type Segment struct {
	From    StationID
	To      StationID
	Seconds int
	Lines   []int // Line identifiers serving this segment, in load order
}

// FirstLine returns the line used when narrating this segment.
func (s Segment) FirstLine() (int, bool) {
	if len(s.Lines) == 0 {
		return 0, false
	}
	return s.Lines[0], true
}

// Graph owns the station and segment tables of a network.
// It is built once by a loader and only read afterwards, so concurrent
// readers need no locking.
type Graph struct {
	stations []Station
	segments []Segment
	out      [][]int // station index -> segment indices, insertion order
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddStation appends a station and returns its identifier.
// Names are not checked for uniqueness: two stations sharing a name are
// still distinct nodes.
func (g *Graph) AddStation(name string, externalID int64) StationID {
	id := StationID(len(g.stations))
	g.stations = append(g.stations, Station{ID: id, Name: name, ExternalID: externalID})
	g.out = append(g.out, nil)
	return id
}

// AddSegment appends a directed segment from -> to.
// Both endpoints must have been added already; it panics otherwise.
// seconds must be non-negative for shortest paths to be correct.
func (g *Graph) AddSegment(from, to StationID, seconds int, lines []int) {
	if !g.Contains(from) || !g.Contains(to) {
		panic(fmt.Sprintf("graph: segment %d -> %d references unknown station", from, to))
	}
	g.segments = append(g.segments, Segment{
		From:    from,
		To:      to,
		Seconds: seconds,
		Lines:   append([]int(nil), lines...),
	})
	g.out[from] = append(g.out[from], len(g.segments)-1)
}

// Contains reports whether id names a station of g.
func (g *Graph) Contains(id StationID) bool {
	return id >= 0 && int(id) < len(g.stations)
}

// Len returns the number of stations.
func (g *Graph) Len() int {
	return len(g.stations)
}

// Station returns the station with the given identifier.
func (g *Graph) Station(id StationID) Station {
	return g.stations[id]
}

// Stations returns the station table in insertion order.
func (g *Graph) Stations() []Station {
	out := make([]Station, len(g.stations))
	copy(out, g.stations)
	return out
}

// Segments returns the segment table in insertion order.
func (g *Graph) Segments() []Segment {
	out := make([]Segment, len(g.segments))
	copy(out, g.segments)
	return out
}

// SegmentsFrom returns every segment leaving id, in insertion order.
func (g *Graph) SegmentsFrom(id StationID) []Segment {
	idx := g.out[id]
	out := make([]Segment, len(idx))
	for i, si := range idx {
		out[i] = g.segments[si]
	}
	return out
}

// SegmentBetween returns the first segment from -> to, if any.
func (g *Graph) SegmentBetween(from, to StationID) (Segment, bool) {
	if !g.Contains(from) {
		return Segment{}, false
	}
	for _, si := range g.out[from] {
		if g.segments[si].To == to {
			return g.segments[si], true
		}
	}
	return Segment{}, false
}

// StationByName returns the first station, in insertion order, with exactly
// the given name.
func (g *Graph) StationByName(name string) (StationID, bool) {
	for _, s := range g.stations {
		if s.Name == name {
			return s.ID, true
		}
	}
	return NoStation, false
}

// ForEachSegmentFrom calls fn for each segment leaving id, in insertion
// order, without copying the adjacency list.
func (g *Graph) ForEachSegmentFrom(id StationID, fn func(Segment)) {
	for _, si := range g.out[id] {
		fn(g.segments[si])
	}
}
