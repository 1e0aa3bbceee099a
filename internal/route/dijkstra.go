package route

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"metropath/internal/graph"
)

// Infinity is the distance of a station not reachable from the source.
const Infinity = math.MaxInt

// ErrUnknownStation is returned when a station is not part of the graph.
var ErrUnknownStation = errors.New("station not in graph")

// Selection chooses how the engine finds the next station to settle.
type Selection int

const (
	// LinearScan scans every unvisited station for the minimum. O(V²).
	LinearScan Selection = iota
	// BinaryHeap keeps candidates in a priority queue. O((V+E) log V).
	BinaryHeap
)

// ParseSelection maps a config value to a Selection.
func ParseSelection(s string) (Selection, error) {
	switch s {
	case "", "linear":
		return LinearScan, nil
	case "heap":
		return BinaryHeap, nil
	default:
		return 0, fmt.Errorf("unknown selection %q (want linear or heap)", s)
	}
}

func (s Selection) String() string {
	switch s {
	case LinearScan:
		return "linear"
	case BinaryHeap:
		return "heap"
	default:
		return fmt.Sprintf("Selection(%d)", int(s))
	}
}

// Tree holds the result of one shortest-path run from a fixed source.
// It is owned by the caller; the graph is never modified.
type Tree struct {
	Source graph.StationID
	dist   []int
	pred   []graph.StationID
}

// ShortestPaths runs Dijkstra's algorithm over g from source.
// Ties in selection go to the lowest station index, and a predecessor is
// only replaced on a strictly shorter distance, so both selections return
// identical trees.
func ShortestPaths(g *graph.Graph, source graph.StationID, sel Selection) (*Tree, error) {
	if !g.Contains(source) {
		return nil, fmt.Errorf("shortest paths from %d: %w", source, ErrUnknownStation)
	}

	n := g.Len()
	t := &Tree{
		Source: source,
		dist:   make([]int, n),
		pred:   make([]graph.StationID, n),
	}
	for i := range t.dist {
		t.dist[i] = Infinity
		t.pred[i] = graph.NoStation
	}
	t.dist[source] = 0

	switch sel {
	case BinaryHeap:
		t.runHeap(g)
	default:
		t.runLinear(g)
	}
	return t, nil
}

func (t *Tree) runLinear(g *graph.Graph) {
	visited := make([]bool, len(t.dist))
	for remaining := len(t.dist); remaining > 0; remaining-- {
		cur := graph.NoStation
		for i, done := range visited {
			if done {
				continue
			}
			if cur == graph.NoStation || t.dist[i] < t.dist[cur] {
				cur = graph.StationID(i)
			}
		}
		visited[cur] = true
		t.relax(g, cur)
	}
}

func (t *Tree) runHeap(g *graph.Graph) {
	visited := make([]bool, len(t.dist))
	pq := &stationQueue{{station: t.Source, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(queueItem)
		if visited[item.station] || item.dist > t.dist[item.station] {
			continue
		}
		visited[item.station] = true
		g.ForEachSegmentFrom(item.station, func(s graph.Segment) {
			if t.improve(item.station, s) && !visited[s.To] {
				heap.Push(pq, queueItem{station: s.To, dist: t.dist[s.To]})
			}
		})
	}
}

// relax applies every segment leaving cur.
func (t *Tree) relax(g *graph.Graph, cur graph.StationID) {
	g.ForEachSegmentFrom(cur, func(s graph.Segment) {
		t.improve(cur, s)
	})
}

// improve lowers the distance of s.To through cur if strictly shorter.
func (t *Tree) improve(cur graph.StationID, s graph.Segment) bool {
	if t.dist[cur] == Infinity {
		return false
	}
	candidate := t.dist[cur] + s.Seconds
	if candidate < t.dist[s.To] {
		t.dist[s.To] = candidate
		t.pred[s.To] = cur
		return true
	}
	return false
}

// Distance returns the shortest known duration from the source to id.
// ok is false when id is unreachable or not in the graph.
func (t *Tree) Distance(id graph.StationID) (seconds int, ok bool) {
	if id < 0 || int(id) >= len(t.dist) || t.dist[id] == Infinity {
		return Infinity, false
	}
	return t.dist[id], true
}

// Predecessor returns the station preceding id on its best path.
// The source and unreached stations have none.
func (t *Tree) Predecessor(id graph.StationID) (graph.StationID, bool) {
	if id < 0 || int(id) >= len(t.pred) || t.pred[id] == graph.NoStation {
		return graph.NoStation, false
	}
	return t.pred[id], true
}

// Reachable reports whether id has a finite distance from the source.
func (t *Tree) Reachable(id graph.StationID) bool {
	_, ok := t.Distance(id)
	return ok
}

// Distances returns a copy of the distance table indexed by station.
func (t *Tree) Distances() []int {
	return append([]int(nil), t.dist...)
}

// Predecessors returns a copy of the predecessor table indexed by station.
func (t *Tree) Predecessors() []graph.StationID {
	return append([]graph.StationID(nil), t.pred...)
}

type queueItem struct {
	station graph.StationID
	dist    int
}

// stationQueue orders by distance, then by station index to match the
// linear scan's tie-break.
type stationQueue []queueItem

func (q stationQueue) Len() int { return len(q) }
func (q stationQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].station < q[j].station
}
func (q stationQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *stationQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *stationQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
