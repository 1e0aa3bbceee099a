package route

import "metropath/internal/graph"

// PathTo walks predecessor links back from dest and returns the stations
// from the source to dest inclusive.
//
// For dest == Source the result is [Source]. For an unreachable dest the
// result degenerates to [dest]; check Reachable before trusting it.
func (t *Tree) PathTo(dest graph.StationID) []graph.StationID {
	var path []graph.StationID
	cur := dest
	for {
		path = append(path, cur)
		prev, ok := t.Predecessor(cur)
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
