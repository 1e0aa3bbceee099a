package render

import (
	"bufio"
	"fmt"
	"io"

	"metropath/internal/graph"
	"metropath/internal/route"
)

// Text writes an itinerary in the console layout:
//
//	Shortest path from Romolo to Cordusio:
//	Take line 2
//	 → Porta Genova
//	↳ Change line
//	Take line 1
//	 → Cordusio
//
//	Total duration: 450 seconds
func Text(w io.Writer, g *graph.Graph, it *route.Itinerary) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Shortest path from %s to %s:\n", g.Station(it.From).Name, g.Station(it.To).Name)
	for _, e := range it.Events {
		switch e.Kind {
		case route.ChangeLine:
			fmt.Fprintln(bw, "↳ Change line")
		case route.BeginLine:
			fmt.Fprintf(bw, "Take line %d\n", e.Line)
		case route.Arrive:
			fmt.Fprintf(bw, " → %s\n", g.Station(e.Station).Name)
		}
	}
	fmt.Fprintf(bw, "\nTotal duration: %d seconds\n", it.TotalSeconds)
	return bw.Flush()
}

// NotFound reports that a requested station name matched nothing.
func NotFound(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Stations not found.")
	return err
}

// Unreachable reports that no path joins two stations.
func Unreachable(w io.Writer, from, to string) error {
	_, err := fmt.Fprintf(w, "No path from %s to %s.\n", from, to)
	return err
}
