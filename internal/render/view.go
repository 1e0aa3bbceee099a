package render

import (
	"metropath/internal/graph"
	"metropath/internal/route"
)

// RouteView is the JSON representation of an itinerary.
type RouteView struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	TotalSeconds int      `json:"total_seconds"`
	Changes      int      `json:"changes"`
	Path         []string `json:"path"`
	Legs         []Leg    `json:"legs"`
}

// Leg is a stretch ridden on one line.
type Leg struct {
	Line     int      `json:"line"`
	Stations []string `json:"stations"` // Stations reached on this line, in order
}

// StationView is a station as listed by the API.
type StationView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewRouteView groups an itinerary's events into legs.
func NewRouteView(g *graph.Graph, it *route.Itinerary) RouteView {
	v := RouteView{
		From:         g.Station(it.From).Name,
		To:           g.Station(it.To).Name,
		TotalSeconds: it.TotalSeconds,
		Changes:      it.Changes,
		Path:         make([]string, len(it.Path)),
		Legs:         []Leg{},
	}
	for i, id := range it.Path {
		v.Path[i] = g.Station(id).Name
	}
	for _, e := range it.Events {
		switch e.Kind {
		case route.BeginLine:
			v.Legs = append(v.Legs, Leg{Line: e.Line})
		case route.Arrive:
			last := &v.Legs[len(v.Legs)-1]
			last.Stations = append(last.Stations, g.Station(e.Station).Name)
		}
	}
	return v
}

// NewStationViews lists the stations of g in graph order.
func NewStationViews(g *graph.Graph) []StationView {
	stations := g.Stations()
	out := make([]StationView, len(stations))
	for i, s := range stations {
		out[i] = StationView{ID: int(s.ID), Name: s.Name}
	}
	return out
}

// PageData feeds the HTML route planner page.
type PageData struct {
	Stations []StationView
	From     string
	To       string
	Route    *RouteView
	Error    string
}
