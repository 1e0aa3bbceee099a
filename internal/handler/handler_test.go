package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"metropath/internal/cache"
	"metropath/internal/graph"
	"metropath/internal/render"
	"metropath/internal/route"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	g := graph.New()
	romolo := g.AddStation("Romolo", 1)
	duomo := g.AddStation("Duomo", 2)
	cordusio := g.AddStation("Cordusio", 3)
	g.AddStation("Isola", 4)
	g.AddSegment(romolo, duomo, 300, []int{1})
	g.AddSegment(duomo, cordusio, 150, []int{2})

	return New(g, route.BinaryHeap, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func get(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func routeURL(from, to string) string {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return "/route?" + q.Encode()
}

func TestRoute_OK(t *testing.T) {
	h := newTestHandler(t)

	rec := get(h.Route, routeURL("Romolo", "Cordusio"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got render.RouteView
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	want := render.RouteView{
		From:         "Romolo",
		To:           "Cordusio",
		TotalSeconds: 450,
		Changes:      1,
		Path:         []string{"Romolo", "Duomo", "Cordusio"},
		Legs: []render.Leg{
			{Line: 1, Stations: []string{"Duomo"}},
			{Line: 2, Stations: []string{"Cordusio"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("route mismatch (-want +got):\n%s", diff)
	}
}

func TestRoute_StatusMapping(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		from, to string
		want     int
	}{
		{"missing from", "", "Cordusio", http.StatusBadRequest},
		{"missing to", "Romolo", "", http.StatusBadRequest},
		{"unknown origin", "Nowhere", "Cordusio", http.StatusNotFound},
		{"unknown destination", "Romolo", "Nowhere", http.StatusNotFound},
		{"names are case sensitive", "romolo", "Cordusio", http.StatusNotFound},
		{"isolated destination", "Romolo", "Isola", http.StatusUnprocessableEntity},
		{"against direction", "Cordusio", "Romolo", http.StatusUnprocessableEntity},
		{"same station", "Duomo", "Duomo", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(h.Route, routeURL(tt.from, tt.to))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.want, rec.Body)
			}
			if tt.want != http.StatusOK {
				var e errorResponse
				if err := json.NewDecoder(rec.Body).Decode(&e); err != nil || e.Error == "" {
					t.Errorf("error body = %+v, %v; want non-empty error", e, err)
				}
			}
		})
	}
}

func TestRoute_UsesCache(t *testing.T) {
	h := newTestHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.routes = cache.New[RouteKey, render.RouteView](ctx, time.Minute, time.Minute)

	if rec := get(h.Route, routeURL("Romolo", "Cordusio")); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if h.routes.Len() != 1 {
		t.Fatalf("cache holds %d entries, want 1", h.routes.Len())
	}

	// A planted entry proves the second request is served from the cache.
	h.routes.Set(RouteKey{From: 0, To: 2}, render.RouteView{From: "cached"})
	rec := get(h.Route, routeURL("Romolo", "Cordusio"))
	var got render.RouteView
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.From != "cached" {
		t.Errorf("From = %q, want cached value", got.From)
	}

	// Failures are not cached.
	get(h.Route, routeURL("Romolo", "Isola"))
	if h.routes.Len() != 1 {
		t.Errorf("cache holds %d entries after unreachable query, want 1", h.routes.Len())
	}
}

func TestRoute_CacheKeepsArrowNamesApart(t *testing.T) {
	g := graph.New()
	ab := g.AddStation("A→B", 1)
	c := g.AddStation("C", 2)
	a := g.AddStation("A", 3)
	bc := g.AddStation("B→C", 4)
	g.AddSegment(ab, c, 10, []int{1})
	g.AddSegment(a, bc, 99, []int{7})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := New(g, route.LinearScan, cache.New[RouteKey, render.RouteView](ctx, time.Minute, time.Minute),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	first, err := h.plan("A→B", "C")
	if err != nil {
		t.Fatalf("plan(A→B, C): %v", err)
	}
	second, err := h.plan("A", "B→C")
	if err != nil {
		t.Fatalf("plan(A, B→C): %v", err)
	}

	if first.From != "A→B" || first.To != "C" || first.TotalSeconds != 10 {
		t.Errorf("plan(A→B, C) = %+v", first)
	}
	want := render.RouteView{
		From:         "A",
		To:           "B→C",
		TotalSeconds: 99,
		Path:         []string{"A", "B→C"},
		Legs:         []render.Leg{{Line: 7, Stations: []string{"B→C"}}},
	}
	if diff := cmp.Diff(want, second); diff != "" {
		t.Errorf("plan(A, B→C) mismatch (-want +got):\n%s", diff)
	}
	if h.routes.Len() != 2 {
		t.Errorf("cache holds %d entries, want 2", h.routes.Len())
	}
}

func TestStations(t *testing.T) {
	h := newTestHandler(t)

	rec := get(h.Stations, "/stations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []render.StationView
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	want := []render.StationView{
		{ID: 0, Name: "Romolo"},
		{ID: 1, Name: "Duomo"},
		{ID: 2, Name: "Cordusio"},
		{ID: 3, Name: "Isola"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stations mismatch (-want +got):\n%s", diff)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := get(h.Health, "/healthz")
	var got health
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if diff := cmp.Diff(health{Status: "ok", Stations: 4, Segments: 2}, got); diff != "" {
		t.Errorf("health mismatch (-want +got):\n%s", diff)
	}
}

func TestHome(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		target   string
		status   int
		contains string
	}{
		{"empty form", "/", http.StatusOK, `<form method="get" action="/">`},
		{"route", "/?from=Romolo&to=Cordusio", http.StatusOK, "Total duration: 450 seconds"},
		{"unknown", "/?from=Romolo&to=Nowhere", http.StatusNotFound, "Stations not found."},
		{"unreachable", "/?from=Romolo&to=Isola", http.StatusUnprocessableEntity, "No path from Romolo to Isola."},
		{"other path", "/favicon.ico", http.StatusNotFound, "404 page not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(h.Home, tt.target)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if body := rec.Body.String(); !strings.Contains(body, tt.contains) {
				t.Errorf("body does not contain %q:\n%s", tt.contains, body)
			}
		})
	}
}
