package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"metropath/internal/cache"
	"metropath/internal/graph"
	"metropath/internal/render"
	"metropath/internal/route"
)

// errStationNotFound means a requested station name is not in the network.
var errStationNotFound = errors.New("stations not found")

// Handler holds shared dependencies for all HTTP handlers. The graph is
// never mutated after construction, so handlers share it freely.
type Handler struct {
	g      *graph.Graph
	sel    route.Selection
	routes *cache.Cache[RouteKey, render.RouteView]
	logger *slog.Logger
}

// New creates a Handler. A nil cache disables result caching.
func New(g *graph.Graph, sel route.Selection, routes *cache.Cache[RouteKey, render.RouteView], logger *slog.Logger) *Handler {
	return &Handler{g: g, sel: sel, routes: routes, logger: logger}
}

// RouteKey identifies a cached route by its resolved endpoints.
type RouteKey struct {
	From, To graph.StationID
}

// plan resolves station names and computes the route between them.
func (h *Handler) plan(from, to string) (render.RouteView, error) {
	src, okFrom := h.g.StationByName(from)
	dst, okTo := h.g.StationByName(to)
	if !okFrom || !okTo {
		return render.RouteView{}, fmt.Errorf("plan %q -> %q: %w", from, to, errStationNotFound)
	}

	key := RouteKey{From: src, To: dst}
	if h.routes != nil {
		if v, ok := h.routes.Get(key); ok {
			return v, nil
		}
	}

	it, err := route.Plan(h.g, src, dst, h.sel)
	if err != nil {
		return render.RouteView{}, err
	}
	v := render.NewRouteView(h.g, it)
	if h.routes != nil {
		h.routes.Set(key, v)
	}
	return v, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encoding response", "error", err)
	}
}
