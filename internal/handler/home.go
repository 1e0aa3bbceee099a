package handler

import (
	"errors"
	"net/http"

	"metropath/internal/render"
	"metropath/internal/route"
)

// Home serves the HTML planner. With from and to set it also shows the route.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := render.PageData{
		Stations: render.NewStationViews(h.g),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}
	status := http.StatusOK
	if data.From != "" && data.To != "" {
		v, err := h.plan(data.From, data.To)
		switch {
		case err == nil:
			data.Route = &v
		case errors.Is(err, errStationNotFound):
			status = http.StatusNotFound
			data.Error = "Stations not found."
		case errors.Is(err, route.ErrUnreachable):
			status = http.StatusUnprocessableEntity
			data.Error = "No path from " + data.From + " to " + data.To + "."
		default:
			h.logger.Error("planning route", "from", data.From, "to", data.To, "error", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := render.Page(data).Render(r.Context(), w); err != nil {
		h.logger.Error("rendering planner page", "error", err)
	}
}
