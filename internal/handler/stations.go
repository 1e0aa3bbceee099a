package handler

import (
	"net/http"

	"metropath/internal/render"
)

// Stations lists every station in graph order.
func (h *Handler) Stations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, render.NewStationViews(h.g))
}

type health struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
	Segments int    `json:"segments"`
}

// Health reports the size of the loaded network.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, health{
		Status:   "ok",
		Stations: h.g.Len(),
		Segments: len(h.g.Segments()),
	})
}
