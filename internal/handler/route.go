package handler

import (
	"errors"
	"net/http"

	"metropath/internal/route"
)

// Route serves GET /route?from=&to= as JSON.
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "from and to are required"})
		return
	}

	v, err := h.plan(from, to)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, v)
	case errors.Is(err, errStationNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "Stations not found."})
	case errors.Is(err, route.ErrUnreachable):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "No path from " + from + " to " + to + "."})
	default:
		h.logger.Error("planning route", "from", from, "to", to, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
