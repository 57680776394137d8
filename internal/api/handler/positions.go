package handler

import (
	"net/http"

	"github.com/matchday/matchday-api/internal/api/respond"
)

// ListPositions returns the position catalogue.
// @Summary List positions
// @Tags positions
// @Produce json
// @Success 200 {array} model.Position
// @Failure 500 {object} respond.ErrorResponse
// @Router /positions [get]
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.store.ListPositions(r.Context())
	if err != nil {
		dbError(w, r, "Failed to list positions", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, positions)
}
