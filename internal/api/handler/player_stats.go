package handler

import (
	"net/http"

	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/model"
)

// recentPlayerStatsLimit caps GET /api/player-stats.
const recentPlayerStatsLimit = 100

// playerStatRequest takes the counters from the embedded row and overrides
// the two references so they can be validated.
type playerStatRequest struct {
	model.PlayerStat
	MatchID  model.OptInt `json:"match_id" validate:"required,gt=0"`
	PlayerID model.OptInt `json:"player_id" validate:"required,gt=0"`
}

// ListPlayerStats returns the most recently recorded player stat lines.
// @Summary Recent player stats
// @Tags player-stats
// @Produce json
// @Success 200 {array} model.PlayerStat
// @Failure 500 {object} respond.ErrorResponse
// @Router /player-stats [get]
func (h *Handler) ListPlayerStats(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListPlayerStats(r.Context(), recentPlayerStatsLimit)
	if err != nil {
		dbError(w, r, "Failed to list player stats", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rows)
}

// CreatePlayerStat records one player's counters for one match.
// @Summary Record player stats
// @Tags player-stats
// @Accept json
// @Produce json
// @Param stat body model.PlayerStat true "Player stat line"
// @Success 201 {object} model.PlayerStat
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /player-stats [post]
func (h *Handler) CreatePlayerStat(w http.ResponseWriter, r *http.Request) {
	var req playerStatRequest
	if !h.decode(w, r, &req) {
		return
	}
	row := req.PlayerStat
	row.ID = 0
	row.MatchID = req.MatchID.Int
	row.PlayerID = req.PlayerID.Int
	row.PlayerName = nil
	row.MatchDate = nil

	created, err := h.store.CreatePlayerStat(r.Context(), row)
	if err != nil {
		dbError(w, r, "Failed to record player stats", err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}
