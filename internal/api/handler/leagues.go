package handler

import (
	"net/http"

	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/model"
)

type leagueRequest struct {
	LeagueName string `json:"league_name" validate:"required,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
}

// ListLeagues returns every league.
// @Summary List leagues
// @Tags leagues
// @Produce json
// @Success 200 {array} model.League
// @Failure 500 {object} respond.ErrorResponse
// @Router /leagues [get]
func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.store.ListLeagues(r.Context())
	if err != nil {
		dbError(w, r, "Failed to list leagues", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, leagues)
}

// CreateLeague stores a new league.
// @Summary Create league
// @Tags leagues
// @Accept json
// @Produce json
// @Param league body leagueRequest true "League"
// @Success 201 {object} model.League
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /leagues [post]
func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	var req leagueRequest
	if !h.decode(w, r, &req) {
		return
	}
	league, err := h.store.CreateLeague(r.Context(), model.League{Name: req.LeagueName, Country: req.Country})
	if err != nil {
		dbError(w, r, "Failed to create league", err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, league)
}

// DeleteLeague removes a league.
// @Summary Delete league
// @Tags leagues
// @Produce json
// @Param leagueID path int true "League ID"
// @Success 200 {object} messageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /leagues/{leagueID} [delete]
func (h *Handler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "leagueID")
	if !ok {
		return
	}
	deleted(w, r, "League", h.store.DeleteLeague(r.Context(), id))
}
