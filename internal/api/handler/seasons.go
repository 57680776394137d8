package handler

import (
	"net/http"

	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/model"
)

type seasonRequest struct {
	LeagueID   model.OptInt `json:"league_id" validate:"required,gt=0"`
	SeasonYear string       `json:"season_year" validate:"required,max=20"`
	StartDate  string       `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string       `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// ListSeasons returns every season, latest start first.
// @Summary List seasons
// @Tags seasons
// @Produce json
// @Success 200 {array} model.Season
// @Failure 500 {object} respond.ErrorResponse
// @Router /seasons [get]
func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.store.ListSeasons(r.Context())
	if err != nil {
		dbError(w, r, "Failed to list seasons", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, seasons)
}

// CreateSeason stores a new season.
// @Summary Create season
// @Tags seasons
// @Accept json
// @Produce json
// @Param season body seasonRequest true "Season"
// @Success 201 {object} model.Season
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /seasons [post]
func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if !h.decode(w, r, &req) {
		return
	}
	season, err := h.store.CreateSeason(r.Context(), model.Season{
		LeagueID:  req.LeagueID.Int,
		Year:      req.SeasonYear,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		dbError(w, r, "Failed to create season", err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, season)
}

// DeleteSeason removes a season.
// @Summary Delete season
// @Tags seasons
// @Produce json
// @Param seasonID path int true "Season ID"
// @Success 200 {object} messageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{seasonID} [delete]
func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "seasonID")
	if !ok {
		return
	}
	deleted(w, r, "Season", h.store.DeleteSeason(r.Context(), id))
}
