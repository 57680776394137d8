package handler

import (
	"net/http"

	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/model"
)

type teamRequest struct {
	LeagueID    model.OptInt `json:"league_id" validate:"required,gt=0"`
	TeamName    string       `json:"team_name" validate:"required,max=100"`
	City        *string      `json:"city"`
	Stadium     *string      `json:"stadium"`
	FoundedYear model.OptInt `json:"founded_year" validate:"omitempty,gte=1800,lte=2100"`
}

// ListTeams returns every team with its league name.
// @Summary List teams
// @Tags teams
// @Produce json
// @Success 200 {array} model.Team
// @Failure 500 {object} respond.ErrorResponse
// @Router /teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeams(r.Context())
	if err != nil {
		dbError(w, r, "Failed to list teams", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, teams)
}

// CreateTeam stores a new team.
// @Summary Create team
// @Tags teams
// @Accept json
// @Produce json
// @Param team body teamRequest true "Team"
// @Success 201 {object} model.Team
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /teams [post]
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if !h.decode(w, r, &req) {
		return
	}
	team, err := h.store.CreateTeam(r.Context(), model.Team{
		LeagueID:    req.LeagueID,
		Name:        req.TeamName,
		City:        req.City,
		Stadium:     req.Stadium,
		FoundedYear: req.FoundedYear,
	})
	if err != nil {
		dbError(w, r, "Failed to create team", err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, team)
}

// DeleteTeam removes a team. Its match results stay and render as "Unknown".
// @Summary Delete team
// @Tags teams
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} messageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /teams/{teamID} [delete]
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	deleted(w, r, "Team", h.store.DeleteTeam(r.Context(), id))
}
