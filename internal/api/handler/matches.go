package handler

import (
	"net/http"

	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/model"
)

type matchRequest struct {
	SeasonID        model.OptInt   `json:"season_id" validate:"required,gt=0"`
	MatchDate       string         `json:"match_date" validate:"required,datetime=2006-01-02"`
	MatchTime       *string        `json:"match_time"`
	Venue           *string        `json:"venue"`
	TeamAID         model.OptInt   `json:"teamA_id" validate:"required,gt=0"`
	TeamBID         model.OptInt   `json:"teamB_id" validate:"required,gt=0"`
	TeamAGoals      model.OptInt   `json:"teamA_goals" validate:"omitempty,gte=0"`
	TeamBGoals      model.OptInt   `json:"teamB_goals" validate:"omitempty,gte=0"`
	TeamARole       string         `json:"teamA_role"`
	TeamBRole       string         `json:"teamB_role"`
	TeamAPossession model.OptFloat `json:"teamA_possession" validate:"omitempty,gte=0,lte=100"`
	TeamBPossession model.OptFloat `json:"teamB_possession" validate:"omitempty,gte=0,lte=100"`
}

type matchCreatedResponse struct {
	MatchID int `json:"match_id"`
}

// CreateMatch records a match and both of its sides. Missing goals count as
// zero and result tags are derived from the score.
// @Summary Record match
// @Tags matches
// @Accept json
// @Produce json
// @Param match body matchRequest true "Match"
// @Success 201 {object} matchCreatedResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /matches [post]
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.TeamAID.Int == req.TeamBID.Int {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidTeams,
			"teamA_id and teamB_id must be different")
		return
	}

	id, err := h.store.CreateMatch(r.Context(), model.NewMatch{
		SeasonID: req.SeasonID.Int,
		Date:     req.MatchDate,
		Time:     blankToNil(req.MatchTime),
		Venue:    blankToNil(req.Venue),
		A: model.MatchSide{
			TeamID:     req.TeamAID.Int,
			Goals:      req.TeamAGoals.OrZero(),
			Role:       req.TeamARole,
			Possession: req.TeamAPossession,
		},
		B: model.MatchSide{
			TeamID:     req.TeamBID.Int,
			Goals:      req.TeamBGoals.OrZero(),
			Role:       req.TeamBRole,
			Possession: req.TeamBPossession,
		},
	})
	if err != nil {
		dbError(w, r, "Failed to record match", err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, matchCreatedResponse{MatchID: id})
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
