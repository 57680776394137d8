package handler

import (
	"net/http"

	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/model"
)

// playerRequest accepts the legacy position_id alongside default_position_id.
type playerRequest struct {
	PlayerName        string       `json:"player_name" validate:"required,max=100"`
	DefaultPositionID model.OptInt `json:"default_position_id" validate:"omitempty,gt=0"`
	PositionID        model.OptInt `json:"position_id" validate:"omitempty,gt=0"`
	TeamID            model.OptInt `json:"team_id" validate:"required,gt=0"`
	DateOfBirth       *string      `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Nationality       *string      `json:"nationality"`
	HeightCM          model.OptInt `json:"height_cm" validate:"omitempty,gt=0,lt=300"`
	Foot              *string      `json:"foot"`
	SeasonID          model.OptInt `json:"season_id" validate:"omitempty,gt=0"`
}

// position resolves the player's position once: default_position_id wins,
// position_id is the fallback.
func (p playerRequest) position() model.OptInt {
	if p.DefaultPositionID.Valid && p.DefaultPositionID.Int != 0 {
		return p.DefaultPositionID
	}
	return p.PositionID
}

// ListPlayers returns every player with their position name.
// @Summary List players
// @Tags players
// @Produce json
// @Success 200 {array} model.Player
// @Failure 500 {object} respond.ErrorResponse
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.ListPlayers(r.Context())
	if err != nil {
		dbError(w, r, "Failed to list players", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, players)
}

// CreatePlayer stores a new player. With season_id the player is also added
// to the team's roster for that season.
// @Summary Create player
// @Tags players
// @Accept json
// @Produce json
// @Param player body playerRequest true "Player"
// @Success 201 {object} model.Player
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /players [post]
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !h.decode(w, r, &req) {
		return
	}
	position := req.position()
	if !position.Valid || position.Int <= 0 {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeValidationFailed,
			"player_name, default_position_id (or position_id), and team_id are required")
		return
	}

	player, err := h.store.CreatePlayer(r.Context(), model.NewPlayer{
		Player: model.Player{
			Name:              req.PlayerName,
			DefaultPositionID: position,
			TeamID:            req.TeamID,
			DateOfBirth:       req.DateOfBirth,
			Nationality:       req.Nationality,
			HeightCM:          req.HeightCM,
			Foot:              req.Foot,
		},
		SeasonID: req.SeasonID,
	})
	if err != nil {
		dbError(w, r, "Failed to create player", err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, player)
}

// DeletePlayer removes a player.
// @Summary Delete player
// @Tags players
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} messageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{playerID} [delete]
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	deleted(w, r, "Player", h.store.DeletePlayer(r.Context(), id))
}
