package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/metrics"
	"github.com/matchday/matchday-api/internal/stats"
)

// GetHeadToHead summarises every completed meeting of two teams.
// @Summary Head-to-head record
// @Description Wins, draws, percentages, and the five most recent meetings of two teams. Recomputed on every request.
// @Tags stats
// @Produce json
// @Param teamA query int true "First team ID"
// @Param teamB query int true "Second team ID"
// @Success 200 {object} stats.HeadToHeadSummary
// @Success 304 "Not modified (ETag match)"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /head-to-head [get]
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teamA, errA := strconv.Atoi(q.Get("teamA"))
	teamB, errB := strconv.Atoi(q.Get("teamB"))
	if errA != nil || errB != nil {
		teamA, teamB = 0, 0
	}

	summary, err := h.stats.HeadToHead(r.Context(), teamA, teamB)
	switch {
	case errors.Is(err, stats.ErrInvalidTeamPair):
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidTeams, err.Error())
		return
	case err != nil:
		metrics.AggregationsTotal.WithLabelValues("head_to_head", "error").Inc()
		dbError(w, r, "Failed to load head-to-head", err)
		return
	}
	metrics.AggregationsTotal.WithLabelValues("head_to_head", "ok").Inc()
	respond.WriteAggregate(w, r, summary)
}

// GetLeagueTable returns the all-time table of a league.
// @Summary League table
// @Description Standings across every season of the league: 3 points per win, 1 per draw. Ordered by points, goal difference, goals scored, then team ID.
// @Tags stats
// @Produce json
// @Param leagueID path int true "League ID"
// @Success 200 {array} stats.Standing
// @Success 304 "Not modified (ETag match)"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/table [get]
func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathID(w, r, "leagueID")
	if !ok {
		return
	}
	table, err := h.stats.Table(r.Context(), leagueID)
	if err != nil {
		metrics.AggregationsTotal.WithLabelValues("table", "error").Inc()
		dbError(w, r, "Failed to load league table", err)
		return
	}
	metrics.AggregationsTotal.WithLabelValues("table", "ok").Inc()
	respond.WriteAggregate(w, r, table)
}

// GetTopScorers returns the league's ten highest goal scorers.
// @Summary Top scorers
// @Tags stats
// @Produce json
// @Param leagueID path int true "League ID"
// @Success 200 {array} map[string]interface{}
// @Success 304 "Not modified (ETag match)"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/top-scorers [get]
func (h *Handler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	h.writeLeaders(w, r, stats.MetricGoals)
}

// GetTopAssists returns the league's ten highest assist providers.
// @Summary Top assists
// @Tags stats
// @Produce json
// @Param leagueID path int true "League ID"
// @Success 200 {array} map[string]interface{}
// @Success 304 "Not modified (ETag match)"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/top-assists [get]
func (h *Handler) GetTopAssists(w http.ResponseWriter, r *http.Request) {
	h.writeLeaders(w, r, stats.MetricAssists)
}

// GetLeaders ranks the league's players by any summable counter.
// @Summary Stat leaders
// @Tags stats
// @Produce json
// @Param leagueID path int true "League ID"
// @Param metric query string true "Counter to rank by" Enums(goals, assists, shots_on_target, key_passes, yellow_cards, red_cards)
// @Success 200 {array} map[string]interface{}
// @Success 304 "Not modified (ETag match)"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/leaders [get]
func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	metric, err := stats.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidMetric, err.Error())
		return
	}
	h.writeLeaders(w, r, metric)
}

func (h *Handler) writeLeaders(w http.ResponseWriter, r *http.Request, metric stats.Metric) {
	leagueID, ok := pathID(w, r, "leagueID")
	if !ok {
		return
	}
	kind := "leaders_" + string(metric)
	leaders, err := h.stats.Leaders(r.Context(), leagueID, metric)
	if err != nil {
		metrics.AggregationsTotal.WithLabelValues(kind, "error").Inc()
		dbError(w, r, "Failed to load "+string(metric)+" leaders", err)
		return
	}
	metrics.AggregationsTotal.WithLabelValues(kind, "ok").Inc()
	respond.WriteAggregate(w, r, leaders)
}
