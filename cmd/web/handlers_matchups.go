package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/unitytennis/tennis-backend/internal/httputil"
	"github.com/unitytennis/tennis-backend/internal/service"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type createMatchupRequest struct {
	BracketID        string  `json:"bracket_id"`
	Round            *int    `json:"round"`
	Player1ID        string  `json:"player1_id"`
	Player2ID        string  `json:"player2_id"`
	Player1PartnerID *string `json:"player1_partner_id"`
	Player2PartnerID *string `json:"player2_partner_id"`
	WinnerID         *string `json:"winner_id"`
	Score            string  `json:"score"`
	Status           string  `json:"status"`
}

type generateMatchupsRequest struct {
	BracketID string `json:"bracket_id"`
	Format    string `json:"format"`
}

type recordResultRequest struct {
	WinnerID string `json:"winner_id"`
	Score    string `json:"score"`
}

type matchupSummary struct {
	ID     uuid.UUID            `json:"id"`
	Status tennis.MatchupStatus `json:"status"`
	Score  *string              `json:"score"`
}

type deletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// @Summary  List matchups
// @Tags     matchups
// @Produce  json
// @Success  200 {array}  matchupSummary
// @Failure  500 {object} map[string]string
// @Router   /matchups [get]
func (h *handlers) listMatchups(w http.ResponseWriter, r *http.Request) {
	matchups, err := h.matchups.ListMatchups(r.Context())
	if err != nil {
		serviceError(w, "Failed to list matchups", err)
		return
	}

	summaries := make([]matchupSummary, 0, len(matchups))
	for _, m := range matchups {
		summaries = append(summaries, matchupSummary{ID: m.ID, Status: m.Status, Score: m.Score})
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

// @Summary  List a bracket's matchups
// @Tags     matchups
// @Produce  json
// @Param    id     path     string   true  "Bracket ID"
// @Param    status query    []string false "Only these statuses" collectionFormat(multi)
// @Success  200    {array}  tennis.Matchup
// @Failure  400    {object} map[string]string
// @Failure  404    {object} map[string]string
// @Router   /brackets/{id}/matchups [get]
func (h *handlers) listBracketMatchups(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "bracket")
	if !ok {
		return
	}

	var statuses []tennis.MatchupStatus
	for _, s := range r.URL.Query()["status"] {
		if s != "" {
			statuses = append(statuses, tennis.MatchupStatus(s))
		}
	}

	matchups, err := h.matchups.ListBracketMatchups(r.Context(), id, statuses)
	if err != nil {
		serviceError(w, "Failed to list bracket matchups", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, matchups)
}

// @Summary  Bracket matchups grouped by round
// @Tags     matchups
// @Produce  json
// @Param    id  path     string true "Bracket ID"
// @Success  200 {array}  tennis.Round
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /brackets/{id}/rounds [get]
func (h *handlers) bracketRounds(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "bracket")
	if !ok {
		return
	}

	rounds, err := h.matchups.Rounds(r.Context(), id)
	if err != nil {
		serviceError(w, "Failed to get bracket rounds", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rounds)
}

// @Summary  Create a matchup
// @Tags     matchups
// @Accept   json
// @Produce  json
// @Param    matchup body     createMatchupRequest true "Matchup"
// @Success  201     {object} tennis.Matchup
// @Failure  400     {object} map[string]string
// @Failure  404     {object} map[string]string
// @Failure  500     {object} map[string]string
// @Router   /matchups [post]
func (h *handlers) createMatchup(w http.ResponseWriter, r *http.Request) {
	var req createMatchupRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	input := service.MatchupInput{Round: req.Round, Score: req.Score, Status: req.Status}
	var err error
	if input.BracketID, err = parseID("bracket_id", req.BracketID); err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	if input.Player1ID, err = parseID("player1_id", req.Player1ID); err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	if input.Player2ID, err = parseID("player2_id", req.Player2ID); err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	if input.Player1PartnerID, err = parseOptionalID("player1_partner_id", req.Player1PartnerID); err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	if input.Player2PartnerID, err = parseOptionalID("player2_partner_id", req.Player2PartnerID); err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	if input.WinnerID, err = parseOptionalID("winner_id", req.WinnerID); err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	matchup, err := h.matchups.CreateMatchup(r.Context(), input)
	if err != nil {
		serviceError(w, "Failed to create matchup", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, matchup)
}

// @Summary  Generate a bracket's matchups
// @Tags     matchups
// @Accept   json
// @Produce  json
// @Param    request body     generateMatchupsRequest true "Bracket and format (ROUND_ROBIN or SWISS)"
// @Success  201     {array}  tennis.Matchup
// @Failure  400     {object} map[string]string
// @Failure  404     {object} map[string]string
// @Failure  500     {object} map[string]string
// @Failure  501     {object} map[string]string
// @Router   /matchups/generate [post]
func (h *handlers) generateMatchups(w http.ResponseWriter, r *http.Request) {
	var req generateMatchupsRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	bracketID, err := parseID("bracket_id", req.BracketID)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	matchups, err := h.matchups.GenerateMatchups(r.Context(), bracketID, req.Format)
	if err != nil {
		serviceError(w, "Failed to generate matchups", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, matchups)
}

// @Summary  Record a matchup result
// @Tags     matchups
// @Accept   json
// @Produce  json
// @Param    id     path     string              true "Matchup ID"
// @Param    result body     recordResultRequest true "Winner and score"
// @Success  200    {object} tennis.Matchup
// @Failure  400    {object} map[string]string
// @Failure  404    {object} map[string]string
// @Failure  500    {object} map[string]string
// @Router   /matchups/{id}/result [patch]
func (h *handlers) recordResult(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "matchup")
	if !ok {
		return
	}

	var req recordResultRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	winnerID, err := parseID("winner_id", req.WinnerID)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	matchup, err := h.matchups.RecordResult(r.Context(), id, service.ResultInput{WinnerID: winnerID, Score: req.Score})
	if err != nil {
		serviceError(w, "Failed to record result", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, matchup)
}

// @Summary  Delete all of a bracket's matchups
// @Tags     matchups
// @Produce  json
// @Param    id  path     string true "Bracket ID"
// @Success  200 {object} deletedResponse
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /brackets/{id}/matchups [delete]
func (h *handlers) deleteBracketMatchups(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "bracket")
	if !ok {
		return
	}

	deleted, err := h.matchups.DeleteBracketMatchups(r.Context(), id)
	if err != nil {
		serviceError(w, "Failed to delete bracket matchups", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, deletedResponse{Deleted: deleted})
}
