package main

import (
	"net/http"

	"github.com/unitytennis/tennis-backend/internal/httputil"
	"github.com/unitytennis/tennis-backend/internal/service"
)

type createBracketRequest struct {
	TournamentID string `json:"tournament_id"`
	Name         string `json:"name"`
}

type registerPlayerRequest struct {
	PlayerID  string  `json:"player_id"`
	PartnerID *string `json:"partner_id"`
	Paid      bool    `json:"paid"`
}

// @Summary  List brackets
// @Tags     brackets
// @Produce  json
// @Success  200 {array}  tennis.Bracket
// @Failure  500 {object} map[string]string
// @Router   /brackets [get]
func (h *handlers) listBrackets(w http.ResponseWriter, r *http.Request) {
	brackets, err := h.brackets.ListBrackets(r.Context())
	if err != nil {
		serviceError(w, "Failed to list brackets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, brackets)
}

// @Summary  Create a bracket
// @Tags     brackets
// @Accept   json
// @Produce  json
// @Param    bracket body     createBracketRequest true "Bracket"
// @Success  201     {object} tennis.Bracket
// @Failure  400     {object} map[string]string
// @Failure  404     {object} map[string]string
// @Failure  500     {object} map[string]string
// @Router   /brackets [post]
func (h *handlers) createBracket(w http.ResponseWriter, r *http.Request) {
	var req createBracketRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	tournamentID, err := parseID("tournament_id", req.TournamentID)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	bracket, err := h.brackets.CreateBracket(r.Context(), service.BracketInput{
		TournamentID: tournamentID,
		Name:         req.Name,
	})
	if err != nil {
		serviceError(w, "Failed to create bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, bracket)
}

// @Summary  Bracket roster
// @Tags     brackets
// @Produce  json
// @Param    id  path     string true "Bracket ID"
// @Success  200 {array}  tennis.Player
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /brackets/{id}/players [get]
func (h *handlers) bracketRoster(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "bracket")
	if !ok {
		return
	}

	players, err := h.brackets.GetRoster(r.Context(), id)
	if err != nil {
		serviceError(w, "Failed to get bracket roster", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, players)
}

// @Summary  Register a player in a bracket
// @Tags     brackets
// @Accept   json
// @Produce  json
// @Param    id           path     string                true "Bracket ID"
// @Param    registration body     registerPlayerRequest true "Player and optional doubles partner"
// @Success  201          {object} tennis.BracketPlayer
// @Failure  400          {object} map[string]string
// @Failure  404          {object} map[string]string
// @Failure  409          {object} map[string]string
// @Failure  500          {object} map[string]string
// @Router   /brackets/{id}/players [post]
func (h *handlers) registerBracketPlayer(w http.ResponseWriter, r *http.Request) {
	bracketID, ok := urlID(w, r, "id", "bracket")
	if !ok {
		return
	}

	var req registerPlayerRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	playerID, err := parseID("player_id", req.PlayerID)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	partnerID, err := parseOptionalID("partner_id", req.PartnerID)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	entry, err := h.brackets.Register(r.Context(), bracketID, service.RegistrationInput{
		PlayerID:  playerID,
		PartnerID: partnerID,
		Paid:      req.Paid,
	})
	if err != nil {
		serviceError(w, "Failed to register player", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// @Summary  Remove a player from a bracket
// @Tags     brackets
// @Produce  json
// @Param    id       path     string true "Bracket ID"
// @Param    playerID path     string true "Player ID"
// @Success  200      {object} messageResponse
// @Failure  400      {object} map[string]string
// @Failure  404      {object} map[string]string
// @Failure  500      {object} map[string]string
// @Router   /brackets/{id}/players/{playerID} [delete]
func (h *handlers) unregisterBracketPlayer(w http.ResponseWriter, r *http.Request) {
	bracketID, ok := urlID(w, r, "id", "bracket")
	if !ok {
		return
	}
	playerID, ok := urlID(w, r, "playerID", "player")
	if !ok {
		return
	}

	if err := h.brackets.Unregister(r.Context(), bracketID, playerID); err != nil {
		serviceError(w, "Failed to remove player from bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Player removed from the bracket successfully"})
}
