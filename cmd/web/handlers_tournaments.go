package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unitytennis/tennis-backend/internal/httputil"
	"github.com/unitytennis/tennis-backend/internal/service"
)

type createTournamentRequest struct {
	Name      string  `json:"name"`
	Format    string  `json:"format"`
	Status    string  `json:"status"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type addTournamentPlayersRequest struct {
	TournamentID string   `json:"tournament_id"`
	PlayerIDs    []string `json:"player_ids"`
}

// @Summary  List tournaments
// @Tags     tournaments
// @Produce  json
// @Success  200 {array}  tennis.Tournament
// @Failure  500 {object} map[string]string
// @Router   /tournaments [get]
func (h *handlers) listTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournaments.ListTournaments(r.Context())
	if err != nil {
		serviceError(w, "Failed to list tournaments", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tournaments)
}

// @Summary  Create a tournament
// @Tags     tournaments
// @Accept   json
// @Produce  json
// @Param    tournament body     createTournamentRequest true "Tournament"
// @Success  201        {object} tennis.Tournament
// @Failure  400        {object} map[string]string
// @Failure  500        {object} map[string]string
// @Router   /tournaments [post]
func (h *handlers) createTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	tournament, err := h.tournaments.CreateTournament(r.Context(), service.TournamentInput{
		Name:      req.Name,
		Format:    req.Format,
		Status:    req.Status,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		serviceError(w, "Failed to create tournament", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, tournament)
}

// @Summary  List a tournament's brackets
// @Tags     tournaments
// @Produce  json
// @Param    id  path     string true "Tournament ID"
// @Success  200 {array}  tennis.Bracket
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /tournaments/{id}/brackets [get]
func (h *handlers) listTournamentBrackets(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "tournament")
	if !ok {
		return
	}

	brackets, err := h.tournaments.ListBrackets(r.Context(), id)
	if err != nil {
		serviceError(w, "Failed to list tournament brackets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, brackets)
}

// @Summary  List tournament entrants
// @Tags     tournaments
// @Produce  json
// @Success  200 {array}  tennis.TournamentPlayer
// @Failure  500 {object} map[string]string
// @Router   /tournament-players [get]
func (h *handlers) listTournamentPlayers(w http.ResponseWriter, r *http.Request) {
	links, err := h.tournaments.ListTournamentPlayers(r.Context())
	if err != nil {
		serviceError(w, "Failed to list tournament players", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, links)
}

// @Summary  Enter players into a tournament
// @Tags     tournaments
// @Accept   json
// @Produce  json
// @Param    entrants body     addTournamentPlayersRequest true "Tournament and players"
// @Success  201      {array}  tennis.TournamentPlayer
// @Failure  400      {object} map[string]string
// @Failure  404      {object} map[string]string
// @Failure  409      {object} map[string]string
// @Failure  500      {object} map[string]string
// @Router   /tournament-players [post]
func (h *handlers) addTournamentPlayers(w http.ResponseWriter, r *http.Request) {
	var req addTournamentPlayersRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	tournamentID, err := parseID("tournament_id", req.TournamentID)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	if tournamentID == uuid.Nil {
		httputil.BadRequest(w, "tournament_id and player_ids are required", nil)
		return
	}

	playerIDs := make([]uuid.UUID, 0, len(req.PlayerIDs))
	for _, raw := range req.PlayerIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("player_ids contains an invalid id %q", raw), nil)
			return
		}
		playerIDs = append(playerIDs, id)
	}

	links, err := h.tournaments.AddPlayers(r.Context(), tournamentID, playerIDs)
	if err != nil {
		serviceError(w, "Failed to add tournament players", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, links)
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*value)
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", field)
}
