package main

import (
	"net/http"

	"github.com/unitytennis/tennis-backend/internal/httputil"
	"github.com/unitytennis/tennis-backend/internal/service"
)

type createPlayerRequest struct {
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
}

// @Summary  List players
// @Tags     players
// @Produce  json
// @Success  200 {array}  tennis.Player
// @Failure  500 {object} map[string]string
// @Router   /players [get]
func (h *handlers) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.ListPlayers(r.Context())
	if err != nil {
		serviceError(w, "Failed to list players", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, players)
}

// @Summary  Register a player
// @Tags     players
// @Accept   json
// @Produce  json
// @Param    player body     createPlayerRequest true "Player"
// @Success  201    {object} tennis.Player
// @Failure  400    {object} map[string]string
// @Failure  500    {object} map[string]string
// @Router   /players [post]
func (h *handlers) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	player, err := h.players.CreatePlayer(r.Context(), service.PlayerInput{
		Name:        req.Name,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		serviceError(w, "Failed to create player", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, player)
}

// @Summary  Remove a player from the registry
// @Tags     players
// @Produce  json
// @Param    id  path     string true "Player ID"
// @Success  200 {object} messageResponse
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /players/{id} [delete]
func (h *handlers) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "player")
	if !ok {
		return
	}

	if err := h.players.DeletePlayer(r.Context(), id); err != nil {
		serviceError(w, "Failed to delete player", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Player removed from the registry successfully"})
}
