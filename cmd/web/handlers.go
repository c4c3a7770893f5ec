package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/unitytennis/tennis-backend/internal/httputil"
	"github.com/unitytennis/tennis-backend/internal/service"
	"github.com/unitytennis/tennis-backend/views"
)

type handlers struct {
	players     *service.PlayerService
	tournaments *service.TournamentService
	brackets    *service.BracketService
	matchups    *service.MatchupService
}

type messageResponse struct {
	Message string `json:"message"`
}

// @Summary  Landing page
// @Tags     meta
// @Produce  html
// @Success  200 {string} string "HTML page"
// @Router   / [get]
func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	overview, err := h.tournaments.Overview(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to load overview", err)
		return
	}
	if err := views.Render(w, r, http.StatusOK, views.Home(*overview)); err != nil {
		httputil.InternalServerError(w, "Failed to render landing page", err)
	}
}

// serviceError answers with the status matching err's kind; anything unrecognised is a 500
// logged under msg.
func serviceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httputil.BadRequest(w, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		httputil.NotFound(w, err.Error(), nil)
	case errors.Is(err, service.ErrConflict):
		httputil.Conflict(w, err.Error(), nil)
	case errors.Is(err, service.ErrNotImplemented):
		httputil.NotImplemented(w, err.Error(), nil)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}

// urlID parses the named chi URL parameter, answering 400 itself when it is not a UUID.
func urlID(w http.ResponseWriter, r *http.Request, param, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		httputil.BadRequest(w, fmt.Sprintf("Invalid %s ID", entity), err)
		return uuid.Nil, false
	}
	return id, true
}

// parseID treats an empty value as absent (uuid.Nil) so services can report it as missing.
func parseID(field, value string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid id", field)
	}
	return id, nil
}

func parseOptionalID(field string, value *string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := parseID(field, *value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
