package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unitytennis/tennis-backend/internal/db/dbtest"
	"github.com/unitytennis/tennis-backend/internal/phonecrypt"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cipher, err := phonecrypt.New("test key")
	require.NoError(t, err)
	return &testServer{t: t, router: newRouter(dbtest.New(t), cipher, []string{"*"})}
}

// do sends body as JSON (when non-nil) and decodes the response into out (when non-nil).
func (s *testServer) do(method, path string, body any, out any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if out != nil {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

type idResponse struct {
	ID string `json:"id"`
}

func (s *testServer) create(path string, body any) string {
	s.t.Helper()

	var created idResponse
	w := s.do(http.MethodPost, path, body, &created)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return created.ID
}

func (s *testServer) seedBracket(players ...string) (string, []string) {
	s.t.Helper()

	tournamentID := s.create("/tournaments", map[string]any{"name": "Club Cup"})
	bracketID := s.create("/brackets", map[string]any{"tournament_id": tournamentID, "name": "Open"})

	var ids []string
	for _, name := range players {
		id := s.create("/players", map[string]any{"name": name, "gender": "F", "phone_number": "555-0123"})
		s.create("/brackets/"+bracketID+"/players", map[string]any{"player_id": id})
		ids = append(ids, id)
	}
	return bracketID, ids
}

func TestPlayerRoutes(t *testing.T) {
	s := newTestServer(t)

	var player map[string]any
	w := s.do(http.MethodPost, "/players", map[string]any{"name": "Ana", "gender": "F", "phone_number": "555-0101"}, &player)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Ana", player["name"])
	assert.Equal(t, "F", player["gender"])
	assert.Equal(t, "555-0101", player["phone_number"])
	assert.NotEmpty(t, player["id"])

	var errBody map[string]string
	w = s.do(http.MethodPost, "/players", map[string]any{"name": "Bea", "gender": "F"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errBody["error"], "phone_number")

	var players []map[string]any
	w = s.do(http.MethodGet, "/players", nil, &players)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, players, 1)
	assert.Equal(t, "555-0101", players[0]["phone_number"])

	w = s.do(http.MethodDelete, "/players/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/players/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var msg map[string]string
	w = s.do(http.MethodDelete, "/players/"+player["id"].(string), nil, &msg)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Player removed from the registry successfully", msg["message"])
}

func TestDeleteReferencedPlayer(t *testing.T) {
	s := newTestServer(t)
	_, ids := s.seedBracket("Ana")

	w := s.do(http.MethodDelete, "/players/"+ids[0], nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBracketRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/brackets", map[string]any{"name": "Open"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/brackets", map[string]any{"tournament_id": uuid.NewString(), "name": "Open"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	bracketID, ids := s.seedBracket("Zoe", "Ana")

	var brackets []map[string]any
	w = s.do(http.MethodGet, "/brackets", nil, &brackets)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, brackets, 1)
	assert.Equal(t, bracketID, brackets[0]["id"])
	assert.NotContains(t, brackets[0], "status")

	var roster []map[string]any
	w = s.do(http.MethodGet, "/brackets/"+bracketID+"/players", nil, &roster)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, roster, 2)
	assert.Equal(t, ids[0], roster[0]["id"])
	assert.Equal(t, "555-0123", roster[0]["phone_number"])

	w = s.do(http.MethodGet, "/brackets/"+uuid.NewString()+"/players", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/brackets/"+bracketID+"/players", map[string]any{"player_id": ids[0]}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodDelete, "/brackets/"+bracketID+"/players/"+ids[0], nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/brackets/"+bracketID+"/players/"+ids[0], nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTournamentRoutes(t *testing.T) {
	s := newTestServer(t)

	var tournament map[string]any
	w := s.do(http.MethodPost, "/tournaments", map[string]any{"name": "Club Cup", "format": "ROUND_ROBIN", "start_date": "2026-05-01"}, &tournament)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "PLANNING", tournament["status"])
	assert.EqualValues(t, 1, tournament["current_round"])
	id := tournament["id"].(string)

	w = s.do(http.MethodPost, "/tournaments", map[string]any{"name": "Bad", "start_date": "May first"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	playerID := s.create("/players", map[string]any{"name": "Ana", "gender": "F", "phone_number": "555-0101"})

	var links []map[string]any
	w = s.do(http.MethodPost, "/tournament-players", map[string]any{"tournament_id": id, "player_ids": []string{playerID}}, &links)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, links, 1)
	assert.Equal(t, playerID, links[0]["player_id"])

	w = s.do(http.MethodPost, "/tournament-players", map[string]any{"tournament_id": id, "player_ids": []string{playerID}}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/tournament-players", map[string]any{"tournament_id": id, "player_ids": []string{}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/tournament-players", nil, &links)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, links, 1)

	var brackets []map[string]any
	w = s.do(http.MethodGet, "/tournaments/"+id+"/brackets", nil, &brackets)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, brackets)

	w = s.do(http.MethodGet, "/tournaments/"+uuid.NewString()+"/brackets", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateMatchupsRoute(t *testing.T) {
	s := newTestServer(t)
	bracketID, ids := s.seedBracket("Ana", "Bea", "Cleo")

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"missing format", map[string]any{"bracket_id": bracketID}, http.StatusBadRequest},
		{"invalid bracket id", map[string]any{"bracket_id": "nope", "format": "ROUND_ROBIN"}, http.StatusBadRequest},
		{"unknown bracket", map[string]any{"bracket_id": uuid.NewString(), "format": "ROUND_ROBIN"}, http.StatusNotFound},
		{"swiss", map[string]any{"bracket_id": bracketID, "format": "SWISS"}, http.StatusNotImplemented},
		{"unknown format", map[string]any{"bracket_id": bracketID, "format": "LADDER"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/matchups/generate", tt.body, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w := s.do(http.MethodGet, "/brackets/"+bracketID+"/matchups", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var generated []map[string]any
	w = s.do(http.MethodPost, "/matchups/generate", map[string]any{"bracket_id": bracketID, "format": "ROUND_ROBIN"}, &generated)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, generated, 3)

	want := [][2]string{{ids[0], ids[1]}, {ids[0], ids[2]}, {ids[1], ids[2]}}
	for i, m := range generated {
		assert.Equal(t, want[i][0], m["player1_id"])
		assert.Equal(t, want[i][1], m["player2_id"])
		assert.Equal(t, "PENDING", m["status"])
		assert.Equal(t, bracketID, m["bracket_id"])
	}

	var listed []map[string]any
	w = s.do(http.MethodGet, "/brackets/"+bracketID+"/matchups", nil, &listed)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listed, 3)

	var rounds []map[string]any
	w = s.do(http.MethodGet, "/brackets/"+bracketID+"/rounds", nil, &rounds)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, rounds, 3)

	emptyBracket, _ := s.seedBracket()
	w = s.do(http.MethodPost, "/matchups/generate", map[string]any{"bracket_id": emptyBracket, "format": "ROUND_ROBIN"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatchupResultRoutes(t *testing.T) {
	s := newTestServer(t)
	bracketID, ids := s.seedBracket("Ana", "Bea")

	var created map[string]any
	w := s.do(http.MethodPost, "/matchups", map[string]any{
		"bracket_id": bracketID,
		"player1_id": ids[0],
		"player2_id": ids[1],
		"status":     "PENDING",
	}, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	matchupID := created["id"].(string)

	w = s.do(http.MethodPost, "/matchups", map[string]any{"bracket_id": bracketID, "player1_id": ids[0]}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/matchups/"+matchupID+"/result", map[string]any{"winner_id": uuid.NewString()}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/matchups/"+uuid.NewString()+"/result", map[string]any{"winner_id": ids[0]}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var updated map[string]any
	w = s.do(http.MethodPatch, "/matchups/"+matchupID+"/result", map[string]any{"winner_id": ids[1], "score": "6-3 6-4"}, &updated)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COMPLETED", updated["status"])
	assert.Equal(t, ids[1], updated["winner_id"])

	var completed []map[string]any
	w = s.do(http.MethodGet, "/brackets/"+bracketID+"/matchups?status=COMPLETED&status=IN_PROGRESS", nil, &completed)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, completed, 1)

	var summaries []map[string]any
	w = s.do(http.MethodGet, "/matchups", nil, &summaries)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, summaries, 1)
	assert.Len(t, summaries[0], 3)
	assert.Equal(t, "6-3 6-4", summaries[0]["score"])

	var deleted map[string]int
	w = s.do(http.MethodDelete, "/brackets/"+bracketID+"/matchups", nil, &deleted)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, deleted["deleted"])
}

func TestHomeAndDocs(t *testing.T) {
	s := newTestServer(t)
	s.seedBracket("Ana")

	w := s.do(http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<li>Players: 1</li>")

	var doc map[string]any
	w = s.do(http.MethodGet, "/swagger/doc.json", nil, &doc)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, doc["paths"], "/matchups/generate")
}
