package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/unitytennis/tennis-backend/internal/db/dbtest"
	"github.com/unitytennis/tennis-backend/internal/phonecrypt"
	"github.com/unitytennis/tennis-backend/internal/store"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type testEnv struct {
	db          *sqlx.DB
	players     *PlayerService
	tournaments *TournamentService
	brackets    *BracketService
	matchups    *MatchupService
}

func newTestEnv(t *testing.T, cipher *phonecrypt.Cipher) *testEnv {
	t.Helper()

	database := dbtest.New(t)
	playerStore := store.NewPlayerStore(database)
	tournamentStore := store.NewTournamentStore(database)
	bracketStore := store.NewBracketStore(database)
	matchupStore := store.NewMatchupStore(database)

	return &testEnv{
		db:          database,
		players:     NewPlayerService(database, playerStore, cipher),
		tournaments: NewTournamentService(database, tournamentStore, playerStore),
		brackets:    NewBracketService(database, bracketStore, tournamentStore, playerStore, cipher),
		matchups:    NewMatchupService(database, matchupStore, bracketStore, playerStore),
	}
}

func (e *testEnv) player(t *testing.T, name string) *tennis.Player {
	t.Helper()

	p, err := e.players.CreatePlayer(context.Background(), PlayerInput{Name: name, Gender: "M", PhoneNumber: "555-0199"})
	require.NoError(t, err)
	return p
}

func (e *testEnv) bracket(t *testing.T) *tennis.Bracket {
	t.Helper()

	tournament, err := e.tournaments.CreateTournament(context.Background(), TournamentInput{Name: "Club Cup"})
	require.NoError(t, err)

	b, err := e.brackets.CreateBracket(context.Background(), BracketInput{TournamentID: tournament.ID, Name: "Open"})
	require.NoError(t, err)
	return b
}

// bracketWithRoster registers n fresh players and returns their ids in roster order.
func (e *testEnv) bracketWithRoster(t *testing.T, n int) (*tennis.Bracket, []uuid.UUID) {
	t.Helper()

	b := e.bracket(t)
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		p := e.player(t, "Player "+string(rune('A'+i)))
		_, err := e.brackets.Register(context.Background(), b.ID, RegistrationInput{PlayerID: p.ID})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return b, ids
}
