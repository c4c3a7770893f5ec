package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unitytennis/tennis-backend/internal/db"
	"github.com/unitytennis/tennis-backend/internal/db/dbtest"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

func seedBracket(t *testing.T, database *sqlx.DB, tournamentID uuid.UUID, name string) *tennis.Bracket {
	t.Helper()

	bracket := &tennis.Bracket{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Name:         name,
		Status:       tennis.BracketPending,
	}
	err := db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		return NewBracketStore(database).CreateBracket(context.Background(), tx, bracket)
	})
	require.NoError(t, err)
	return bracket
}

func enroll(t *testing.T, database *sqlx.DB, bracketID, playerID uuid.UUID, partnerID *uuid.UUID) *tennis.BracketPlayer {
	t.Helper()

	store := NewBracketStore(database)
	var entry *tennis.BracketPlayer
	err := db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		seed, err := store.NextSeedTx(context.Background(), tx, bracketID)
		if err != nil {
			return err
		}
		entry = &tennis.BracketPlayer{
			ID:        uuid.New(),
			BracketID: bracketID,
			PlayerID:  playerID,
			PartnerID: partnerID,
			Seed:      seed,
		}
		return store.CreateRosterEntry(context.Background(), tx, entry)
	})
	require.NoError(t, err)
	return entry
}

func TestGetBracket(t *testing.T) {
	database := dbtest.New(t)
	store := NewBracketStore(database)

	tournament := seedTournament(t, database, "Club Cup")
	bracket := seedBracket(t, database, tournament.ID, "Men's Singles")

	fetched, err := store.GetBracket(context.Background(), bracket.ID)
	require.NoError(t, err)
	assert.Equal(t, bracket.ID, fetched.ID)
	assert.Equal(t, tournament.ID, fetched.TournamentID)
	assert.Equal(t, "Men's Singles", fetched.Name)
	assert.Equal(t, tennis.BracketPending, fetched.Status)

	_, err = store.GetBracket(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRosterOrderFollowsRegistration(t *testing.T) {
	database := dbtest.New(t)
	store := NewBracketStore(database)

	tournament := seedTournament(t, database, "Club Cup")
	bracket := seedBracket(t, database, tournament.ID, "Open")

	// Names deliberately out of alphabetical order
	zoe := seedPlayer(t, database, "Zoe")
	ana := seedPlayer(t, database, "Ana")
	mia := seedPlayer(t, database, "Mia")

	first := enroll(t, database, bracket.ID, zoe.ID, nil)
	second := enroll(t, database, bracket.ID, ana.ID, &mia.ID)
	assert.Equal(t, 1, first.Seed)
	assert.Equal(t, 2, second.Seed)

	players, err := store.GetRosterPlayers(context.Background(), bracket.ID)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, zoe.ID, players[0].ID)
	assert.Equal(t, ana.ID, players[1].ID)

	err = db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		entries, err := store.GetRosterTx(context.Background(), tx, bracket.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Nil(t, entries[0].PartnerID)
		require.NotNil(t, entries[1].PartnerID)
		assert.Equal(t, mia.ID, *entries[1].PartnerID)
		assert.False(t, entries[1].Paid)
		return nil
	})
	require.NoError(t, err)
}

func TestGetRosterPlayers_EmptyBracket(t *testing.T) {
	database := dbtest.New(t)
	store := NewBracketStore(database)

	tournament := seedTournament(t, database, "Club Cup")
	bracket := seedBracket(t, database, tournament.ID, "Open")

	players, err := store.GetRosterPlayers(context.Background(), bracket.ID)
	require.NoError(t, err)
	assert.NotNil(t, players)
	assert.Empty(t, players)
}

func TestDeleteRosterEntry(t *testing.T) {
	database := dbtest.New(t)
	store := NewBracketStore(database)

	tournament := seedTournament(t, database, "Club Cup")
	bracket := seedBracket(t, database, tournament.ID, "Open")
	player := seedPlayer(t, database, "Ana")
	enroll(t, database, bracket.ID, player.ID, nil)

	err := db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		return store.DeleteRosterEntry(context.Background(), tx, bracket.ID, player.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, dbtest.Count(t, database, "bracket_players"))

	err = db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		return store.DeleteRosterEntry(context.Background(), tx, bracket.ID, player.ID)
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestOnRoster(t *testing.T) {
	database := dbtest.New(t)
	store := NewBracketStore(database)

	tournament := seedTournament(t, database, "Club Cup")
	bracket := seedBracket(t, database, tournament.ID, "Doubles")
	other := seedBracket(t, database, tournament.ID, "Mixed")
	ana, pia, zoe := seedPlayer(t, database, "Ana"), seedPlayer(t, database, "Pia"), seedPlayer(t, database, "Zoe")
	enroll(t, database, bracket.ID, ana.ID, &pia.ID)

	tests := []struct {
		name      string
		bracketID uuid.UUID
		playerID  uuid.UUID
		want      bool
	}{
		{"entry player", bracket.ID, ana.ID, true},
		{"doubles partner", bracket.ID, pia.ID, true},
		{"not registered", bracket.ID, zoe.ID, false},
		{"other bracket", other.ID, ana.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
				got, err := store.OnRosterTx(context.Background(), tx, tt.bracketID, tt.playerID)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return nil
			})
			require.NoError(t, err)
		})
	}
}
