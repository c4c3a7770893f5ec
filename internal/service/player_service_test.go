package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unitytennis/tennis-backend/internal/db/dbtest"
	"github.com/unitytennis/tennis-backend/internal/phonecrypt"
)

func TestCreatePlayer(t *testing.T) {
	tests := []struct {
		name    string
		input   PlayerInput
		wantErr error
	}{
		{"all fields", PlayerInput{Name: "Ana", Gender: "F", PhoneNumber: "555-0101"}, nil},
		{"missing phone", PlayerInput{Name: "Ana", Gender: "F"}, ErrValidation},
		{"missing name", PlayerInput{Gender: "F", PhoneNumber: "555-0101"}, ErrValidation},
		{"blank gender", PlayerInput{Name: "Ana", Gender: "  ", PhoneNumber: "555-0101"}, ErrValidation},
		{"padded fields kept verbatim", PlayerInput{Name: " Ann ", Gender: "F ", PhoneNumber: " 555-0101"}, nil},
		{"sealed-looking phone", PlayerInput{Name: "Ana", Gender: "F", PhoneNumber: "enc:v1:abc"}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)

			player, err := env.players.CreatePlayer(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, player)
				assert.Equal(t, 0, dbtest.Count(t, env.db, "players"))
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, player.ID)
			assert.Equal(t, tt.input.Name, player.Name)
			assert.Equal(t, tt.input.Gender, player.Gender)
			assert.Equal(t, tt.input.PhoneNumber, player.PhoneNumber)

			players, err := env.players.ListPlayers(context.Background())
			require.NoError(t, err)
			require.Len(t, players, 1)
			assert.Equal(t, player.ID, players[0].ID)
			assert.Equal(t, player.Name, players[0].Name)
			assert.Equal(t, player.Gender, players[0].Gender)
			assert.Equal(t, player.PhoneNumber, players[0].PhoneNumber)
		})
	}
}

func TestPhoneNumbersEncryptedAtRest(t *testing.T) {
	cipher, err := phonecrypt.New("club secret")
	require.NoError(t, err)
	env := newTestEnv(t, cipher)
	ctx := context.Background()

	player, err := env.players.CreatePlayer(ctx, PlayerInput{Name: "Ana", Gender: "F", PhoneNumber: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", player.PhoneNumber)

	var stored string
	require.NoError(t, env.db.Get(&stored, env.db.Rebind("SELECT phone_number FROM players WHERE id = ?"), player.ID))
	assert.NotContains(t, stored, "555-0101")
	assert.True(t, strings.HasPrefix(stored, "enc:v1:"))

	players, err := env.players.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "555-0101", players[0].PhoneNumber)

	b := env.bracket(t)
	_, err = env.brackets.Register(ctx, b.ID, RegistrationInput{PlayerID: player.ID})
	require.NoError(t, err)

	roster, err := env.brackets.GetRoster(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "555-0101", roster[0].PhoneNumber)
}

func TestListPlayers_SealedLookingRowWithoutKey(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.player(t, "Ana")
	_, err := env.db.Exec(env.db.Rebind("INSERT INTO players (id, name, gender, phone_number) VALUES (?, ?, ?, ?)"),
		uuid.New(), "Bea", "F", "enc:v1:abc")
	require.NoError(t, err)

	players, err := env.players.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)

	phones := []string{players[0].PhoneNumber, players[1].PhoneNumber}
	assert.ElementsMatch(t, []string{"555-0199", "enc:v1:abc"}, phones)
}

func TestDeletePlayer(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	keep := env.player(t, "Ana")
	drop := env.player(t, "Bea")

	err := env.players.DeletePlayer(ctx, uuid.New())
	require.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Equal(t, 2, dbtest.Count(t, env.db, "players"))

	require.NoError(t, env.players.DeletePlayer(ctx, drop.ID))

	players, err := env.players.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, keep.ID, players[0].ID)
}

func TestDeletePlayer_Referenced(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	b, roster := env.bracketWithRoster(t, 2)
	_, err := env.matchups.GenerateMatchups(ctx, b.ID, "ROUND_ROBIN")
	require.NoError(t, err)

	err = env.players.DeletePlayer(ctx, roster[0])
	require.ErrorIs(t, err, ErrPlayerReferenced)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 2, dbtest.Count(t, env.db, "players"))
}
