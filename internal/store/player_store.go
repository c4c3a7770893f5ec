package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type PlayerStore struct {
	db *sqlx.DB
}

const (
	listPlayersQuery  = "SELECT * FROM players ORDER BY created_at ASC, name ASC"
	getPlayerQuery    = "SELECT * FROM players WHERE id = ?"
	createPlayerQuery = `
		INSERT INTO players (id, name, gender, phone_number) VALUES
		(:id, :name, :gender, :phone_number)
	`
	deletePlayerQuery = "DELETE FROM players WHERE id = ?"

	// Every column that can point at a player
	playerReferencesQuery = `
		SELECT
			(SELECT COUNT(*) FROM matchups
				WHERE player1_id = ? OR player2_id = ?
				OR player1_partner_id = ? OR player2_partner_id = ?
				OR winner_id = ?)
			+ (SELECT COUNT(*) FROM bracket_players WHERE player_id = ? OR partner_id = ?)
			+ (SELECT COUNT(*) FROM tournament_players WHERE player_id = ?)
	`
)

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) ListPlayers(ctx context.Context) ([]tennis.Player, error) {
	players := []tennis.Player{}
	err := s.db.SelectContext(ctx, &players, listPlayersQuery)
	return players, err
}

func (s *PlayerStore) GetPlayer(ctx context.Context, id uuid.UUID) (*tennis.Player, error) {
	var player tennis.Player
	if err := s.db.GetContext(ctx, &player, s.db.Rebind(getPlayerQuery), id); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *PlayerStore) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*tennis.Player, error) {
	var player tennis.Player
	if err := tx.GetContext(ctx, &player, tx.Rebind(getPlayerQuery), id); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, tx *sqlx.Tx, player *tennis.Player) error {
	_, err := tx.NamedExecContext(ctx, createPlayerQuery, player)
	return err
}

// DeletePlayer returns sql.ErrNoRows when no player has the id.
func (s *PlayerStore) DeletePlayer(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(deletePlayerQuery), id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result)
}

// CountReferencesTx counts matchup slots and roster links that point at the player.
func (s *PlayerStore) CountReferencesTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (int, error) {
	var n int
	err := tx.GetContext(ctx, &n, tx.Rebind(playerReferencesQuery), id, id, id, id, id, id, id, id)
	return n, err
}
