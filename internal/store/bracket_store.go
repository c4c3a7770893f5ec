package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type BracketStore struct {
	db *sqlx.DB
}

const (
	getBracketQuery = "SELECT * FROM brackets WHERE id = ?"

	// Roster order is registration order
	rosterPlayersQuery = `
		SELECT p.* FROM bracket_players bp
		JOIN players p ON p.id = bp.player_id
		WHERE bp.bracket_id = ?
		ORDER BY bp.seed ASC, bp.id ASC
	`
	rosterEntriesQuery = "SELECT * FROM bracket_players WHERE bracket_id = ? ORDER BY seed ASC, id ASC"
	nextSeedQuery      = "SELECT COALESCE(MAX(seed), 0) + 1 FROM bracket_players WHERE bracket_id = ?"
	rosterMemberQuery  = `SELECT COUNT(*) FROM bracket_players
		WHERE bracket_id = ? AND (player_id = ? OR partner_id = ?)`
	createRosterEntry  = `INSERT INTO bracket_players (id, bracket_id, player_id, partner_id, seed, paid)
		VALUES (:id, :bracket_id, :player_id, :partner_id, :seed, :paid)`
	deleteRosterEntryQuery = "DELETE FROM bracket_players WHERE bracket_id = ? AND player_id = ?"
)

func NewBracketStore(db *sqlx.DB) *BracketStore {
	return &BracketStore{db: db}
}

func (s *BracketStore) ListBrackets(ctx context.Context) ([]tennis.Bracket, error) {
	brackets := []tennis.Bracket{}
	err := s.db.SelectContext(ctx, &brackets, "SELECT * FROM brackets ORDER BY created_at ASC, name ASC")
	return brackets, err
}

func (s *BracketStore) GetBracket(ctx context.Context, id uuid.UUID) (*tennis.Bracket, error) {
	var bracket tennis.Bracket
	if err := s.db.GetContext(ctx, &bracket, s.db.Rebind(getBracketQuery), id); err != nil {
		return nil, err
	}
	return &bracket, nil
}

func (s *BracketStore) GetBracketTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*tennis.Bracket, error) {
	var bracket tennis.Bracket
	if err := tx.GetContext(ctx, &bracket, tx.Rebind(getBracketQuery), id); err != nil {
		return nil, err
	}
	return &bracket, nil
}

func (s *BracketStore) CreateBracket(ctx context.Context, tx *sqlx.Tx, bracket *tennis.Bracket) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO brackets (id, tournament_id, name, status)
		VALUES (:id, :tournament_id, :name, :status)`, bracket)
	return err
}

// GetRosterPlayers returns the players linked to the bracket in roster order.
func (s *BracketStore) GetRosterPlayers(ctx context.Context, bracketID uuid.UUID) ([]tennis.Player, error) {
	players := []tennis.Player{}
	err := s.db.SelectContext(ctx, &players, s.db.Rebind(rosterPlayersQuery), bracketID)
	return players, err
}

func (s *BracketStore) GetRosterTx(ctx context.Context, tx *sqlx.Tx, bracketID uuid.UUID) ([]tennis.BracketPlayer, error) {
	var entries []tennis.BracketPlayer
	err := tx.SelectContext(ctx, &entries, tx.Rebind(rosterEntriesQuery), bracketID)
	return entries, err
}

// OnRosterTx reports whether the player is already in the bracket, either as an
// entry's player or as its doubles partner.
func (s *BracketStore) OnRosterTx(ctx context.Context, tx *sqlx.Tx, bracketID, playerID uuid.UUID) (bool, error) {
	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind(rosterMemberQuery), bracketID, playerID, playerID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *BracketStore) NextSeedTx(ctx context.Context, tx *sqlx.Tx, bracketID uuid.UUID) (int, error) {
	var seed int
	err := tx.GetContext(ctx, &seed, tx.Rebind(nextSeedQuery), bracketID)
	return seed, err
}

func (s *BracketStore) CreateRosterEntry(ctx context.Context, tx *sqlx.Tx, entry *tennis.BracketPlayer) error {
	_, err := tx.NamedExecContext(ctx, createRosterEntry, entry)
	return err
}

// DeleteRosterEntry returns sql.ErrNoRows when the player is not on the bracket roster.
func (s *BracketStore) DeleteRosterEntry(ctx context.Context, tx *sqlx.Tx, bracketID, playerID uuid.UUID) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(deleteRosterEntryQuery), bracketID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result)
}
