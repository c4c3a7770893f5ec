package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type MatchupStore struct {
	db *sqlx.DB
}

const (
	getMatchupQuery       = "SELECT * FROM matchups WHERE id = ?"
	nextMatchOrderQuery   = "SELECT COALESCE(MAX(match_order), 0) + 1 FROM matchups WHERE bracket_id = ?"
	deleteBracketMatchups = "DELETE FROM matchups WHERE bracket_id = ?"
	createMatchupsInsert  = `INSERT INTO matchups (id, bracket_id, round, match_order, player1_id, player2_id, player1_partner_id, player2_partner_id, winner_id, score, status)
		VALUES (:id, :bracket_id, :round, :match_order, :player1_id, :player2_id, :player1_partner_id, :player2_partner_id, :winner_id, :score, :status)`
	updateMatchupResultQuery = `UPDATE matchups SET
		winner_id = :winner_id,
		score = :score,
		status = :status
		WHERE id = :id`
)

func NewMatchupStore(db *sqlx.DB) *MatchupStore {
	return &MatchupStore{db: db}
}

// CreateMatchups inserts the matchups as one batch inside tx.
func (s *MatchupStore) CreateMatchups(ctx context.Context, tx *sqlx.Tx, matchups []tennis.Matchup) error {
	if len(matchups) == 0 {
		return nil
	}
	return insertBatch(ctx, tx, createMatchupsInsert, matchups)
}

func (s *MatchupStore) ListMatchups(ctx context.Context) ([]tennis.Matchup, error) {
	matchups := []tennis.Matchup{}
	err := s.db.SelectContext(ctx, &matchups, "SELECT * FROM matchups ORDER BY created_at ASC, bracket_id ASC, match_order ASC")
	return matchups, err
}

// ListBracketMatchups returns the bracket's matchups in match order, narrowed to the
// given statuses when any are passed.
func (s *MatchupStore) ListBracketMatchups(ctx context.Context, bracketID uuid.UUID, statuses []tennis.MatchupStatus) ([]tennis.Matchup, error) {
	// uuid.UUID is an array, so squirrel would expand it into an IN list
	q := sq.Select("*").
		From("matchups").
		Where(sq.Eq{"bracket_id": bracketID.String()}).
		OrderBy("match_order ASC")

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, status := range statuses {
			values[i] = string(status)
		}
		q = q.Where(sq.Eq{"status": values})
	}

	matchups := []tennis.Matchup{}
	err := selectBuilt(ctx, s.db, &matchups, q)
	return matchups, err
}

func (s *MatchupStore) GetMatchup(ctx context.Context, id uuid.UUID) (*tennis.Matchup, error) {
	var matchup tennis.Matchup
	if err := s.db.GetContext(ctx, &matchup, s.db.Rebind(getMatchupQuery), id); err != nil {
		return nil, err
	}
	return &matchup, nil
}

func (s *MatchupStore) GetMatchupTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*tennis.Matchup, error) {
	var matchup tennis.Matchup
	if err := tx.GetContext(ctx, &matchup, tx.Rebind(getMatchupQuery), id); err != nil {
		return nil, err
	}
	return &matchup, nil
}

func (s *MatchupStore) NextMatchOrderTx(ctx context.Context, tx *sqlx.Tx, bracketID uuid.UUID) (int, error) {
	var order int
	err := tx.GetContext(ctx, &order, tx.Rebind(nextMatchOrderQuery), bracketID)
	return order, err
}

func (s *MatchupStore) UpdateMatchupResult(ctx context.Context, tx *sqlx.Tx, matchup *tennis.Matchup) error {
	result, err := tx.NamedExecContext(ctx, updateMatchupResultQuery, matchup)
	if err != nil {
		return err
	}
	return checkAffectedRows(result)
}

func (s *MatchupStore) DeleteBracketMatchups(ctx context.Context, tx *sqlx.Tx, bracketID uuid.UUID) (int64, error) {
	result, err := tx.ExecContext(ctx, tx.Rebind(deleteBracketMatchups), bracketID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
