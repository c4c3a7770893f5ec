package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type TournamentStore struct {
	db *sqlx.DB
}

const (
	getTournamentQuery            = "SELECT * FROM tournaments WHERE id = ?"
	listTournamentPlayersQuery    = "SELECT * FROM tournament_players ORDER BY created_at ASC, tournament_id ASC"
	tournamentPlayerExistsQuery   = "SELECT COUNT(*) FROM tournament_players WHERE tournament_id = ? AND player_id = ?"
	listTournamentBracketsQuery   = "SELECT * FROM brackets WHERE tournament_id = ? ORDER BY created_at ASC, name ASC"
	createTournamentPlayersInsert = `INSERT INTO tournament_players (id, tournament_id, player_id)
		VALUES (:id, :tournament_id, :player_id)`
	overviewQuery = `
		SELECT
			(SELECT COUNT(*) FROM players) AS players,
			(SELECT COUNT(*) FROM tournaments) AS tournaments,
			(SELECT COUNT(*) FROM brackets) AS brackets,
			(SELECT COUNT(*) FROM matchups) AS matchups
	`
)

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *tennis.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, format, status, current_round, start_date, end_date)
        VALUES (:id, :name, :format, :status, :current_round, :start_date, :end_date)`, tournament)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id uuid.UUID) (*tennis.Tournament, error) {
	var tournament tennis.Tournament
	if err := s.db.GetContext(ctx, &tournament, s.db.Rebind(getTournamentQuery), id); err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*tennis.Tournament, error) {
	var tournament tennis.Tournament
	if err := tx.GetContext(ctx, &tournament, tx.Rebind(getTournamentQuery), id); err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentStore) ListTournaments(ctx context.Context) ([]tennis.Tournament, error) {
	tournaments := []tennis.Tournament{}
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments ORDER BY created_at DESC, name ASC")
	return tournaments, err
}

func (s *TournamentStore) ListBrackets(ctx context.Context, tournamentID uuid.UUID) ([]tennis.Bracket, error) {
	brackets := []tennis.Bracket{}
	err := s.db.SelectContext(ctx, &brackets, s.db.Rebind(listTournamentBracketsQuery), tournamentID)
	return brackets, err
}

func (s *TournamentStore) CreateTournamentPlayers(ctx context.Context, tx *sqlx.Tx, links []tennis.TournamentPlayer) error {
	if len(links) == 0 {
		return nil
	}
	return insertBatch(ctx, tx, createTournamentPlayersInsert, links)
}

func (s *TournamentStore) TournamentPlayerExistsTx(ctx context.Context, tx *sqlx.Tx, tournamentID, playerID uuid.UUID) (bool, error) {
	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind(tournamentPlayerExistsQuery), tournamentID, playerID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *TournamentStore) ListTournamentPlayers(ctx context.Context) ([]tennis.TournamentPlayer, error) {
	links := []tennis.TournamentPlayer{}
	err := s.db.SelectContext(ctx, &links, listTournamentPlayersQuery)
	return links, err
}

func (s *TournamentStore) GetOverview(ctx context.Context) (*tennis.Overview, error) {
	var overview tennis.Overview
	if err := s.db.GetContext(ctx, &overview, overviewQuery); err != nil {
		return nil, err
	}
	return &overview, nil
}
