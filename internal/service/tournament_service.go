package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/unitytennis/tennis-backend/internal/db"
	"github.com/unitytennis/tennis-backend/internal/store"
	"github.com/unitytennis/tennis-backend/internal/tennis"
	"github.com/unitytennis/tennis-backend/internal/utils"
)

type TournamentService struct {
	db      *sqlx.DB
	store   *store.TournamentStore
	players *store.PlayerStore
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, players *store.PlayerStore) *TournamentService {
	return &TournamentService{db: db, store: store, players: players}
}

type TournamentInput struct {
	Name      string
	Format    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]tennis.Tournament, error) {
	tournaments, err := s.store.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *TournamentService) CreateTournament(ctx context.Context, input TournamentInput) (*tennis.Tournament, error) {
	if isBlank(input.Name) {
		return nil, validationError("name is required")
	}

	format := utils.StringOrNil(input.Format)
	if format != nil && !tennis.Format(*format).Known() {
		return nil, ErrInvalidFormat
	}

	status := tennis.TournamentStatus(strings.TrimSpace(input.Status))
	switch status {
	case "":
		status = tennis.TournamentPlanning
	case tennis.TournamentPlanning, tennis.TournamentInProgress, tennis.TournamentCompleted:
	default:
		return nil, validationError("unknown tournament status %q", input.Status)
	}

	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, validationError("end_date must not be before start_date")
	}

	tournament := &tennis.Tournament{
		ID:           uuid.New(),
		Name:         input.Name,
		Format:       format,
		Status:       status,
		CurrentRound: 1,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
	}

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return s.store.CreateTournament(ctx, tx, tournament)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *TournamentService) ListBrackets(ctx context.Context, tournamentID uuid.UUID) ([]tennis.Bracket, error) {
	if _, err := s.store.GetTournament(ctx, tournamentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	brackets, err := s.store.ListBrackets(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list brackets: %w", err)
	}
	return brackets, nil
}

func (s *TournamentService) ListTournamentPlayers(ctx context.Context) ([]tennis.TournamentPlayer, error) {
	links, err := s.store.ListTournamentPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament players: %w", err)
	}
	return links, nil
}

// AddPlayers links every player to the tournament, or none of them.
func (s *TournamentService) AddPlayers(ctx context.Context, tournamentID uuid.UUID, playerIDs []uuid.UUID) ([]tennis.TournamentPlayer, error) {
	if len(playerIDs) == 0 {
		return nil, validationError("player_ids must not be empty")
	}

	seen := make(map[uuid.UUID]bool, len(playerIDs))
	links := make([]tennis.TournamentPlayer, 0, len(playerIDs))
	for _, id := range playerIDs {
		if seen[id] {
			return nil, validationError("player %s is listed more than once", id)
		}
		seen[id] = true
		links = append(links, tennis.TournamentPlayer{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			PlayerID:     id,
		})
	}

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.store.GetTournamentTx(ctx, tx, tournamentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to get tournament: %w", err)
		}

		for _, link := range links {
			if _, err := s.players.GetPlayerTx(ctx, tx, link.PlayerID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("%w: %s", ErrPlayerNotFound, link.PlayerID)
				}
				return fmt.Errorf("failed to get player: %w", err)
			}

			exists, err := s.store.TournamentPlayerExistsTx(ctx, tx, tournamentID, link.PlayerID)
			if err != nil {
				return fmt.Errorf("failed to check registration: %w", err)
			}
			if exists {
				return fmt.Errorf("%w: %s", ErrAlreadyRegistered, link.PlayerID)
			}
		}

		if err := s.store.CreateTournamentPlayers(ctx, tx, links); err != nil {
			return fmt.Errorf("failed to add tournament players: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *TournamentService) Overview(ctx context.Context) (*tennis.Overview, error) {
	overview, err := s.store.GetOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get overview: %w", err)
	}
	return overview, nil
}
