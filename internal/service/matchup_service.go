package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/unitytennis/tennis-backend/internal/db"
	"github.com/unitytennis/tennis-backend/internal/store"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type MatchupService struct {
	db       *sqlx.DB
	store    *store.MatchupStore
	brackets *store.BracketStore
	players  *store.PlayerStore
}

func NewMatchupService(db *sqlx.DB, store *store.MatchupStore, brackets *store.BracketStore, players *store.PlayerStore) *MatchupService {
	return &MatchupService{db: db, store: store, brackets: brackets, players: players}
}

type MatchupInput struct {
	BracketID        uuid.UUID
	Round            *int
	Player1ID        uuid.UUID
	Player2ID        uuid.UUID
	Player1PartnerID *uuid.UUID
	Player2PartnerID *uuid.UUID
	WinnerID         *uuid.UUID
	Score            string
	Status           string
}

type ResultInput struct {
	WinnerID uuid.UUID
	Score    string
}

func (s *MatchupService) ListMatchups(ctx context.Context) ([]tennis.Matchup, error) {
	matchups, err := s.store.ListMatchups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matchups: %w", err)
	}
	return matchups, nil
}

// ListBracketMatchups fails with ErrNotFound when the bracket has no matchups in
// the requested statuses.
func (s *MatchupService) ListBracketMatchups(ctx context.Context, bracketID uuid.UUID, statuses []tennis.MatchupStatus) ([]tennis.Matchup, error) {
	matchups, err := s.store.ListBracketMatchups(ctx, bracketID, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list bracket matchups: %w", err)
	}
	if len(matchups) == 0 {
		return nil, fmt.Errorf("%w: no matchups found for the given bracket", ErrNotFound)
	}
	return matchups, nil
}

// Rounds groups the bracket's matchups by round. A bracket without matchups has no rounds.
func (s *MatchupService) Rounds(ctx context.Context, bracketID uuid.UUID) ([]tennis.Round, error) {
	if _, err := s.brackets.GetBracket(ctx, bracketID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to get bracket: %w", err)
	}

	matchups, err := s.store.ListBracketMatchups(ctx, bracketID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list bracket matchups: %w", err)
	}
	return tennis.GroupByRound(matchups), nil
}

func (s *MatchupService) CreateMatchup(ctx context.Context, input MatchupInput) (*tennis.Matchup, error) {
	if input.BracketID == uuid.Nil || input.Player1ID == uuid.Nil || input.Player2ID == uuid.Nil || isBlank(input.Status) {
		return nil, validationError("bracket_id, player1_id, player2_id, and status are required")
	}
	if input.Player1ID == input.Player2ID {
		return nil, validationError("player1_id and player2_id must differ")
	}
	if input.Round != nil && *input.Round < 1 {
		return nil, validationError("round must be positive")
	}

	matchup := &tennis.Matchup{
		ID:               uuid.New(),
		BracketID:        input.BracketID,
		Round:            input.Round,
		Player1ID:        input.Player1ID,
		Player2ID:        input.Player2ID,
		Player1PartnerID: input.Player1PartnerID,
		Player2PartnerID: input.Player2PartnerID,
		WinnerID:         input.WinnerID,
		Score:            optionalText(input.Score),
		Status:           tennis.MatchupStatus(input.Status),
	}
	seen := make(map[uuid.UUID]bool, 4)
	for _, id := range participantIDs(matchup) {
		if seen[id] {
			return nil, validationError("player %s appears more than once in the matchup", id)
		}
		seen[id] = true
	}
	if matchup.WinnerID != nil && !matchup.HasParticipant(*matchup.WinnerID) {
		return nil, validationError("winner_id must be one of the matchup's players")
	}

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.brackets.GetBracketTx(ctx, tx, input.BracketID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBracketNotFound
			}
			return fmt.Errorf("failed to get bracket: %w", err)
		}

		for _, id := range participantIDs(matchup) {
			if _, err := s.players.GetPlayerTx(ctx, tx, id); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
				}
				return fmt.Errorf("failed to get player: %w", err)
			}
		}

		order, err := s.store.NextMatchOrderTx(ctx, tx, input.BracketID)
		if err != nil {
			return fmt.Errorf("failed to get match order: %w", err)
		}
		matchup.MatchOrder = order

		if err := s.store.CreateMatchups(ctx, tx, []tennis.Matchup{*matchup}); err != nil {
			return fmt.Errorf("failed to create matchup: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matchup, nil
}

// GenerateMatchups creates the bracket's matchups for format from its current roster.
// Either every generated matchup is stored or none is.
func (s *MatchupService) GenerateMatchups(ctx context.Context, bracketID uuid.UUID, format string) ([]tennis.Matchup, error) {
	format = strings.TrimSpace(format)
	if bracketID == uuid.Nil || format == "" {
		return nil, validationError("bracket_id and format are required")
	}

	var matchups []tennis.Matchup
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.brackets.GetBracketTx(ctx, tx, bracketID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBracketNotFound
			}
			return fmt.Errorf("failed to get bracket: %w", err)
		}

		roster, err := s.brackets.GetRosterTx(ctx, tx, bracketID)
		if err != nil {
			return fmt.Errorf("failed to get bracket roster: %w", err)
		}
		if len(roster) == 0 {
			return ErrEmptyRoster
		}

		switch tennis.Format(format) {
		case tennis.RoundRobin:
		case tennis.Swiss:
			return fmt.Errorf("%w: SWISS format", ErrNotImplemented)
		default:
			return ErrInvalidFormat
		}

		firstOrder, err := s.store.NextMatchOrderTx(ctx, tx, bracketID)
		if err != nil {
			return fmt.Errorf("failed to get match order: %w", err)
		}

		matchups = buildRoundRobin(bracketID, roster, firstOrder)
		if err := s.store.CreateMatchups(ctx, tx, matchups); err != nil {
			return fmt.Errorf("failed to store generated matchups: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("matchups generated", "bracket_id", bracketID, "format", format, "matchups", len(matchups))
	return matchups, nil
}

// RecordResult sets the winner and score and marks the matchup COMPLETED.
func (s *MatchupService) RecordResult(ctx context.Context, matchupID uuid.UUID, input ResultInput) (*tennis.Matchup, error) {
	if input.WinnerID == uuid.Nil {
		return nil, validationError("winner_id is required")
	}

	var matchup *tennis.Matchup
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		m, err := s.store.GetMatchupTx(ctx, tx, matchupID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMatchupNotFound
			}
			return fmt.Errorf("failed to get matchup: %w", err)
		}

		if !m.HasParticipant(input.WinnerID) {
			return validationError("winner is not part of this matchup")
		}

		m.WinnerID = &input.WinnerID
		if score := optionalText(input.Score); score != nil {
			m.Score = score
		}
		m.Status = tennis.MatchupCompleted

		if err := s.store.UpdateMatchupResult(ctx, tx, m); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMatchupNotFound
			}
			return fmt.Errorf("failed to update matchup: %w", err)
		}
		matchup = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matchup, nil
}

// DeleteBracketMatchups clears every matchup of the bracket, typically before regenerating.
func (s *MatchupService) DeleteBracketMatchups(ctx context.Context, bracketID uuid.UUID) (int64, error) {
	var deleted int64
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.brackets.GetBracketTx(ctx, tx, bracketID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBracketNotFound
			}
			return fmt.Errorf("failed to get bracket: %w", err)
		}

		n, err := s.store.DeleteBracketMatchups(ctx, tx, bracketID)
		if err != nil {
			return fmt.Errorf("failed to delete matchups: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func participantIDs(m *tennis.Matchup) []uuid.UUID {
	ids := []uuid.UUID{m.Player1ID, m.Player2ID}
	if m.Player1PartnerID != nil {
		ids = append(ids, *m.Player1PartnerID)
	}
	if m.Player2PartnerID != nil {
		ids = append(ids, *m.Player2PartnerID)
	}
	return ids
}
