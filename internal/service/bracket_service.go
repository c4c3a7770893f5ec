package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/unitytennis/tennis-backend/internal/db"
	"github.com/unitytennis/tennis-backend/internal/phonecrypt"
	"github.com/unitytennis/tennis-backend/internal/store"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type BracketService struct {
	db          *sqlx.DB
	store       *store.BracketStore
	tournaments *store.TournamentStore
	players     *store.PlayerStore
	cipher      *phonecrypt.Cipher
}

func NewBracketService(db *sqlx.DB, store *store.BracketStore, tournaments *store.TournamentStore, players *store.PlayerStore, cipher *phonecrypt.Cipher) *BracketService {
	return &BracketService{db: db, store: store, tournaments: tournaments, players: players, cipher: cipher}
}

type BracketInput struct {
	TournamentID uuid.UUID
	Name         string
}

type RegistrationInput struct {
	PlayerID  uuid.UUID
	PartnerID *uuid.UUID
	Paid      bool
}

func (s *BracketService) ListBrackets(ctx context.Context) ([]tennis.Bracket, error) {
	brackets, err := s.store.ListBrackets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brackets: %w", err)
	}
	return brackets, nil
}

func (s *BracketService) CreateBracket(ctx context.Context, input BracketInput) (*tennis.Bracket, error) {
	if input.TournamentID == uuid.Nil || isBlank(input.Name) {
		return nil, validationError("tournament_id and name are required")
	}

	bracket := &tennis.Bracket{
		ID:           uuid.New(),
		TournamentID: input.TournamentID,
		Name:         input.Name,
		Status:       tennis.BracketPending,
	}

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.tournaments.GetTournamentTx(ctx, tx, input.TournamentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to get tournament: %w", err)
		}
		if err := s.store.CreateBracket(ctx, tx, bracket); err != nil {
			return fmt.Errorf("failed to create bracket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bracket, nil
}

// GetRoster returns the bracket's players in registration order.
func (s *BracketService) GetRoster(ctx context.Context, bracketID uuid.UUID) ([]tennis.Player, error) {
	if _, err := s.store.GetBracket(ctx, bracketID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to get bracket: %w", err)
	}

	players, err := s.store.GetRosterPlayers(ctx, bracketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bracket roster: %w", err)
	}
	if err := revealPhones(s.cipher, players); err != nil {
		return nil, err
	}
	return players, nil
}

// Register appends a player, with an optional doubles partner, to the end of the roster.
func (s *BracketService) Register(ctx context.Context, bracketID uuid.UUID, input RegistrationInput) (*tennis.BracketPlayer, error) {
	if input.PlayerID == uuid.Nil {
		return nil, validationError("player_id is required")
	}
	if input.PartnerID != nil && *input.PartnerID == input.PlayerID {
		return nil, validationError("partner_id must differ from player_id")
	}

	var entry *tennis.BracketPlayer
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.store.GetBracketTx(ctx, tx, bracketID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBracketNotFound
			}
			return fmt.Errorf("failed to get bracket: %w", err)
		}

		ids := []uuid.UUID{input.PlayerID}
		if input.PartnerID != nil {
			ids = append(ids, *input.PartnerID)
		}
		for _, id := range ids {
			if _, err := s.players.GetPlayerTx(ctx, tx, id); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
				}
				return fmt.Errorf("failed to get player: %w", err)
			}
		}

		for _, id := range ids {
			onRoster, err := s.store.OnRosterTx(ctx, tx, bracketID, id)
			if err != nil {
				return fmt.Errorf("failed to check roster: %w", err)
			}
			if onRoster {
				return fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
			}
		}

		seed, err := s.store.NextSeedTx(ctx, tx, bracketID)
		if err != nil {
			return fmt.Errorf("failed to get next seed: %w", err)
		}

		entry = &tennis.BracketPlayer{
			ID:        uuid.New(),
			BracketID: bracketID,
			PlayerID:  input.PlayerID,
			PartnerID: input.PartnerID,
			Seed:      seed,
			Paid:      input.Paid,
		}
		if err := s.store.CreateRosterEntry(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to register player: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Unregister drops the player from the roster. Existing matchups are left as they are.
func (s *BracketService) Unregister(ctx context.Context, bracketID, playerID uuid.UUID) error {
	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.store.DeleteRosterEntry(ctx, tx, bracketID, playerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: player is not registered in this bracket", ErrNotFound)
			}
			return fmt.Errorf("failed to unregister player: %w", err)
		}
		return nil
	})
}
