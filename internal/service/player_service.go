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

type PlayerService struct {
	db     *sqlx.DB
	store  *store.PlayerStore
	cipher *phonecrypt.Cipher
}

// A nil cipher stores phone numbers as given.
func NewPlayerService(db *sqlx.DB, store *store.PlayerStore, cipher *phonecrypt.Cipher) *PlayerService {
	return &PlayerService{db: db, store: store, cipher: cipher}
}

type PlayerInput struct {
	Name        string
	Gender      string
	PhoneNumber string
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]tennis.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if err := revealPhones(s.cipher, players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input PlayerInput) (*tennis.Player, error) {
	if isBlank(input.Name) || isBlank(input.Gender) || isBlank(input.PhoneNumber) {
		return nil, validationError("name, gender, and phone_number are required")
	}
	// Stored values are returned verbatim, so a sealed-looking number would be
	// misread as ciphertext once a key is configured.
	if phonecrypt.IsSealed(input.PhoneNumber) {
		return nil, validationError("phone_number is not a valid phone number")
	}
	phone := input.PhoneNumber

	sealed, err := s.cipher.Seal(phone)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone number: %w", err)
	}

	player := &tennis.Player{
		ID:          uuid.New(),
		Name:        input.Name,
		Gender:      input.Gender,
		PhoneNumber: sealed,
	}

	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return s.store.CreatePlayer(ctx, tx, player)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	player.PhoneNumber = phone
	return player, nil
}

// DeletePlayer refuses to remove a player that any roster or matchup still points at.
func (s *PlayerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.store.GetPlayerTx(ctx, tx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("failed to get player: %w", err)
		}

		refs, err := s.store.CountReferencesTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to check player references: %w", err)
		}
		if refs > 0 {
			return ErrPlayerReferenced
		}

		if err := s.store.DeletePlayer(ctx, tx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("failed to delete player: %w", err)
		}
		return nil
	})
}

func revealPhones(cipher *phonecrypt.Cipher, players []tennis.Player) error {
	for i := range players {
		phone, err := cipher.Open(players[i].PhoneNumber)
		if err != nil {
			return fmt.Errorf("failed to decrypt phone number of player %s: %w", players[i].ID, err)
		}
		players[i].PhoneNumber = phone
	}
	return nil
}
