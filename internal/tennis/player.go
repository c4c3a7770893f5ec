package tennis

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Gender      string    `db:"gender" json:"gender"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}

// BracketPlayer links a player (and an optional doubles partner) to a bracket roster.
// Seed is the registration position and fixes the roster order.
type BracketPlayer struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	BracketID uuid.UUID  `db:"bracket_id" json:"bracket_id"`
	PlayerID  uuid.UUID  `db:"player_id" json:"player_id"`
	PartnerID *uuid.UUID `db:"partner_id" json:"partner_id"`
	Seed      int        `db:"seed" json:"seed"`
	Paid      bool       `db:"paid" json:"paid"`
	CreatedAt time.Time  `db:"created_at" json:"-"`
}

type TournamentPlayer struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`
	PlayerID     uuid.UUID `db:"player_id" json:"player_id"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}
