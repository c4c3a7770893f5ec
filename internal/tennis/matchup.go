package tennis

import (
	"time"

	"github.com/google/uuid"
)

type MatchupStatus string

const (
	MatchupPending    MatchupStatus = "PENDING"
	MatchupInProgress MatchupStatus = "IN_PROGRESS"
	MatchupCompleted  MatchupStatus = "COMPLETED"
)

type Format string

const (
	RoundRobin Format = "ROUND_ROBIN"
	Swiss      Format = "SWISS"
)

// Known reports whether f is a format this system recognises, implemented or not.
func (f Format) Known() bool {
	return f == RoundRobin || f == Swiss
}

type Matchup struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BracketID uuid.UUID `db:"bracket_id" json:"bracket_id"`
	Round     *int      `db:"round" json:"round"`

	// Position within the bracket, generation order for generated matchups
	MatchOrder int `db:"match_order" json:"-"`

	Player1ID        uuid.UUID  `db:"player1_id" json:"player1_id"`
	Player2ID        uuid.UUID  `db:"player2_id" json:"player2_id"`
	Player1PartnerID *uuid.UUID `db:"player1_partner_id" json:"player1_partner_id"`
	Player2PartnerID *uuid.UUID `db:"player2_partner_id" json:"player2_partner_id"`

	WinnerID *uuid.UUID    `db:"winner_id" json:"winner_id"`
	Score    *string       `db:"score" json:"score"`
	Status   MatchupStatus `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"-"`
}

// HasParticipant reports whether id plays in m on either side, partners included.
func (m *Matchup) HasParticipant(id uuid.UUID) bool {
	if m.Player1ID == id || m.Player2ID == id {
		return true
	}
	return (m.Player1PartnerID != nil && *m.Player1PartnerID == id) ||
		(m.Player2PartnerID != nil && *m.Player2PartnerID == id)
}
