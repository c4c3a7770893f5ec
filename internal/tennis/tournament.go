package tennis

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentPlanning   TournamentStatus = "PLANNING"
	TournamentInProgress TournamentStatus = "IN_PROGRESS"
	TournamentCompleted  TournamentStatus = "COMPLETED"
)

type Tournament struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	Name         string           `db:"name" json:"name"`
	Format       *string          `db:"format" json:"format"`
	Status       TournamentStatus `db:"status" json:"status"`
	CurrentRound int              `db:"current_round" json:"current_round"`
	StartDate    *time.Time       `db:"start_date" json:"start_date"`
	EndDate      *time.Time       `db:"end_date" json:"end_date"`
	CreatedAt    time.Time        `db:"created_at" json:"-"`
}

type BracketStatus string

const (
	BracketPending    BracketStatus = "PENDING"
	BracketInProgress BracketStatus = "IN_PROGRESS"
)

type Bracket struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	TournamentID uuid.UUID     `db:"tournament_id" json:"tournament_id"`
	Name         string        `db:"name" json:"name"`
	Status       BracketStatus `db:"status" json:"-"`
	CreatedAt    time.Time     `db:"created_at" json:"-"`
}

// Overview holds row totals for the landing page.
type Overview struct {
	Players     int `db:"players"`
	Tournaments int `db:"tournaments"`
	Brackets    int `db:"brackets"`
	Matchups    int `db:"matchups"`
}
