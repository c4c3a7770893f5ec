package service

import (
	"errors"
	"fmt"
)

// Handlers map these with errors.Is, so entity errors wrap the general kind.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrNotImplemented = errors.New("not implemented")

	ErrInvalidFormat = fmt.Errorf("%w: invalid format", ErrValidation)

	ErrPlayerNotFound     = fmt.Errorf("player %w", ErrNotFound)
	ErrTournamentNotFound = fmt.Errorf("tournament %w", ErrNotFound)
	ErrBracketNotFound    = fmt.Errorf("bracket %w", ErrNotFound)
	ErrMatchupNotFound    = fmt.Errorf("matchup %w", ErrNotFound)
	ErrEmptyRoster        = fmt.Errorf("%w: no players in the bracket", ErrNotFound)

	ErrPlayerReferenced  = fmt.Errorf("%w: player is still referenced by a roster or matchup", ErrConflict)
	ErrAlreadyRegistered = fmt.Errorf("%w: player is already registered", ErrConflict)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

