package service

import "errors"

var (
	ErrInvalidSelection    = errors.New("invalid selection")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientRoster  = errors.New("at least 16 players are required")
	ErrTournamentStarted   = errors.New("tournament has already started")
	ErrTournamentCompleted = errors.New("tournament is completed")
	ErrDuplicateChessID    = errors.New("chess ID already in use")
	ErrInvalidNumRounds    = errors.New("invalid number of rounds")
	ErrMissingField        = errors.New("required field is empty")
)
