package domain

import "errors"

var (
	ErrInvalidMatchIndex = errors.New("invalid match index")
	ErrInvalidOutcome    = errors.New("invalid outcome")
	ErrByeMatch          = errors.New("bye matches take no result")
	ErrNoRounds          = errors.New("no round has been opened")
	ErrRoundOpen         = errors.New("previous round is still open")
	ErrRoundClosed       = errors.New("round is already closed")
	ErrAllRoundsPlayed   = errors.New("all rounds have been played")
)
