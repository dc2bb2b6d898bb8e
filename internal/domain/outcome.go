package domain

import (
	"fmt"
	"strings"

	"chess-manager/internal/constants"
)

// Outcome is a result from the point of view of a match's first participant.
type Outcome int

const (
	OutcomeWin Outcome = iota + 1
	OutcomeDraw
	OutcomeLoss
)

func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "w", "win":
		return OutcomeWin, nil
	case "2", "d", "draw":
		return OutcomeDraw, nil
	case "3", "l", "loss":
		return OutcomeLoss, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
}

// Deltas returns the points earned by the first and second participant.
func (o Outcome) Deltas() (first, second float64) {
	switch o {
	case OutcomeWin:
		return constants.WinPoints, 0
	case OutcomeDraw:
		return constants.DrawPoints, constants.DrawPoints
	case OutcomeLoss:
		return 0, constants.WinPoints
	}
	return 0, 0
}

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	case OutcomeLoss:
		return "loss"
	}
	return "unknown"
}
