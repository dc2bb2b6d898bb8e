// Package pairing partitions a tournament roster into the matches of one
// round.
//
// Two interchangeable generators are provided. SwissGenerator groups players
// by score and is what tournaments use by default; RandomGenerator ignores
// scores and only guards against building the same pair twice in one call.
// Both work on a copy of the roster, so the caller's slice is never
// reordered, and both return an empty, non-nil list for an empty roster.
package pairing

import (
	"errors"
	"fmt"
	"math/rand"

	"chess-manager/internal/domain"
)

const (
	AlgorithmSwiss  = "swiss"
	AlgorithmRandom = "random"
)

var ErrPairingStalled = errors.New("pairing cannot make progress")

type Generator interface {
	Generate(roster []domain.TournamentPlayer) ([]domain.Match, error)

	Name() string
}

// New returns the generator registered under algorithm.
func New(algorithm string, rng *rand.Rand) (Generator, error) {
	switch algorithm {
	case AlgorithmSwiss:
		return NewSwissGenerator(rng), nil
	case AlgorithmRandom:
		return NewRandomGenerator(rng), nil
	}
	return nil, fmt.Errorf("unknown pairing algorithm %q", algorithm)
}

func clone(roster []domain.TournamentPlayer) []domain.TournamentPlayer {
	players := make([]domain.TournamentPlayer, len(roster))
	copy(players, roster)
	return players
}

func shuffle(rng *rand.Rand, players []domain.TournamentPlayer) {
	rng.Shuffle(len(players), func(i, j int) { players[i], players[j] = players[j], players[i] })
}
