package pairing

import (
	"fmt"
	"math/rand"

	"chess-manager/internal/domain"
)

type RandomGenerator struct {
	rng *rand.Rand
}

func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	return &RandomGenerator{rng: rng}
}

func (g *RandomGenerator) Name() string {
	return AlgorithmRandom
}

type pairKey [2]string

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Generate shuffles the roster and pairs players two at a time. A pair whose
// members were already paired in this call is pushed back to the end of the
// queue. History from earlier rounds is not consulted. An odd player left at
// the end gets a bye.
func (g *RandomGenerator) Generate(roster []domain.TournamentPlayer) ([]domain.Match, error) {
	remaining := clone(roster)
	shuffle(g.rng, remaining)

	matches := make([]domain.Match, 0, (len(remaining)+1)/2)
	paired := make(map[pairKey]bool)
	rejected := 0

	for len(remaining) > 0 {
		first := remaining[0]
		remaining = remaining[1:]
		if len(remaining) == 0 {
			matches = append(matches, domain.NewBye(first))
			break
		}

		second := remaining[0]
		remaining = remaining[1:]

		key := newPairKey(first.ChessID, second.ChessID)
		if paired[key] {
			remaining = append(remaining, first, second)
			rejected++
			// every rotation of the queue has been tried
			if rejected > len(remaining) {
				return nil, fmt.Errorf("%w: %s and %s already paired", ErrPairingStalled, first.ChessID, second.ChessID)
			}
			continue
		}

		rejected = 0
		paired[key] = true
		matches = append(matches, domain.NewGame(first, second))
	}

	return matches, nil
}
