package pairing

import (
	"math/rand"
	"sort"

	"chess-manager/internal/domain"
)

type SwissGenerator struct {
	rng *rand.Rand
}

func NewSwissGenerator(rng *rand.Rand) *SwissGenerator {
	return &SwissGenerator{rng: rng}
}

func (g *SwissGenerator) Name() string {
	return AlgorithmSwiss
}

// Generate pairs players inside score groups, highest group first.
//
// An odd group byes its last player on the spot instead of carrying them
// down into the next group, so players of different scores never meet.
// The remaining players of the group are shuffled and paired in order.
func (g *SwissGenerator) Generate(roster []domain.TournamentPlayer) ([]domain.Match, error) {
	players := clone(roster)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	var scores []float64
	groups := make(map[float64][]domain.TournamentPlayer)
	for _, p := range players {
		if _, ok := groups[p.Score]; !ok {
			scores = append(scores, p.Score)
		}
		groups[p.Score] = append(groups[p.Score], p)
	}

	matches := make([]domain.Match, 0, (len(players)+1)/2)
	for _, score := range scores {
		group := groups[score]
		if len(group)%2 == 1 {
			matches = append(matches, domain.NewBye(group[len(group)-1]))
			group = group[:len(group)-1]
		}

		shuffle(g.rng, group)
		for i := 0; i+1 < len(group); i += 2 {
			matches = append(matches, domain.NewGame(group[i], group[i+1]))
		}
	}

	return matches, nil
}
