package pairing

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"chess-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster(n int) []domain.TournamentPlayer {
	players := make([]domain.TournamentPlayer, n)
	for i := range players {
		players[i] = domain.TournamentPlayer{
			LastName:  fmt.Sprintf("Last%02d", i),
			FirstName: fmt.Sprintf("First%02d", i),
			BirthDate: "1985-06-15",
			ChessID:   fmt.Sprintf("CH%04d", i),
		}
	}
	return players
}

func participants(matches []domain.Match) []string {
	ids := []string{}
	for _, m := range matches {
		for _, e := range m {
			ids = append(ids, e.Player.ChessID)
		}
	}
	sort.Strings(ids)
	return ids
}

func ids(players []domain.TournamentPlayer) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.ChessID
	}
	sort.Strings(out)
	return out
}

func countByes(matches []domain.Match) int {
	n := 0
	for _, m := range matches {
		if m.IsBye() {
			n++
		}
	}
	return n
}

func TestRandomGeneratorEvenRoster(t *testing.T) {
	for _, n := range []int{2, 4, 16, 32} {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			players := roster(n)
			g := NewRandomGenerator(rand.New(rand.NewSource(int64(n))))

			matches, err := g.Generate(players)
			require.NoError(t, err)

			assert.Len(t, matches, n/2)
			assert.Zero(t, countByes(matches))
			assert.Equal(t, ids(players), participants(matches))
		})
	}
}

func TestRandomGeneratorOddRoster(t *testing.T) {
	for _, n := range []int{1, 3, 17} {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			players := roster(n)
			g := NewRandomGenerator(rand.New(rand.NewSource(int64(n))))

			matches, err := g.Generate(players)
			require.NoError(t, err)

			assert.Len(t, matches, (n-1)/2+1)
			assert.Equal(t, 1, countByes(matches))
			assert.True(t, matches[len(matches)-1].IsBye(), "the bye is the last match")
			assert.Equal(t, ids(players), participants(matches))
		})
	}
}

func TestRandomGeneratorStallsOnDuplicates(t *testing.T) {
	dup := roster(1)[0]
	players := []domain.TournamentPlayer{dup, dup, dup, dup}

	_, err := NewRandomGenerator(rand.New(rand.NewSource(1))).Generate(players)
	assert.ErrorIs(t, err, ErrPairingStalled)
}

func TestSwissGeneratorKeepsMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for n := 0; n <= 21; n++ {
		players := roster(n)
		for i := range players {
			players[i].Score = float64(rng.Intn(4)) / 2
		}

		matches, err := NewSwissGenerator(rng).Generate(players)
		require.NoError(t, err)
		assert.Equal(t, ids(players), participants(matches), "roster of %d", n)
	}
}

func TestSwissGeneratorPairsEqualScoresOnly(t *testing.T) {
	players := roster(16)
	scores := []float64{3, 3, 3, 2.5, 2.5, 2, 2, 2, 2, 1, 1, 1, 0.5, 0, 0, 0}
	for i := range players {
		players[i].Score = scores[i]
	}

	matches, err := NewSwissGenerator(rand.New(rand.NewSource(5))).Generate(players)
	require.NoError(t, err)

	for _, m := range matches {
		if m.IsBye() {
			continue
		}
		assert.Equal(t, m[0].Player.Score, m[1].Player.Score)
	}

	// odd groups (3, 1, 0.5, 0) each bye one player
	assert.Equal(t, 4, countByes(matches))

	var order []float64
	for _, m := range matches {
		order = append(order, m[0].Player.Score)
	}
	assert.True(t, sort.SliceIsSorted(order, func(i, j int) bool { return order[i] > order[j] }),
		"groups are emitted from the highest score down: %v", order)
}

func TestSwissGeneratorByeIsLastOfGroup(t *testing.T) {
	players := roster(3)
	players[0].Score = 1
	players[1].Score = 1
	players[2].Score = 1

	matches, err := NewSwissGenerator(rand.New(rand.NewSource(3))).Generate(players)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.True(t, matches[0].IsBye())
	assert.Equal(t, "CH0002", matches[0][0].Player.ChessID)
}

func TestGeneratorsDoNotMutateRoster(t *testing.T) {
	players := roster(10)
	for i := range players {
		players[i].Score = float64(i % 3)
	}
	snapshot := make([]domain.TournamentPlayer, len(players))
	copy(snapshot, players)

	for _, g := range []Generator{
		NewSwissGenerator(rand.New(rand.NewSource(1))),
		NewRandomGenerator(rand.New(rand.NewSource(1))),
	} {
		matches, err := g.Generate(players)
		require.NoError(t, err)
		require.NotEmpty(t, matches)

		matches[0][0].Player.Score += 10
		assert.Equal(t, snapshot, players, g.Name())
	}
}

func TestGeneratorsEmptyRoster(t *testing.T) {
	for _, g := range []Generator{
		NewSwissGenerator(rand.New(rand.NewSource(1))),
		NewRandomGenerator(rand.New(rand.NewSource(1))),
	} {
		matches, err := g.Generate(nil)
		require.NoError(t, err)
		assert.NotNil(t, matches, g.Name())
		assert.Empty(t, matches, g.Name())
	}
}

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	g, err := New(AlgorithmSwiss, rng)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmSwiss, g.Name())

	g, err = New(AlgorithmRandom, rng)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmRandom, g.Name())

	_, err = New("dutch", rng)
	assert.Error(t, err)
}
