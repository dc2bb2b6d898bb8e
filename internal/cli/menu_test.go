package cli

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"chess-manager/internal/domain"
	"chess-manager/internal/events"
	"chess-manager/internal/pairing"
	"chess-manager/internal/repository"
	"chess-manager/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	players     *service.PlayerService
	tournaments *service.TournamentService
	out         bytes.Buffer
}

func newSession(t *testing.T, registry int) *session {
	t.Helper()

	store := repository.NewJSONStore(t.TempDir(), zerolog.Nop())
	state, err := service.NewState(store, zerolog.Nop())
	require.NoError(t, err)

	s := &session{}
	s.players = service.NewPlayerService(state, zerolog.Nop())
	generator := pairing.NewSwissGenerator(rand.New(rand.NewSource(42)))
	s.tournaments = service.NewTournamentService(state, s.players, generator, events.Nop{}, zerolog.Nop())

	for i := 0; i < registry; i++ {
		_, err := s.players.Create(context.Background(), domain.Player{
			LastName:  fmt.Sprintf("Last%02d", i),
			FirstName: fmt.Sprintf("First%02d", i),
			BirthDate: "1990-01-01",
			ChessID:   fmt.Sprintf("AB%05d", i),
		})
		require.NoError(t, err)
	}
	return s
}

func (s *session) run(t *testing.T, lines ...string) string {
	t.Helper()
	s.out.Reset()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	menu := NewMenu(in, &s.out, s.players, s.tournaments, zerolog.Nop())
	require.NoError(t, menu.Run(context.Background()))
	return s.out.String()
}

func idLine(from, to int) string {
	var ids []string
	for i := from; i < to; i++ {
		ids = append(ids, fmt.Sprintf("AB%05d", i))
	}
	return strings.Join(ids, ", ")
}

func createTournament(name string) []string {
	return []string{"1", name, "Lyon", "2024-03-01", "2024-03-03", ""}
}

func registerAll() []string {
	return []string{"6", "1", idLine(0, 8), idLine(8, 16), "done"}
}

// winAll answers every match of a round with a win for the first player.
func winAll(matches int) []string {
	var lines []string
	for i := 1; i <= matches; i++ {
		lines = append(lines, fmt.Sprint(i), "1")
	}
	return append(lines, "done")
}

func TestMenuExit(t *testing.T) {
	s := newSession(t, 0)
	out := s.run(t, "11")
	assert.Contains(t, out, "1. Create tournament")
	assert.Contains(t, out, "11. Exit")
	assert.Contains(t, out, "Goodbye.")
}

func TestMenuEndOfInputExits(t *testing.T) {
	s := newSession(t, 0)
	menu := NewMenu(strings.NewReader(""), &s.out, s.players, s.tournaments, zerolog.Nop())
	assert.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, s.out.String(), "Goodbye.")
}

func TestMenuEndOfInputMidOperation(t *testing.T) {
	s := newSession(t, 0)
	menu := NewMenu(strings.NewReader("3\nDoe\n"), &s.out, s.players, s.tournaments, zerolog.Nop())
	assert.NoError(t, menu.Run(context.Background()))
	assert.Empty(t, s.players.List())
}

func TestMenuCancelledContext(t *testing.T) {
	s := newSession(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	menu := NewMenu(strings.NewReader("11\n"), &s.out, s.players, s.tournaments, zerolog.Nop())
	assert.ErrorIs(t, menu.Run(ctx), context.Canceled)
}

func TestMenuInvalidChoice(t *testing.T) {
	s := newSession(t, 0)
	out := s.run(t, "abc", "42", "11")
	assert.Equal(t, 2, strings.Count(out, "Error: invalid selection"))
	assert.Contains(t, out, "Goodbye.")
}

func TestCreateAndListPlayers(t *testing.T) {
	s := newSession(t, 0)
	out := s.run(t,
		"3", "Tal", "Mikhail", "1936-11-09", "LV001",
		"3", "Anand", "Viswanathan", "1969-12-11", "IN001",
		"3", "Clone", "Of", "1970-01-01", "IN001",
		"4", "11")

	assert.Contains(t, out, "Error: chess ID already in use")
	assert.Contains(t, out, "List of players:\n1. Anand, Viswanathan (IN001)\n2. Tal, Mikhail (LV001)\n")
}

func TestListPlayersEmpty(t *testing.T) {
	s := newSession(t, 0)
	assert.Contains(t, s.run(t, "4", "11"), "No players found.")
}

func TestModifyPlayerBlankKeepsValues(t *testing.T) {
	s := newSession(t, 2)
	s.run(t, "5", "2", "", "Janet", "", "", "11")

	p, err := s.players.Find("AB00001")
	require.NoError(t, err)
	assert.Equal(t, "Last01", p.LastName)
	assert.Equal(t, "Janet", p.FirstName)
	assert.Equal(t, "1990-01-01", p.BirthDate)
}

func TestModifyPlayerInvalidIndex(t *testing.T) {
	s := newSession(t, 2)
	out := s.run(t, "5", "7", "5", "two", "11")
	assert.Equal(t, 2, strings.Count(out, "Error: invalid selection"))
	assert.NotContains(t, out, "Modifying player")
}

func TestCreateTournamentNonNumericRounds(t *testing.T) {
	s := newSession(t, 0)
	out := s.run(t, "1", "Open", "Lyon", "2024-03-01", "2024-03-02", "four", "11")
	assert.Contains(t, out, "Error: invalid selection")
	assert.Empty(t, s.tournaments.List())
}

func TestModifyTournament(t *testing.T) {
	s := newSession(t, 0)
	lines := append(createTournament("Open"), "2", "1", "", "Paris", "", "", "6", "11")
	s.run(t, lines...)

	tour, err := s.tournaments.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Open", tour.Name)
	assert.Equal(t, "Paris", tour.Location)
	assert.Equal(t, 6, tour.NumRounds)
}

func TestModifyTournamentWithoutTournaments(t *testing.T) {
	s := newSession(t, 0)
	assert.Contains(t, s.run(t, "2", "11"), "No tournaments found.")
}

func TestRegisterReportsUnknownAndShortRoster(t *testing.T) {
	s := newSession(t, 16)
	lines := append(createTournament("Open"), "6", "1", idLine(0, 10), "AB00003, NOPE", "done", "11")
	out := s.run(t, lines...)

	assert.Contains(t, out, "Player with ID NOPE not found.")
	assert.Contains(t, out, "Player with ID AB00003 is already selected.")
	assert.Contains(t, out, "Error: at least 16 players are required")

	tour, err := s.tournaments.Get(0)
	require.NoError(t, err)
	assert.Empty(t, tour.Players)
}

func TestFullTournamentSession(t *testing.T) {
	s := newSession(t, 16)

	lines := createTournament("Spring Open")
	lines = append(lines, registerAll()...)
	lines = append(lines, "7", "1")
	// bad match numbers and outcomes are asked again
	lines = append(lines, "x", "9", "1", "z", "1")
	lines = append(lines, winAll(8)[2:]...)
	for r := 2; r <= 4; r++ {
		lines = append(lines, winAll(8)...)
	}
	lines = append(lines, "10", "1", "11")

	out := s.run(t, lines...)

	assert.Contains(t, out, "16 players registered.")
	assert.Contains(t, out, `Invalid match number "x".`)
	assert.Contains(t, out, "Error: invalid match index")
	assert.Contains(t, out, "Error: invalid outcome")
	for r := 1; r <= 4; r++ {
		assert.Contains(t, out, fmt.Sprintf("\nRound %d\nStart: ", r))
	}
	assert.Contains(t, out, "Tournament finished.")
	assert.Contains(t, out, "with 4 points")
	assert.Contains(t, out, "Standings:\n1. ")

	tour, err := s.tournaments.Get(0)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, tour.Status())
	winner, ok := tour.Winner()
	require.True(t, ok)
	assert.Equal(t, 4.0, winner.Score)

	out = s.run(t, "7", "1", "11")
	assert.Contains(t, out, "Error: tournament is completed")
}

func TestLaunchResumesOpenRound(t *testing.T) {
	s := newSession(t, 16)
	lines := append(createTournament("Open"), registerAll()...)
	s.run(t, append(lines, "11")...)

	_, err := s.tournaments.OpenRound(context.Background(), 0)
	require.NoError(t, err)

	// play only the resumed round, then stop at end of input
	out := s.run(t, append([]string{"7", "1"}, winAll(8)...)...)
	assert.Contains(t, out, "Resuming Round 1")

	tour, err := s.tournaments.Get(0)
	require.NoError(t, err)
	require.Len(t, tour.Rounds, 2)
	assert.True(t, tour.Rounds[0].Closed())
	assert.False(t, tour.Rounds[1].Closed())
}

func TestLaunchRequiresRoster(t *testing.T) {
	s := newSession(t, 0)
	lines := append(createTournament("Open"), "7", "1", "11")
	assert.Contains(t, s.run(t, lines...), "Error: at least 16 players are required")
}

func TestOngoingMatchesAndResultEntry(t *testing.T) {
	s := newSession(t, 16)
	lines := append(createTournament("Open"), registerAll()...)
	lines = append(lines, "8", "1", "11")
	out := s.run(t, lines...)
	assert.Contains(t, out, "No ongoing matches found.")

	_, err := s.tournaments.OpenRound(context.Background(), 0)
	require.NoError(t, err)

	out = s.run(t, "8", "1", "9", "1", "1", "2", "done", "y", "11")
	assert.Contains(t, out, "Current round: Round 1 (open)")
	assert.Contains(t, out, "Match 1: ")
	assert.Contains(t, out, "Round 1 closed at")

	tour, err := s.tournaments.Get(0)
	require.NoError(t, err)
	assert.True(t, tour.Rounds[0].Closed())
	assert.Equal(t, 0.5, tour.Rounds[0].Matches[0][0].Score)
	assert.Equal(t, 0.5, tour.Rounds[0].Matches[0][1].Score)
}

func TestEnterResultsWithoutRounds(t *testing.T) {
	s := newSession(t, 0)
	lines := append(createTournament("Open"), "9", "1", "11")
	assert.Contains(t, s.run(t, lines...), "Error: no round has been opened")
}

func TestSummaryWithoutRounds(t *testing.T) {
	s := newSession(t, 0)
	lines := append(createTournament("Open"), "10", "1", "11")
	assert.Contains(t, s.run(t, lines...), "No rounds played yet.")
}
