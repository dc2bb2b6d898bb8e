package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chess-manager/internal/constants"
	"chess-manager/internal/database"
	"chess-manager/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlayers(n int) []domain.Player {
	players := make([]domain.Player, n)
	for i := range players {
		players[i] = domain.Player{
			LastName:  fmt.Sprintf("Last%02d", i),
			FirstName: fmt.Sprintf("First%02d", i),
			BirthDate: "1990-01-01",
			ChessID:   fmt.Sprintf("AB%05d", i),
		}
	}
	return players
}

// sampleTournament has two rounds: the first closed with every result in,
// the second still open with one bye.
func sampleTournament(t *testing.T) domain.Tournament {
	t.Helper()

	tour := domain.NewTournament("Spring Open", "Lyon", "2024-03-01", "2024-03-03", 4)
	for _, p := range samplePlayers(16) {
		tour.Players = append(tour.Players, domain.NewTournamentPlayer(p))
	}

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	matches := make([]domain.Match, 0, 8)
	for i := 0; i < 16; i += 2 {
		matches = append(matches, domain.NewGame(tour.Players[i], tour.Players[i+1]))
	}
	_, err := tour.OpenRound(matches, start)
	require.NoError(t, err)
	for i := range matches {
		_, err := tour.RecordResult(i, domain.Outcome(i%3)+domain.OutcomeWin)
		require.NoError(t, err)
	}
	_, err = tour.CloseRound(start.Add(3 * time.Hour))
	require.NoError(t, err)

	second := []domain.Match{
		domain.NewGame(tour.Players[0], tour.Players[2]),
		domain.NewBye(tour.Players[4]),
	}
	_, err = tour.OpenRound(second, start.Add(24*time.Hour))
	require.NoError(t, err)

	return tour
}

func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	players, err := store.LoadPlayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)
	assert.NotNil(t, players)

	tournaments, err := store.LoadTournaments(ctx)
	require.NoError(t, err)
	assert.Empty(t, tournaments)
	assert.NotNil(t, tournaments)

	wantPlayers := samplePlayers(16)
	require.NoError(t, store.SavePlayers(ctx, wantPlayers))

	created := domain.NewTournament("Autumn Cup", "Nantes", "2024-10-01", "2024-10-02", 5)
	wantTournaments := []domain.Tournament{sampleTournament(t), created}
	require.NoError(t, store.SaveTournaments(ctx, wantTournaments))

	players, err = store.LoadPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantPlayers, players)

	tournaments, err = store.LoadTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 2)
	assert.Equal(t, wantTournaments[1], tournaments[1])

	got, want := tournaments[0], wantTournaments[0]
	assert.Equal(t, want.Players, got.Players)
	assert.Equal(t, want.CurrentRound, got.CurrentRound)
	require.Len(t, got.Rounds, 2)
	for i := range want.Rounds {
		assert.Equal(t, want.Rounds[i].Name, got.Rounds[i].Name)
		assert.True(t, want.Rounds[i].StartDatetime.Equal(got.Rounds[i].StartDatetime))
		assert.Equal(t, want.Rounds[i].Closed(), got.Rounds[i].Closed())
		assert.Equal(t, want.Rounds[i].Matches, got.Rounds[i].Matches)
	}
	assert.True(t, want.Rounds[0].EndDatetime.Equal(*got.Rounds[0].EndDatetime))
	assert.Equal(t, domain.StatusInProgress, got.Status())

	// saving a shorter list replaces the stored one
	require.NoError(t, store.SaveTournaments(ctx, wantTournaments[1:]))
	tournaments, err = store.LoadTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 1)
	assert.Equal(t, "Autumn Cup", tournaments[0].Name)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	exerciseStore(t, NewJSONStore(t.TempDir(), zerolog.Nop()))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "chess.db"), zerolog.Nop())
	require.NoError(t, err)

	store := NewSQLiteStore(db, zerolog.Nop())
	defer store.Close()

	exerciseStore(t, store)
}

func TestJSONStoreFormatting(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir, zerolog.Nop())

	require.NoError(t, store.SavePlayers(context.Background(), samplePlayers(1)))
	require.NoError(t, store.SaveTournaments(context.Background(), []domain.Tournament{
		{Name: "Bare", NumRounds: 4, CurrentRound: 1},
	}))

	data, err := os.ReadFile(filepath.Join(dir, constants.PlayersFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n    {\n        \"last_name\": \"Last00\""), string(data))

	data, err = os.ReadFile(filepath.Join(dir, constants.TournamentsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rounds": []`)
	assert.Contains(t, string(data), `"players": []`)
	assert.NotContains(t, string(data), "status")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files must not be left behind")
}

func TestJSONStoreRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	content := `[{"last_name": "Doe", "first_name": "Jane", "birth_date": "1990-01-01", "chess_id": "AB12345", "elo": 2100}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.PlayersFile), []byte(content), 0o644))

	_, err := NewJSONStore(dir, zerolog.Nop()).LoadPlayers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elo")
}

func TestJSONStoreMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.TournamentsFile), []byte("{not json"), 0o644))

	_, err := NewJSONStore(dir, zerolog.Nop()).LoadTournaments(context.Background())
	assert.Error(t, err)
}

func TestJSONStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewJSONStore(t.TempDir(), zerolog.Nop())
	assert.ErrorIs(t, store.SavePlayers(ctx, samplePlayers(1)), context.Canceled)
	_, err := store.LoadPlayers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
