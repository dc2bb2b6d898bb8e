package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunsMigrations(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "chess.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())

	for _, table := range []string{"players", "tournaments", "tournament_players", "rounds", "match_entries"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestNewIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")

	db, err := New(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
