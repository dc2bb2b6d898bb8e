package repository

import (
	"context"
	"database/sql"

	"chess-manager/internal/domain"

	"github.com/rs/zerolog"
)

// SQLiteStore keeps players and tournaments in the tables created by the
// database migrations.
type SQLiteStore struct {
	db          *sql.DB
	players     *PlayerRepository
	tournaments *TournamentRepository
}

func NewSQLiteStore(sqlDB *sql.DB, logger zerolog.Logger) *SQLiteStore {
	logger = logger.With().Str("store", "sqlite").Logger()
	return &SQLiteStore{
		db:          sqlDB,
		players:     NewPlayerRepository(sqlDB, logger),
		tournaments: NewTournamentRepository(sqlDB, logger),
	}
}

func (s *SQLiteStore) LoadPlayers(ctx context.Context) ([]domain.Player, error) {
	return s.players.List(ctx)
}

func (s *SQLiteStore) SavePlayers(ctx context.Context, players []domain.Player) error {
	return s.players.ReplaceAll(ctx, players)
}

func (s *SQLiteStore) LoadTournaments(ctx context.Context) ([]domain.Tournament, error) {
	return s.tournaments.List(ctx)
}

func (s *SQLiteStore) SaveTournaments(ctx context.Context, tournaments []domain.Tournament) error {
	return s.tournaments.ReplaceAll(ctx, tournaments)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
