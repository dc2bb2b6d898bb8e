package repository

import (
	"context"

	"chess-manager/internal/domain"
)

// Store persists the two collections as wholes: every save replaces what was
// stored before.
type Store interface {
	LoadPlayers(ctx context.Context) ([]domain.Player, error)
	SavePlayers(ctx context.Context, players []domain.Player) error
	LoadTournaments(ctx context.Context) ([]domain.Tournament, error)
	SaveTournaments(ctx context.Context, tournaments []domain.Tournament) error
	Close() error
}
