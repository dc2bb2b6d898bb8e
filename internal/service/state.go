package service

import (
	"context"
	"fmt"

	"chess-manager/internal/constants"
	"chess-manager/internal/domain"
	"chess-manager/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// State holds the two collections in memory. It is loaded once and written
// back whole after every mutation.
type State struct {
	store       repository.Store
	logger      zerolog.Logger
	Players     []domain.Player
	Tournaments []domain.Tournament
}

func NewState(store repository.Store, logger zerolog.Logger) (*State, error) {
	s := &State{
		store:  store,
		logger: logger.With().Str("component", "state").Logger(),
	}
	if err := s.Load(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var players []domain.Player
	var tournaments []domain.Tournament

	g.Go(func() error {
		var err error
		players, err = s.store.LoadPlayers(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		tournaments, err = s.store.LoadTournaments(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load state")
		return fmt.Errorf("failed to load state: %w", err)
	}

	s.Players = players
	s.Tournaments = tournaments
	s.logger.Info().Int("players", len(players)).Int("tournaments", len(tournaments)).Msg("state loaded")
	return nil
}

// Flush writes both collections. It fails unless both saves succeed.
func (s *State) Flush(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.store.SavePlayers(gCtx, s.Players)
	})

	g.Go(func() error {
		return s.store.SaveTournaments(gCtx, s.Tournaments)
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to flush state")
		return fmt.Errorf("failed to save state: %w", err)
	}

	s.logger.Debug().Msg("state flushed")
	return nil
}

// Commit flushes a mutation already applied in memory. When the flush fails,
// undo reverts it so memory never holds a change the store rejected.
func (s *State) Commit(ctx context.Context, undo func()) error {
	if err := s.Flush(ctx); err != nil {
		undo()
		s.logger.Warn().Msg("mutation reverted")
		return err
	}
	return nil
}
