package fx

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"chess-manager/internal/cli"
	"chess-manager/internal/config"
	"chess-manager/internal/database"
	"chess-manager/internal/events"
	"chess-manager/internal/logger"
	"chess-manager/internal/pairing"
	"chess-manager/internal/random"
	"chess-manager/internal/repository"
	"chess-manager/internal/server"
	"chess-manager/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideStore(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (repository.Store, error) {
	var store repository.Store
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		sqlDB, err := database.New(cfg.DBPath, logger)
		if err != nil {
			return nil, err
		}
		store = repository.NewSQLiteStore(sqlDB, logger)
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store = repository.NewJSONStore(cfg.DataDir, logger)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing store")
			}
			return nil
		},
	})
	return store, nil
}

func ProvideRand(cfg *config.Config) (*rand.Rand, error) {
	return random.New(cfg.PairingSeed)
}

func ProvideGenerator(cfg *config.Config, rng *rand.Rand) (pairing.Generator, error) {
	return pairing.New(cfg.Pairing, rng)
}

// ProvidePublisher falls back to a no-op publisher when NATS is not
// configured or cannot be reached.
func ProvidePublisher(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) events.Publisher {
	if cfg.NATSURL == "" {
		return events.Nop{}
	}

	publisher, err := events.Connect(cfg.NATSURL, cfg.NATSStream, logger)
	if err != nil {
		logger.Warn().Err(err).Str("url", cfg.NATSURL).Msg("events disabled")
		return events.Nop{}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := publisher.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing event publisher")
			}
			return nil
		},
	})
	return publisher
}

func ProvideMenu(players *service.PlayerService, tournaments *service.TournamentService, logger zerolog.Logger) *cli.Menu {
	return cli.NewMenu(os.Stdin, os.Stdout, players, tournaments, logger)
}

var Core = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(ProvideStore),
)

var CLI = fx.Options(
	fx.Provide(service.NewState),
	// pairing
	fx.Provide(ProvideRand),
	fx.Provide(ProvideGenerator),
	fx.Provide(ProvidePublisher),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewTournamentService),
	fx.Provide(ProvideMenu),
)

var Server = fx.Options(
	fx.Provide(server.NewStandingsServer),
)
