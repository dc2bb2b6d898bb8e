package main

import (
	"context"
	"errors"

	"chess-manager/internal/cli"
	fxmodules "chess-manager/internal/fx"
	"chess-manager/internal/logger"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		fxmodules.Core,
		fxmodules.CLI,
		fx.NopLogger,
		fx.Invoke(runMenu),
	)
	if err := app.Err(); err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("failed to start")
	}
	app.Run()
}

func runMenu(lc fx.Lifecycle, shutdowner fx.Shutdowner, menu *cli.Menu, logger zerolog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := 0
				if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error().Err(err).Msg("menu stopped")
					code = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Warn().Err(err).Msg("shutdown failed")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
