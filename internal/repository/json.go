package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"chess-manager/internal/constants"
	"chess-manager/internal/domain"

	"github.com/rs/zerolog"
)

type JSONStore struct {
	dir    string
	logger zerolog.Logger
}

func NewJSONStore(dir string, logger zerolog.Logger) *JSONStore {
	return &JSONStore{
		dir:    dir,
		logger: logger.With().Str("store", "json").Logger(),
	}
}

func (s *JSONStore) LoadPlayers(ctx context.Context) ([]domain.Player, error) {
	return readJSON[domain.Player](ctx, s.path(constants.PlayersFile), s.logger)
}

func (s *JSONStore) SavePlayers(ctx context.Context, players []domain.Player) error {
	if players == nil {
		players = []domain.Player{}
	}
	return writeJSON(ctx, s.path(constants.PlayersFile), players, s.logger)
}

func (s *JSONStore) LoadTournaments(ctx context.Context) ([]domain.Tournament, error) {
	return readJSON[domain.Tournament](ctx, s.path(constants.TournamentsFile), s.logger)
}

func (s *JSONStore) SaveTournaments(ctx context.Context, tournaments []domain.Tournament) error {
	return writeJSON(ctx, s.path(constants.TournamentsFile), normalizeTournaments(tournaments), s.logger)
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func readJSON[T any](ctx context.Context, path string, logger zerolog.Logger) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("path", path).Msg("file not found, starting empty")
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var items []T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}

	logger.Debug().Str("path", path).Int("count", len(items)).Msg("records loaded")
	return items, nil
}

// writeJSON replaces path through a rename so a failed write leaves the
// previous file intact.
func writeJSON[T any](ctx context.Context, path string, items []T, logger zerolog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(items, "", constants.JSONIndent)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("count", len(items)).Msg("records saved")
	return nil
}

// normalizeTournaments swaps nil collections for empty ones so they encode
// as [] rather than null.
func normalizeTournaments(tournaments []domain.Tournament) []domain.Tournament {
	out := make([]domain.Tournament, len(tournaments))
	for i, t := range tournaments {
		if t.Players == nil {
			t.Players = []domain.TournamentPlayer{}
		}
		if t.Rounds == nil {
			t.Rounds = []domain.Round{}
		} else {
			rounds := make([]domain.Round, len(t.Rounds))
			for j, r := range t.Rounds {
				if r.Matches == nil {
					r.Matches = []domain.Match{}
				}
				rounds[j] = r
			}
			t.Rounds = rounds
		}
		out[i] = t
	}
	return out
}
