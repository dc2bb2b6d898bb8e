package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"chess-manager/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerService struct {
	state  *State
	logger zerolog.Logger
}

func NewPlayerService(state *State, logger zerolog.Logger) *PlayerService {
	return &PlayerService{state: state, logger: logger}
}

// PlayerUpdate carries edited fields. Empty fields keep the current value.
type PlayerUpdate struct {
	LastName  string
	FirstName string
	BirthDate string
	ChessID   string
}

func (s *PlayerService) Create(ctx context.Context, p domain.Player) (domain.Player, error) {
	p = trimPlayer(p)
	if p.LastName == "" || p.FirstName == "" || p.ChessID == "" {
		return domain.Player{}, fmt.Errorf("%w: last name, first name and chess ID are required", ErrMissingField)
	}
	if _, err := s.Find(p.ChessID); err == nil {
		return domain.Player{}, fmt.Errorf("%w: %s", ErrDuplicateChessID, p.ChessID)
	}

	n := len(s.state.Players)
	s.state.Players = append(s.state.Players, p)
	if err := s.state.Commit(ctx, func() { s.state.Players = s.state.Players[:n] }); err != nil {
		return domain.Player{}, err
	}

	s.logger.Info().Str("chess_id", p.ChessID).Str("name", p.FullName()).Msg("player created")
	return p, nil
}

// List returns the registry sorted by last name.
func (s *PlayerService) List() []domain.Player {
	players := make([]domain.Player, len(s.state.Players))
	copy(players, s.state.Players)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].LastName < players[j].LastName
	})
	return players
}

// Modify edits the player at position index (0-based) of List.
func (s *PlayerService) Modify(ctx context.Context, index int, update PlayerUpdate) (domain.Player, error) {
	listing := s.List()
	if index < 0 || index >= len(listing) {
		return domain.Player{}, fmt.Errorf("%w: player %d not in [1, %d]", ErrInvalidSelection, index+1, len(listing))
	}

	target := s.indexOf(listing[index].ChessID)
	current := s.state.Players[target]
	updated := current

	update.LastName = strings.TrimSpace(update.LastName)
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.BirthDate = strings.TrimSpace(update.BirthDate)
	update.ChessID = strings.TrimSpace(update.ChessID)

	if update.LastName != "" {
		updated.LastName = update.LastName
	}
	if update.FirstName != "" {
		updated.FirstName = update.FirstName
	}
	if update.BirthDate != "" {
		updated.BirthDate = update.BirthDate
	}
	if update.ChessID != "" && update.ChessID != current.ChessID {
		if s.indexOf(update.ChessID) >= 0 {
			return domain.Player{}, fmt.Errorf("%w: %s", ErrDuplicateChessID, update.ChessID)
		}
		updated.ChessID = update.ChessID
	}

	s.state.Players[target] = updated
	if err := s.state.Commit(ctx, func() { s.state.Players[target] = current }); err != nil {
		return domain.Player{}, err
	}

	s.logger.Info().Str("chess_id", updated.ChessID).Str("previous_chess_id", current.ChessID).Msg("player modified")
	return updated, nil
}

func (s *PlayerService) Find(chessID string) (domain.Player, error) {
	i := s.indexOf(strings.TrimSpace(chessID))
	if i < 0 {
		return domain.Player{}, fmt.Errorf("player with ID %s: %w", chessID, ErrNotFound)
	}
	return s.state.Players[i], nil
}

func (s *PlayerService) indexOf(chessID string) int {
	for i, p := range s.state.Players {
		if p.ChessID == chessID {
			return i
		}
	}
	return -1
}

func trimPlayer(p domain.Player) domain.Player {
	return domain.Player{
		LastName:  strings.TrimSpace(p.LastName),
		FirstName: strings.TrimSpace(p.FirstName),
		BirthDate: strings.TrimSpace(p.BirthDate),
		ChessID:   strings.TrimSpace(p.ChessID),
	}
}
