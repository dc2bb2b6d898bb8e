package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chess-manager/internal/constants"
	"chess-manager/internal/domain"
	"chess-manager/internal/events"
	"chess-manager/internal/pairing"

	"github.com/rs/zerolog"
)

type TournamentService struct {
	state     *State
	players   *PlayerService
	generator pairing.Generator
	publisher events.Publisher
	now       func() time.Time
	logger    zerolog.Logger
}

func NewTournamentService(state *State, players *PlayerService, generator pairing.Generator, publisher events.Publisher, logger zerolog.Logger) *TournamentService {
	return &TournamentService{
		state:     state,
		players:   players,
		generator: generator,
		publisher: publisher,
		now:       time.Now,
		logger:    logger,
	}
}

type TournamentInput struct {
	Name      string
	Location  string
	StartDate string
	EndDate   string
	NumRounds int
}

// TournamentUpdate carries edited fields. Empty strings and a nil NumRounds
// keep the current value.
type TournamentUpdate struct {
	Name      string
	Location  string
	StartDate string
	EndDate   string
	NumRounds *int
}

// Registration reports the entries skipped while building a roster.
type Registration struct {
	Registered []domain.TournamentPlayer
	Unknown    []string
	Duplicates []string
}

func (s *TournamentService) Create(ctx context.Context, in TournamentInput) (int, error) {
	if in.NumRounds < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidNumRounds, in.NumRounds)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, fmt.Errorf("%w: tournament name is required", ErrMissingField)
	}

	t := domain.NewTournament(name, strings.TrimSpace(in.Location), strings.TrimSpace(in.StartDate),
		strings.TrimSpace(in.EndDate), in.NumRounds)
	n := len(s.state.Tournaments)
	s.state.Tournaments = append(s.state.Tournaments, t)
	if err := s.state.Commit(ctx, func() { s.state.Tournaments = s.state.Tournaments[:n] }); err != nil {
		return 0, err
	}

	index := len(s.state.Tournaments) - 1
	s.logger.Info().Int("tournament", index+1).Str("name", t.Name).Int("num_rounds", t.NumRounds).Msg("tournament created")
	return index, nil
}

func (s *TournamentService) List() []domain.Tournament {
	return s.state.Tournaments
}

// Get returns the tournament at position index (0-based).
func (s *TournamentService) Get(index int) (*domain.Tournament, error) {
	if index < 0 || index >= len(s.state.Tournaments) {
		return nil, fmt.Errorf("%w: tournament %d not in [1, %d]", ErrInvalidSelection, index+1, len(s.state.Tournaments))
	}
	return &s.state.Tournaments[index], nil
}

func (s *TournamentService) Modify(ctx context.Context, index int, update TournamentUpdate) (*domain.Tournament, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	saved := t.Clone()

	if update.NumRounds != nil {
		n := *update.NumRounds
		if n < 1 || n < len(t.Rounds) {
			return nil, fmt.Errorf("%w: %d (at least 1 and %d already played)", ErrInvalidNumRounds, n, len(t.Rounds))
		}
		t.NumRounds = n
	}
	if v := strings.TrimSpace(update.Name); v != "" {
		t.Name = v
	}
	if v := strings.TrimSpace(update.Location); v != "" {
		t.Location = v
	}
	if v := strings.TrimSpace(update.StartDate); v != "" {
		t.StartDate = v
	}
	if v := strings.TrimSpace(update.EndDate); v != "" {
		t.EndDate = v
	}

	if err := s.state.Commit(ctx, func() { *t = saved }); err != nil {
		return nil, err
	}

	s.logger.Info().Int("tournament", index+1).Str("name", t.Name).Msg("tournament modified")
	return t, nil
}

// ParseChessIDs splits a comma separated input line into chess IDs.
func ParseChessIDs(line string) []string {
	var ids []string
	for _, id := range strings.Split(line, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Register replaces the roster with snapshots of the given registry players,
// every score reset to zero. Unknown and repeated IDs are skipped and
// reported. The roster is left untouched when fewer than 16 remain.
func (s *TournamentService) Register(ctx context.Context, index int, chessIDs []string) (Registration, error) {
	var reg Registration

	t, err := s.Get(index)
	if err != nil {
		return reg, err
	}
	if len(t.Rounds) > 0 {
		return reg, fmt.Errorf("%w: %s", ErrTournamentStarted, t.Name)
	}

	seen := make(map[string]bool, len(chessIDs))
	reg.Registered = []domain.TournamentPlayer{}
	for _, id := range chessIDs {
		if seen[id] {
			reg.Duplicates = append(reg.Duplicates, id)
			continue
		}
		p, err := s.players.Find(id)
		if err != nil {
			reg.Unknown = append(reg.Unknown, id)
			continue
		}
		seen[id] = true
		reg.Registered = append(reg.Registered, domain.NewTournamentPlayer(p))
	}

	if len(reg.Registered) < constants.MinRosterSize {
		s.logger.Warn().Int("tournament", index+1).Int("count", len(reg.Registered)).Msg("registration rejected")
		return reg, fmt.Errorf("%w: got %d", ErrInsufficientRoster, len(reg.Registered))
	}

	previous := t.Players
	t.Players = reg.Registered
	if err := s.state.Commit(ctx, func() { t.Players = previous }); err != nil {
		return reg, err
	}

	s.logger.Info().Int("tournament", index+1).Int("count", len(t.Players)).Msg("players registered")
	return reg, nil
}

// CheckLaunch reports whether the tournament may be played further.
func (s *TournamentService) CheckLaunch(index int) (*domain.Tournament, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	if len(t.Players) < constants.MinRosterSize {
		return nil, fmt.Errorf("%w: %s has %d", ErrInsufficientRoster, t.Name, len(t.Players))
	}
	if t.Status() == domain.StatusCompleted {
		return nil, fmt.Errorf("%w: %s", ErrTournamentCompleted, t.Name)
	}
	return t, nil
}

// OpenRound pairs the roster by current score and appends the next round.
func (s *TournamentService) OpenRound(ctx context.Context, index int) (*domain.Round, error) {
	t, err := s.CheckLaunch(index)
	if err != nil {
		return nil, err
	}

	matches, err := s.generator.Generate(t.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to pair %s: %w", domain.RoundName(len(t.Rounds)+1), err)
	}

	saved := t.Clone()
	round, err := t.OpenRound(matches, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.state.Commit(ctx, func() { *t = saved }); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("tournament", index+1).
		Str("round", round.Name).
		Int("matches", len(round.Matches)).
		Str("pairing", s.generator.Name()).
		Msg("round opened")
	s.publish(ctx, events.Event{Type: events.RoundOpened, Tournament: index + 1, Name: t.Name, Round: round.Name, At: round.StartDatetime})
	return round, nil
}

// RecordResult applies outcome to match matchIndex (0-based) of the last round.
func (s *TournamentService) RecordResult(ctx context.Context, index, matchIndex int, outcome domain.Outcome) (domain.Match, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}

	saved := t.Clone()
	match, err := t.RecordResult(matchIndex, outcome)
	if err != nil {
		return nil, err
	}
	if err := s.state.Commit(ctx, func() { *t = saved }); err != nil {
		return nil, err
	}

	round, _ := t.LastRound()
	s.logger.Info().
		Int("tournament", index+1).
		Str("round", round.Name).
		Int("match", matchIndex+1).
		Stringer("outcome", outcome).
		Msg("result recorded")
	s.publish(ctx, events.Event{
		Type:       events.ResultRecorded,
		Tournament: index + 1,
		Name:       t.Name,
		Round:      round.Name,
		Match:      matchIndex + 1,
		Outcome:    outcome.String(),
		At:         s.now(),
	})
	return match, nil
}

// CloseRound stamps the end of the last round. Closing the final round
// completes the tournament.
func (s *TournamentService) CloseRound(ctx context.Context, index int) (*domain.Round, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}

	saved := t.Clone()
	round, err := t.CloseRound(s.now())
	if err != nil {
		return nil, err
	}
	if err := s.state.Commit(ctx, func() { *t = saved }); err != nil {
		return nil, err
	}

	s.logger.Info().Int("tournament", index+1).Str("round", round.Name).Msg("round closed")
	s.publish(ctx, events.Event{Type: events.RoundClosed, Tournament: index + 1, Name: t.Name, Round: round.Name, At: *round.EndDatetime})

	if t.Status() == domain.StatusCompleted {
		winner, _ := t.Winner()
		s.logger.Info().Int("tournament", index+1).Str("winner", winner.ChessID).Float64("score", winner.Score).Msg("tournament completed")
		s.publish(ctx, events.Event{Type: events.Completed, Tournament: index + 1, Name: t.Name, Winner: winner.ChessID, At: *round.EndDatetime})
	}
	return round, nil
}

// CurrentRound returns the last round, open or not.
func (s *TournamentService) CurrentRound(index int) (*domain.Round, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	return t.LastRound()
}

func (s *TournamentService) Winner(index int) (domain.TournamentPlayer, error) {
	t, err := s.Get(index)
	if err != nil {
		return domain.TournamentPlayer{}, err
	}
	winner, ok := t.Winner()
	if !ok {
		return domain.TournamentPlayer{}, fmt.Errorf("%s has no players: %w", t.Name, ErrNotFound)
	}
	return winner, nil
}

func (s *TournamentService) publish(ctx context.Context, event events.Event) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("subject", event.Subject()).Msg("failed to publish event")
	}
}
