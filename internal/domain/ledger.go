package domain

import (
	"fmt"
	"sort"
	"time"
)

func RoundName(number int) string {
	return fmt.Sprintf("Round %d", number)
}

func (t *Tournament) LastRound() (*Round, error) {
	if len(t.Rounds) == 0 {
		return nil, ErrNoRounds
	}
	return &t.Rounds[len(t.Rounds)-1], nil
}

// OpenRound appends a new round holding matches. It refuses to exceed
// NumRounds and to open a round while the previous one is still open.
func (t *Tournament) OpenRound(matches []Match, now time.Time) (*Round, error) {
	if len(t.Rounds) >= t.NumRounds {
		return nil, ErrAllRoundsPlayed
	}
	if last, err := t.LastRound(); err == nil && !last.Closed() {
		return nil, fmt.Errorf("%w: %s", ErrRoundOpen, last.Name)
	}

	if matches == nil {
		matches = []Match{}
	}
	t.Rounds = append(t.Rounds, Round{
		Name:          RoundName(len(t.Rounds) + 1),
		StartDatetime: now,
		Matches:       matches,
	})
	t.CurrentRound = len(t.Rounds)

	return &t.Rounds[len(t.Rounds)-1], nil
}

// RecordResult applies outcome to match matchIndex (0-based) of the last
// round, whether or not that round is closed. Entering the same result twice
// counts it twice.
func (t *Tournament) RecordResult(matchIndex int, outcome Outcome) (Match, error) {
	round, err := t.LastRound()
	if err != nil {
		return nil, err
	}
	if matchIndex < 0 || matchIndex >= len(round.Matches) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidMatchIndex, matchIndex+1, len(round.Matches))
	}
	if outcome < OutcomeWin || outcome > OutcomeLoss {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOutcome, outcome)
	}

	match := round.Matches[matchIndex]
	if match.IsBye() {
		return nil, ErrByeMatch
	}

	first, second := outcome.Deltas()
	match[0].Score += first
	match[1].Score += second
	t.award(match[0].Player.ChessID, first)
	t.award(match[1].Player.ChessID, second)

	return match, nil
}

func (t *Tournament) award(chessID string, points float64) {
	if points == 0 {
		return
	}
	for i := range t.Players {
		if t.Players[i].ChessID == chessID {
			t.Players[i].Score += points
			return
		}
	}
}

// CloseRound stamps the last round's end time. Unscored matches do not block it.
func (t *Tournament) CloseRound(now time.Time) (*Round, error) {
	round, err := t.LastRound()
	if err != nil {
		return nil, err
	}
	if round.Closed() {
		return nil, fmt.Errorf("%w: %s", ErrRoundClosed, round.Name)
	}
	round.EndDatetime = &now
	return round, nil
}

// Standings orders the roster by score, ties keeping registration order.
func (t *Tournament) Standings() []TournamentPlayer {
	standings := make([]TournamentPlayer, len(t.Players))
	copy(standings, t.Players)
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	return standings
}

// Winner is the first player in registration order holding the top score.
func (t *Tournament) Winner() (TournamentPlayer, bool) {
	if len(t.Players) == 0 {
		return TournamentPlayer{}, false
	}
	best := t.Players[0]
	for _, p := range t.Players[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best, true
}
