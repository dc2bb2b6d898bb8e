package service

import (
	"time"

	"chess-manager/internal/domain"
)

// RoundSummary is a round as shown in reports: each match with the points
// each participant earned in it.
type RoundSummary struct {
	Name    string         `json:"name"`
	Start   time.Time      `json:"start_datetime"`
	End     *time.Time     `json:"end_datetime,omitempty"`
	Matches []MatchSummary `json:"matches"`
}

type MatchSummary struct {
	Number  int           `json:"number"`
	First   EntrySummary  `json:"first"`
	Second  *EntrySummary `json:"second,omitempty"`
	Pending bool          `json:"pending"`
}

type EntrySummary struct {
	ChessID string  `json:"chess_id"`
	Name    string  `json:"name"`
	Points  float64 `json:"points"`
}

func (m MatchSummary) IsBye() bool {
	return m.Second == nil
}

// Standings orders the roster by score, ties in registration order.
func (s *TournamentService) Standings(index int) ([]domain.TournamentPlayer, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	return t.Standings(), nil
}

func (s *TournamentService) Summary(index int) ([]RoundSummary, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	return Summarize(t), nil
}

// Summarize builds the per-round report of t.
func Summarize(t *domain.Tournament) []RoundSummary {
	summaries := make([]RoundSummary, 0, len(t.Rounds))
	for _, r := range t.Rounds {
		summary := RoundSummary{
			Name:    r.Name,
			Start:   r.StartDatetime,
			End:     r.EndDatetime,
			Matches: make([]MatchSummary, 0, len(r.Matches)),
		}
		for i, m := range r.Matches {
			summary.Matches = append(summary.Matches, summarizeMatch(i+1, m))
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func summarizeMatch(number int, m domain.Match) MatchSummary {
	ms := MatchSummary{Number: number}
	if len(m) == 0 {
		return ms
	}
	ms.First = entrySummary(m[0])
	if m.IsBye() {
		return ms
	}
	second := entrySummary(m[1])
	ms.Second = &second
	ms.Pending = m[0].Score+m[1].Score == 0
	return ms
}

func entrySummary(e domain.MatchEntry) EntrySummary {
	return EntrySummary{
		ChessID: e.Player.ChessID,
		Name:    e.Player.FullName(),
		Points:  e.Score,
	}
}
