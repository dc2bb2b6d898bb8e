package domain

import (
	"time"

	"chess-manager/internal/constants"
)

type Player struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	BirthDate string `json:"birth_date"`
	ChessID   string `json:"chess_id"`
}

func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// TournamentPlayer is a tournament's own copy of a registry Player. Its score
// belongs to that tournament only.
type TournamentPlayer struct {
	LastName  string  `json:"last_name"`
	FirstName string  `json:"first_name"`
	BirthDate string  `json:"birth_date"`
	ChessID   string  `json:"chess_id"`
	Score     float64 `json:"score"`
}

func NewTournamentPlayer(p Player) TournamentPlayer {
	return TournamentPlayer{
		LastName:  p.LastName,
		FirstName: p.FirstName,
		BirthDate: p.BirthDate,
		ChessID:   p.ChessID,
		Score:     0,
	}
}

func (p TournamentPlayer) FullName() string {
	return p.FirstName + " " + p.LastName
}

// MatchEntry pairs a participant snapshot with the points it earned in the match.
type MatchEntry struct {
	Player TournamentPlayer `json:"player"`
	Score  float64          `json:"score"`
}

// Match holds two entries for a game and one for a bye.
type Match []MatchEntry

func NewGame(first, second TournamentPlayer) Match {
	return Match{{Player: first}, {Player: second}}
}

func NewBye(p TournamentPlayer) Match {
	return Match{{Player: p}}
}

func (m Match) IsBye() bool {
	return len(m) == 1
}

type Round struct {
	Name          string     `json:"name"`
	StartDatetime time.Time  `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	Matches       []Match    `json:"matches"`
}

func (r Round) Closed() bool {
	return r.EndDatetime != nil
}

type Tournament struct {
	Name         string             `json:"name"`
	Location     string             `json:"location"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	NumRounds    int                `json:"num_rounds"`
	CurrentRound int                `json:"current_round"`
	Rounds       []Round            `json:"rounds"`
	Players      []TournamentPlayer `json:"players"`
}

func NewTournament(name, location, startDate, endDate string, numRounds int) Tournament {
	if numRounds <= 0 {
		numRounds = constants.DefaultNumRounds
	}
	return Tournament{
		Name:         name,
		Location:     location,
		StartDate:    startDate,
		EndDate:      endDate,
		NumRounds:    numRounds,
		CurrentRound: 1,
		Rounds:       []Round{},
		Players:      []TournamentPlayer{},
	}
}

type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusRegistered Status = "REGISTERED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Status is derived from the roster and the ledger; it is never stored.
func (t *Tournament) Status() Status {
	switch {
	case len(t.Rounds) == 0 && len(t.Players) == 0:
		return StatusCreated
	case len(t.Rounds) == 0:
		return StatusRegistered
	case len(t.Rounds) >= t.NumRounds && t.Rounds[len(t.Rounds)-1].Closed():
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// Clone returns a copy of t that shares no slices or pointers with it.
func (t Tournament) Clone() Tournament {
	c := t
	c.Players = make([]TournamentPlayer, len(t.Players))
	copy(c.Players, t.Players)
	c.Rounds = make([]Round, len(t.Rounds))
	for i, r := range t.Rounds {
		c.Rounds[i] = r.clone()
	}
	return c
}

func (r Round) clone() Round {
	c := r
	if r.EndDatetime != nil {
		end := *r.EndDatetime
		c.EndDatetime = &end
	}
	c.Matches = make([]Match, len(r.Matches))
	for i, m := range r.Matches {
		c.Matches[i] = append(Match{}, m...)
	}
	return c
}
