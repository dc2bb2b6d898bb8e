package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"chess-manager/internal/constants"
	"chess-manager/internal/domain"
	"chess-manager/internal/middleware"
	"chess-manager/internal/repository"
	"chess-manager/internal/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

var errBadIndex = errors.New("tournament index must be a positive integer")

// StandingsServer serves the stored players and tournaments read-only. Every
// request reads the store afresh so results entered in the menu show up
// without a restart.
type StandingsServer struct {
	store  repository.Store
	logger zerolog.Logger
}

func NewStandingsServer(store repository.Store, logger zerolog.Logger) *StandingsServer {
	return &StandingsServer{store: store, logger: logger.With().Str("component", "standings").Logger()}
}

type tournamentView struct {
	Index        int                      `json:"index"`
	Name         string                   `json:"name"`
	Location     string                   `json:"location"`
	StartDate    string                   `json:"start_date"`
	EndDate      string                   `json:"end_date"`
	NumRounds    int                      `json:"num_rounds"`
	CurrentRound int                      `json:"current_round"`
	Status       domain.Status            `json:"status"`
	Players      int                      `json:"players"`
	Rounds       []service.RoundSummary   `json:"rounds,omitempty"`
	Winner       *domain.TournamentPlayer `json:"winner,omitempty"`
}

type standingView struct {
	Rank    int     `json:"rank"`
	ChessID string  `json:"chess_id"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
}

func (s *StandingsServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)

	r.Get("/players", s.listPlayers)
	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", s.listTournaments)
		r.Get("/{index}", s.getTournament)
		r.Get("/{index}/standings", s.getStandings)
	})
	return r
}

func (s *StandingsServer) listPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	players, err := s.store.LoadPlayers(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, players)
}

func (s *StandingsServer) listTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	tournaments, err := s.store.LoadTournaments(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	views := make([]tournamentView, len(tournaments))
	for i := range tournaments {
		views[i] = newTournamentView(i, &tournaments[i], false)
	}
	s.writeJSON(w, r, http.StatusOK, views)
}

func (s *StandingsServer) getTournament(w http.ResponseWriter, r *http.Request) {
	t, index, ok := s.loadTournament(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, newTournamentView(index, t, true))
}

func (s *StandingsServer) getStandings(w http.ResponseWriter, r *http.Request) {
	t, _, ok := s.loadTournament(w, r)
	if !ok {
		return
	}

	standings := t.Standings()
	views := make([]standingView, len(standings))
	for i, p := range standings {
		views[i] = standingView{Rank: i + 1, ChessID: p.ChessID, Name: p.FullName(), Score: p.Score}
	}
	s.writeJSON(w, r, http.StatusOK, views)
}

// loadTournament resolves the {index} path parameter. It writes the error
// response itself and reports ok=false when the request cannot proceed.
func (s *StandingsServer) loadTournament(w http.ResponseWriter, r *http.Request) (*domain.Tournament, int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || n < 1 {
		s.errorResponse(w, r, http.StatusBadRequest, errBadIndex)
		return nil, 0, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	tournaments, err := s.store.LoadTournaments(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return nil, 0, false
	}
	if n > len(tournaments) {
		s.errorResponse(w, r, http.StatusNotFound, fmt.Errorf("tournament %d: %w", n, service.ErrNotFound))
		return nil, 0, false
	}
	return &tournaments[n-1], n - 1, true
}

func newTournamentView(index int, t *domain.Tournament, detailed bool) tournamentView {
	view := tournamentView{
		Index:        index + 1,
		Name:         t.Name,
		Location:     t.Location,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		NumRounds:    t.NumRounds,
		CurrentRound: t.CurrentRound,
		Status:       t.Status(),
		Players:      len(t.Players),
	}
	if !detailed {
		return view
	}
	view.Rounds = service.Summarize(t)
	if view.Status == domain.StatusCompleted {
		if winner, ok := t.Winner(); ok {
			view.Winner = &winner
		}
	}
	return view
}

func (s *StandingsServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log(r).Error().Err(err).Msg("failed to write response")
	}
}

func (s *StandingsServer) errorResponse(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log(r).Debug().Err(err).Int("status", status).Msg("request rejected")
	s.writeJSON(w, r, status, map[string]string{"error": err.Error()})
}

func (s *StandingsServer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log(r).Error().Err(err).Str("path", r.URL.Path).Msg("failed to load state")
	s.writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "failed to load state"})
}

func (s *StandingsServer) log(r *http.Request) *zerolog.Logger {
	logger := s.logger.With().Str("request_id", middleware.GetRequestID(r.Context())).Logger()
	return &logger
}
