package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"chess-manager/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type TournamentRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTournamentRepository(sqlDB *sql.DB, logger zerolog.Logger) *TournamentRepository {
	return &TournamentRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// List reads each table in a single pass; the pool holds one connection, so
// no query may be issued while another result set is open.
func (r *TournamentRepository) List(ctx context.Context) ([]domain.Tournament, error) {
	tournaments, ids, err := r.listTournaments(ctx)
	if err != nil {
		return nil, err
	}
	if len(tournaments) == 0 {
		return tournaments, nil
	}

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	if err := r.attachPlayers(ctx, tournaments, index); err != nil {
		return nil, err
	}
	rounds, err := r.attachRounds(ctx, tournaments, index)
	if err != nil {
		return nil, err
	}
	if err := r.attachMatches(ctx, tournaments, rounds); err != nil {
		return nil, err
	}

	r.logger.Debug().Int("count", len(tournaments)).Msg("tournaments loaded")
	return tournaments, nil
}

func (r *TournamentRepository) listTournaments(ctx context.Context) ([]domain.Tournament, []string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, location, start_date, end_date, num_rounds, current_round
		FROM tournaments ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := []domain.Tournament{}
	var ids []string
	for rows.Next() {
		var id string
		t := domain.Tournament{Rounds: []domain.Round{}, Players: []domain.TournamentPlayer{}}
		if err := rows.Scan(&id, &t.Name, &t.Location, &t.StartDate, &t.EndDate, &t.NumRounds, &t.CurrentRound); err != nil {
			return nil, nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate tournaments: %w", err)
	}
	return tournaments, ids, nil
}

func (r *TournamentRepository) attachPlayers(ctx context.Context, tournaments []domain.Tournament, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tournament_id, last_name, first_name, birth_date, chess_id, score
		FROM tournament_players ORDER BY tournament_id, position`)
	if err != nil {
		return fmt.Errorf("failed to query tournament players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tournamentID string
		var p domain.TournamentPlayer
		if err := rows.Scan(&tournamentID, &p.LastName, &p.FirstName, &p.BirthDate, &p.ChessID, &p.Score); err != nil {
			return fmt.Errorf("failed to scan tournament player: %w", err)
		}
		i, ok := index[tournamentID]
		if !ok {
			continue
		}
		tournaments[i].Players = append(tournaments[i].Players, p)
	}
	return rows.Err()
}

type roundRef struct {
	tournament int
	round      int
}

func (r *TournamentRepository) attachRounds(ctx context.Context, tournaments []domain.Tournament, index map[string]int) (map[string]roundRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tournament_id, name, start_datetime, end_datetime
		FROM rounds ORDER BY tournament_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]roundRef)
	for rows.Next() {
		var id, tournamentID, start string
		var end sql.NullString
		var round domain.Round
		if err := rows.Scan(&id, &tournamentID, &round.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}

		round.StartDatetime, err = time.Parse(time.RFC3339Nano, start)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start of round %s: %w", id, err)
		}
		if end.Valid {
			closed, err := time.Parse(time.RFC3339Nano, end.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end of round %s: %w", id, err)
			}
			round.EndDatetime = &closed
		}
		round.Matches = []domain.Match{}

		i, ok := index[tournamentID]
		if !ok {
			continue
		}
		tournaments[i].Rounds = append(tournaments[i].Rounds, round)
		refs[id] = roundRef{tournament: i, round: len(tournaments[i].Rounds) - 1}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rounds: %w", err)
	}
	return refs, nil
}

func (r *TournamentRepository) attachMatches(ctx context.Context, tournaments []domain.Tournament, refs map[string]roundRef) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT round_id, match_position, last_name, first_name, birth_date, chess_id, player_score, score
		FROM match_entries ORDER BY round_id, match_position, slot`)
	if err != nil {
		return fmt.Errorf("failed to query match entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roundID string
		var position int
		var e domain.MatchEntry
		if err := rows.Scan(&roundID, &position, &e.Player.LastName, &e.Player.FirstName, &e.Player.BirthDate,
			&e.Player.ChessID, &e.Player.Score, &e.Score); err != nil {
			return fmt.Errorf("failed to scan match entry: %w", err)
		}

		ref, ok := refs[roundID]
		if !ok {
			continue
		}
		round := &tournaments[ref.tournament].Rounds[ref.round]
		for len(round.Matches) <= position {
			round.Matches = append(round.Matches, domain.Match{})
		}
		round.Matches[position] = append(round.Matches[position], e)
	}
	return rows.Err()
}

func (r *TournamentRepository) ReplaceAll(ctx context.Context, tournaments []domain.Tournament) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"match_entries", "rounds", "tournament_players", "tournaments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, t := range tournaments {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tournaments (id, position, name, location, start_date, end_date, num_rounds, current_round)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, pos, t.Name, t.Location, t.StartDate, t.EndDate, t.NumRounds, t.CurrentRound); err != nil {
			return fmt.Errorf("failed to insert tournament %q: %w", t.Name, err)
		}

		for i, p := range t.Players {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO tournament_players (tournament_id, position, chess_id, last_name, first_name, birth_date, score)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, i, p.ChessID, p.LastName, p.FirstName, p.BirthDate, p.Score); err != nil {
				return fmt.Errorf("failed to insert player %s of %q: %w", p.ChessID, t.Name, err)
			}
		}

		for i, round := range t.Rounds {
			if err := insertRound(ctx, tx, id, i, round); err != nil {
				return fmt.Errorf("failed to insert %s of %q: %w", round.Name, t.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tournaments: %w", err)
	}

	r.logger.Debug().Int("count", len(tournaments)).Msg("tournaments saved")
	return nil
}

func insertRound(ctx context.Context, tx *sql.Tx, tournamentID string, position int, round domain.Round) error {
	roundID, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}

	var end sql.NullString
	if round.EndDatetime != nil {
		end = sql.NullString{String: round.EndDatetime.Format(time.RFC3339Nano), Valid: true}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO rounds (id, tournament_id, position, name, start_datetime, end_datetime)
		VALUES (?, ?, ?, ?, ?, ?)`,
		roundID, tournamentID, position, round.Name, round.StartDatetime.Format(time.RFC3339Nano), end); err != nil {
		return err
	}

	for m, match := range round.Matches {
		for slot, e := range match {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO match_entries (round_id, match_position, slot, chess_id, last_name, first_name, birth_date, player_score, score)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				roundID, m, slot, e.Player.ChessID, e.Player.LastName, e.Player.FirstName, e.Player.BirthDate,
				e.Player.Score, e.Score); err != nil {
				return fmt.Errorf("failed to insert match %d: %w", m+1, err)
			}
		}
	}
	return nil
}
