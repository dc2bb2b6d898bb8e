package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chess-manager/internal/constants"
	"chess-manager/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT last_name, first_name, birth_date, chess_id FROM players ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.LastName, &p.FirstName, &p.BirthDate, &p.ChessID); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	r.logger.Debug().Int("count", len(players)).Msg("players loaded")
	return players, nil
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []domain.Player) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO players (chess_id, position, last_name, first_name, birth_date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare player insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < len(players); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(players) {
			end = len(players)
		}

		for pos := i; pos < end; pos++ {
			p := players[pos]
			if _, err := stmt.ExecContext(ctx, p.ChessID, pos, p.LastName, p.FirstName, p.BirthDate); err != nil {
				return fmt.Errorf("failed to insert player %s: %w", p.ChessID, err)
			}
		}
		r.logger.Debug().Int("from", i).Int("to", end).Msg("player batch written")
	}

	return tx.Commit()
}
