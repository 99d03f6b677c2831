package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
)

const maxBoardIDLength = 64

// ListBoards returns every board ordered by id.
func (s *Store) ListBoards(ctx context.Context) ([]storage.Board, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, setup_id, created_at, updated_at
		   FROM boards
		  ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	boards := make([]storage.Board, 0)
	for rows.Next() {
		var (
			board     storage.Board
			setupID   sql.NullInt64
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(&board.ID, &setupID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("list boards: %w", err)
		}
		if setupID.Valid {
			value := setupID.Int64
			board.SetupID = &value
		}
		board.CreatedAt = fromMillis(createdAt)
		board.UpdatedAt = fromMillis(updatedAt)
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// PutBoard inserts a board or replaces the setup of an existing one.
func (s *Store) PutBoard(ctx context.Context, board storage.Board) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(board.ID)
	if id == "" || len(id) > maxBoardIDLength {
		return fmt.Errorf("%w: board id must be 1-%d characters", storage.ErrInvalid, maxBoardIDLength)
	}
	var setupID sql.NullInt64
	if board.SetupID != nil {
		setupID = sql.NullInt64{Int64: *board.SetupID, Valid: true}
	}
	now := toMillis(s.now())
	if _, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO boards (id, setup_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET setup_id = excluded.setup_id, updated_at = excluded.updated_at`,
		id,
		setupID,
		now,
		now,
	); err != nil {
		return fmt.Errorf("put board: %w", err)
	}
	return nil
}

// DeleteBoard removes one board.
func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return requireAffected(result, "delete board")
}

var _ storage.BoardStore = (*Store)(nil)
