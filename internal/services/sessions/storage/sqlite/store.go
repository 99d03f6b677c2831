// Package sqlite provides a SQLite-backed session storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	sqlitemigrate "github.com/sufni/dashboard/internal/platform/storage/sqlitemigrate"
	"github.com/sufni/dashboard/internal/services/sessions/storage"
	"github.com/sufni/dashboard/internal/services/sessions/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists session records in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite session store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// ListSessions returns all sessions ordered newest first. Data is not loaded.
func (s *Store) ListSessions(ctx context.Context) ([]storage.Session, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, description, timestamp, created_at, updated_at
		   FROM sessions
		  ORDER BY timestamp DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]storage.Session, 0)
	for rows.Next() {
		var (
			session   storage.Session
			id        int64
			timestamp int64
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(&id, &session.Name, &session.Description, &timestamp, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		session.ID = strconv.FormatInt(id, 10)
		session.Timestamp = fromMillis(timestamp)
		session.CreatedAt = fromMillis(createdAt)
		session.UpdatedAt = fromMillis(updatedAt)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// GetSession returns one session including its data payload.
func (s *Store) GetSession(ctx context.Context, id string) (storage.Session, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Session{}, err
	}
	rowID, ok := parseID(id)
	if !ok {
		return storage.Session{}, storage.ErrNotFound
	}

	var (
		session   storage.Session
		timestamp int64
		createdAt int64
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT name, description, timestamp, data, created_at, updated_at
		   FROM sessions
		  WHERE id = ?`,
		rowID,
	).Scan(&session.Name, &session.Description, &timestamp, &session.Data, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Session{}, storage.ErrNotFound
		}
		return storage.Session{}, fmt.Errorf("get session: %w", err)
	}
	session.ID = strconv.FormatInt(rowID, 10)
	session.Timestamp = fromMillis(timestamp)
	session.CreatedAt = fromMillis(createdAt)
	session.UpdatedAt = fromMillis(updatedAt)
	return session, nil
}

// CreateSession inserts one session and returns its assigned id.
func (s *Store) CreateSession(ctx context.Context, session storage.Session) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	name := strings.TrimSpace(session.Name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", storage.ErrInvalid)
	}
	now := s.now().UTC()
	timestamp := session.Timestamp.UTC()
	if session.Timestamp.IsZero() {
		timestamp = now
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (name, description, timestamp, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name,
		strings.TrimSpace(session.Description),
		toMillis(timestamp),
		session.Data,
		toMillis(now),
		toMillis(now),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return "", fmt.Errorf("%w: %v", storage.ErrInvalid, err)
		}
		return "", fmt.Errorf("create session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// UpdateSession replaces a session's name and description.
func (s *Store) UpdateSession(ctx context.Context, id string, name string, description string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	rowID, ok := parseID(id)
	if !ok {
		return storage.ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", storage.ErrInvalid)
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE sessions SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name,
		strings.TrimSpace(description),
		toMillis(s.now()),
		rowID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return requireAffected(result, "update session")
}

// DeleteSession removes one session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	rowID, ok := parseID(id)
	if !ok {
		return storage.ErrNotFound
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, rowID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return requireAffected(result, "delete session")
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// parseID accepts only canonical positive row ids, the exact strings the
// store hands out. "001", "+1" and " 1 " name no session.
func parseID(id string) (int64, bool) {
	value, err := strconv.ParseInt(id, 10, 64)
	if err != nil || value <= 0 || strconv.FormatInt(value, 10) != id {
		return 0, false
	}
	return value, true
}

func isConstraintViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL, sqlite3lib.SQLITE_CONSTRAINT_CHECK:
			return true
		}
	}
	return false
}

var _ storage.SessionStore = (*Store)(nil)
