package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
)

// GetUserByUsername returns one operator account.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return storage.User{}, storage.ErrNotFound
	}

	var (
		user      storage.User
		id        int64
		createdAt int64
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		   FROM users
		  WHERE username = ?`,
		username,
	).Scan(&id, &user.Username, &user.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("get user: %w", err)
	}
	user.ID = strconv.FormatInt(id, 10)
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}

// EnsureUser creates the account unless the username is taken.
func (s *Store) EnsureUser(ctx context.Context, username string, passwordHash string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	username = strings.TrimSpace(username)
	passwordHash = strings.TrimSpace(passwordHash)
	if username == "" || passwordHash == "" {
		return storage.User{}, fmt.Errorf("%w: username and password hash are required", storage.ErrInvalid)
	}
	now := toMillis(s.now())
	if _, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (username, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(username) DO NOTHING`,
		username,
		passwordHash,
		now,
		now,
	); err != nil {
		return storage.User{}, fmt.Errorf("ensure user: %w", err)
	}
	return s.GetUserByUsername(ctx, username)
}

// UpdateUserPassword replaces an account's password hash.
func (s *Store) UpdateUserPassword(ctx context.Context, id string, passwordHash string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	rowID, ok := parseID(id)
	if !ok {
		return storage.ErrNotFound
	}
	passwordHash = strings.TrimSpace(passwordHash)
	if passwordHash == "" {
		return fmt.Errorf("%w: password hash is required", storage.ErrInvalid)
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash,
		toMillis(s.now()),
		rowID,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return requireAffected(result, "update user password")
}

var _ storage.UserStore = (*Store)(nil)
