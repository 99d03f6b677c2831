// Package storage defines persistence contracts for recorded sessions, the
// DAQ boards that record them and the dashboard operator accounts.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested session record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrInvalid indicates a record failed store-level validation.
	ErrInvalid = errors.New("invalid record")
)

// Session stores one recorded telemetry session.
type Session struct {
	ID          string
	Name        string
	Description string
	// Timestamp is the recording start time in UTC.
	Timestamp time.Time
	// Data is the processed recording payload. List queries leave it nil.
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionStore persists session records.
type SessionStore interface {
	// ListSessions returns every session newest first, without Data.
	ListSessions(ctx context.Context) ([]Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	CreateSession(ctx context.Context, session Session) (string, error)
	UpdateSession(ctx context.Context, id string, name string, description string) error
	DeleteSession(ctx context.Context, id string) error
}

// Board is a DAQ unit that uploads sessions.
type Board struct {
	// ID is the board's hardware identifier.
	ID string
	// SetupID links the board to a bike setup; nil when unassigned.
	SetupID   *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BoardStore persists boards.
type BoardStore interface {
	ListBoards(ctx context.Context) ([]Board, error)
	// PutBoard inserts the board or replaces the stored one with the same ID.
	PutBoard(ctx context.Context, board Board) error
	DeleteBoard(ctx context.Context, id string) error
}

// User is a dashboard operator account.
type User struct {
	ID       string
	Username string
	// PasswordHash is a bcrypt hash.
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserStore persists operator accounts.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (User, error)
	// EnsureUser creates the account when the username is free and returns
	// the stored account either way. An existing hash is never replaced.
	EnsureUser(ctx context.Context, username string, passwordHash string) (User, error)
	UpdateUserPassword(ctx context.Context, id string, passwordHash string) error
}
