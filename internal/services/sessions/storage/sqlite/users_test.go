package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
)

func TestEnsureUserKeepsExistingHash(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	first, err := store.EnsureUser(ctx, " rider ", "hash-one")
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if first.ID != "1" || first.Username != "rider" {
		t.Fatalf("user = %+v, want id 1 rider", first)
	}

	second, err := store.EnsureUser(ctx, "rider", "hash-two")
	if err != nil {
		t.Fatalf("EnsureUser() second error = %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("ID = %q, want %q", second.ID, first.ID)
	}
	if second.PasswordHash != "hash-one" {
		t.Fatalf("PasswordHash = %q, want %q", second.PasswordHash, "hash-one")
	}
}

func TestEnsureUserRequiresFields(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, tc := range []struct {
		name     string
		username string
		hash     string
	}{
		{name: "missing username", username: " ", hash: "hash"},
		{name: "missing hash", username: "rider", hash: ""},
	} {
		if _, err := store.EnsureUser(context.Background(), tc.username, tc.hash); !errors.Is(err, storage.ErrInvalid) {
			t.Fatalf("%s: EnsureUser() error = %v, want ErrInvalid", tc.name, err)
		}
	}
}

func TestGetUserByUsernameMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetUserByUsername(context.Background(), "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetUserByUsername() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateUserPasswordPersists(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	user, err := store.EnsureUser(ctx, "rider", "hash-one")
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if err := store.UpdateUserPassword(ctx, user.ID, "hash-two"); err != nil {
		t.Fatalf("UpdateUserPassword() error = %v", err)
	}
	got, err := store.GetUserByUsername(ctx, "rider")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if got.PasswordHash != "hash-two" {
		t.Fatalf("PasswordHash = %q, want %q", got.PasswordHash, "hash-two")
	}

	for _, id := range []string{"2", "01", "x"} {
		if err := store.UpdateUserPassword(ctx, id, "hash-three"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("UpdateUserPassword(%q) error = %v, want ErrNotFound", id, err)
		}
	}
	if err := store.UpdateUserPassword(ctx, user.ID, " "); !errors.Is(err, storage.ErrInvalid) {
		t.Fatalf("UpdateUserPassword(blank) error = %v, want ErrInvalid", err)
	}
}
