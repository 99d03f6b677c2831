package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
	"github.com/sufni/dashboard/internal/services/web/module"
)

type fakeIssuer struct {
	mu     sync.Mutex
	issued []string
	err    error
}

func (f *fakeIssuer) Issue(username string) (string, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	f.issued = append(f.issued, username)
	return "token-for-" + username, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), nil
}

var errIssuerDown = errors.New("issuer down")

type fakeUsers struct {
	mu sync.Mutex

	users     map[string]storage.User
	getErr    error
	updateErr error
	updates   []string
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (storage.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return storage.User{}, f.getErr
	}
	user, ok := f.users[username]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) UpdateUserPassword(_ context.Context, id string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for username, user := range f.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			f.users[username] = user
			f.updates = append(f.updates, id)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeUsers) hashOf(username string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[username].PasswordHash
}

// testUsers holds rider/s3cret-pass hashed at MinCost to keep tests fast.
func testUsers(t *testing.T) *fakeUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &fakeUsers{users: map[string]storage.User{
		"rider": {ID: "1", Username: "rider", PasswordHash: string(hash)},
	}}
}

func newTestService(users UserGateway, tokens TokenIssuer) service {
	return newService(users, tokens, bcrypt.MinCost)
}

func signedInResolvers() module.Resolvers {
	return module.Resolvers{Viewer: func(*http.Request) module.Viewer {
		return module.Viewer{Username: "rider", FullAccess: true}
	}}
}
