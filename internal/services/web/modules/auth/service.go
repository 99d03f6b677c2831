package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sufni/dashboard/internal/services/sessions/storage"
	"github.com/sufni/dashboard/internal/services/web/module"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/storeerr"
)

// MinPasswordLength is the shortest password a password change accepts.
const MinPasswordLength = 10

// UserGateway reads and updates operator accounts.
type UserGateway interface {
	GetUserByUsername(ctx context.Context, username string) (storage.User, error)
	UpdateUserPassword(ctx context.Context, id string, passwordHash string) error
}

var _ UserGateway = storage.UserStore(nil)

// TokenIssuer mints access tokens for a signed-in user.
type TokenIssuer interface {
	Issue(username string) (string, time.Time, error)
}

type grant struct {
	Token     string
	ExpiresAt time.Time
}

type userJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type service struct {
	users    UserGateway
	tokens   TokenIssuer
	hashCost int
}

func newService(users UserGateway, tokens TokenIssuer, hashCost int) service {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return service{users: users, tokens: tokens, hashCost: hashCost}
}

// unknownUserHash is compared against when no account matches so a wrong
// username costs the same bcrypt work as a wrong password.
var unknownUserHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("no such operator"), bcrypt.DefaultCost)
	return hash
})

// login checks username and password and issues an access token.
func (s service) login(ctx context.Context, username string, password string) (grant, error) {
	if s.tokens == nil || s.users == nil {
		return grant{}, errSignInUnavailable()
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return grant{}, errInvalidCredentials()
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(unknownUserHash(), []byte(password))
			return grant{}, errInvalidCredentials()
		}
		return grant{}, storeerr.Map(err, "user")
	}
	if err := checkPassword(user, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return grant{}, errInvalidCredentials()
		}
		return grant{}, err
	}

	token, expiresAt, err := s.tokens.Issue(user.Username)
	if err != nil {
		return grant{}, err
	}
	return grant{Token: token, ExpiresAt: expiresAt}, nil
}

// currentUser returns the account behind a signed-in viewer.
func (s service) currentUser(ctx context.Context, viewer module.Viewer) (userJSON, error) {
	user, err := s.viewerAccount(ctx, viewer)
	if err != nil {
		return userJSON{}, err
	}
	return userJSON{ID: user.ID, Username: user.Username}, nil
}

// changePassword replaces the viewer's password once the old one checks out.
func (s service) changePassword(ctx context.Context, viewer module.Viewer, oldPassword string, newPassword string) error {
	user, err := s.viewerAccount(ctx, viewer)
	if err != nil {
		return err
	}
	if err := checkPassword(user, oldPassword); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.EK(apperrors.KindForbidden, "password.wrong", "wrong password")
		}
		return err
	}
	if len([]rune(newPassword)) < MinPasswordLength {
		return apperrors.EK(apperrors.KindInvalidInput, "password.insecure", "password is not secure")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperrors.Wrap(apperrors.KindInvalidInput, "password is too long", err)
		}
		return apperrors.Wrap(apperrors.KindUnknown, "hash password", err)
	}
	return storeerr.Map(s.users.UpdateUserPassword(ctx, user.ID, string(hash)), "user")
}

func (s service) viewerAccount(ctx context.Context, viewer module.Viewer) (storage.User, error) {
	if s.users == nil {
		return storage.User{}, errSignInUnavailable()
	}
	if !viewer.SignedIn() {
		return storage.User{}, errSignInRequired()
	}
	user, err := s.users.GetUserByUsername(ctx, viewer.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.User{}, errSignInRequired()
		}
		return storage.User{}, storeerr.Map(err, "user")
	}
	return user, nil
}

// checkPassword returns bcrypt.ErrMismatchedHashAndPassword for a wrong
// password and a typed error when the stored hash itself is unusable.
func checkPassword(user storage.User, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err == nil || errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return err
	}
	return apperrors.Wrap(apperrors.KindUnavailable, "password hash is unusable", err)
}

func errSignInUnavailable() error {
	return apperrors.EK(apperrors.KindUnavailable, "error.unavailable", "sign-in is not configured")
}

func errSignInRequired() error {
	return apperrors.E(apperrors.KindUnauthorized, "sign-in required")
}

func errInvalidCredentials() error {
	return apperrors.EK(apperrors.KindUnauthorized, "login.invalid", "invalid username or password")
}
