// Package accesstoken issues and verifies the signed access cookie that
// grants full access to the dashboard.
package accesstoken

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sufni/dashboard/internal/services/web/module"
	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
	"github.com/sufni/dashboard/internal/services/web/platform/requestmeta"
)

// CookieName is the access cookie name.
const CookieName = "sufni_access"

// Issuer is the iss claim stamped on every access token.
const Issuer = "sufni-dashboard"

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

const minSecretLength = 16

// Principal is the verified identity carried by an access token.
type Principal struct {
	Username   string
	FullAccess bool
	ExpiresAt  time.Time
}

type claims struct {
	jwt.RegisteredClaims
	FullAccess bool `json:"full_access"`
}

// Manager signs and verifies HS256 access tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a token manager. The secret must be at least 16 bytes.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	secret = strings.TrimSpace(secret)
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("access token secret must be at least %d bytes", minSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a full-access token for username.
func (m *Manager) Issue(username string) (string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", time.Time{}, apperrors.E(apperrors.KindInvalidInput, "username is required")
	}
	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		FullAccess: true,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates an access token.
func (m *Manager) Verify(raw string) (Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Principal{}, apperrors.E(apperrors.KindUnauthorized, "access token is required")
	}
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Principal{}, mapJWTError(err)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Principal{}, apperrors.E(apperrors.KindUnauthorized, "access token subject is required")
	}
	return Principal{
		Username:   parsed.Subject,
		FullAccess: parsed.FullAccess,
		ExpiresAt:  parsed.ExpiresAt.Time.UTC(),
	}, nil
}

// ResolveViewer maps the request's access cookie to a viewer. Missing or
// invalid cookies resolve to an anonymous read-only viewer.
func (m *Manager) ResolveViewer(r *http.Request) module.Viewer {
	if m == nil {
		return module.Viewer{}
	}
	raw, ok := ReadCookie(r)
	if !ok {
		return module.Viewer{}
	}
	principal, err := m.Verify(raw)
	if err != nil {
		return module.Viewer{}
	}
	return module.Viewer{Username: principal.Username, FullAccess: principal.FullAccess}
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.KindUnauthorized, "access token is expired", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.KindUnauthorized, "access token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.Wrap(apperrors.KindUnauthorized, "access token alg is invalid", err)
	default:
		return apperrors.Wrap(apperrors.KindUnauthorized, "access token is invalid", err)
	}
}

// ReadCookie returns the trimmed access cookie value when present.
func ReadCookie(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// WriteCookie sets the access cookie for the current request context.
func WriteCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the access cookie for the current request context.
func ClearCookie(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
