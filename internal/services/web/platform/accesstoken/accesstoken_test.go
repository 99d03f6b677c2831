package accesstoken

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/sufni/dashboard/internal/services/web/platform/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewManagerRejectsShortSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewManager("short", time.Hour); err == nil {
		t.Fatal("expected short secret error")
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	token, expiresAt, err := manager.Issue(" rider ")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if want := time.Date(2024, time.March, 1, 13, 0, 0, 0, time.UTC); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", expiresAt, want)
	}
	principal, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if principal.Username != "rider" {
		t.Fatalf("Username = %q, want %q", principal.Username, "rider")
	}
	if !principal.FullAccess {
		t.Fatal("expected full access")
	}
}

func TestIssueRequiresUsername(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, time.Now())
	if _, _, err := manager.Issue(" "); apperrors.KindOf(err) != apperrors.KindInvalidInput {
		t.Fatalf("Issue() kind = %q, want %q", apperrors.KindOf(err), apperrors.KindInvalidInput)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	manager := newTestManager(t, now)
	token, _, err := manager.Issue("rider")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	manager.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = manager.Verify(token)
	if apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("Verify() kind = %q, want %q", apperrors.KindOf(err), apperrors.KindUnauthorized)
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("Verify() error = %q, want expired", err.Error())
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	now := time.Now()
	other, err := NewManager("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	token, _, err := other.Issue("intruder")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := newTestManager(t, now).Verify(token); apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("Verify() kind = %q, want %q", apperrors.KindOf(err), apperrors.KindUnauthorized)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	now := time.Now()
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   "intruder",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		FullAccess: true,
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	if _, err := newTestManager(t, now).Verify(raw); err == nil {
		t.Fatal("expected none algorithm to be rejected")
	}
}

func TestResolveViewer(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, time.Now())
	token, expiresAt, err := manager.Issue("rider")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rr := httptest.NewRecorder()
	WriteCookie(rr, httptest.NewRequest(http.MethodPost, "/auth/login", nil), token, expiresAt)
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v, want one http-only %s cookie", cookies, CookieName)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	req.AddCookie(cookies[0])
	viewer := manager.ResolveViewer(req)
	if !viewer.FullAccess || viewer.Username != "rider" {
		t.Fatalf("viewer = %+v, want full access rider", viewer)
	}

	anonymous := manager.ResolveViewer(httptest.NewRequest(http.MethodGet, "/dashboard/", nil))
	if anonymous.FullAccess || anonymous.SignedIn() {
		t.Fatalf("anonymous viewer = %+v, want read-only", anonymous)
	}

	tampered := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	tampered.AddCookie(&http.Cookie{Name: CookieName, Value: token + "x"})
	if manager.ResolveViewer(tampered).FullAccess {
		t.Fatal("expected tampered cookie to resolve without full access")
	}
}

func TestClearCookieExpires(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	ClearCookie(rr, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want one expired cookie", cookies)
	}
}

func newTestManager(t *testing.T, now time.Time) *Manager {
	t.Helper()
	manager, err := NewManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	manager.now = func() time.Time { return now }
	return manager
}
