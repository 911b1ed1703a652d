package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/service"
)

const testSecret = "secret"

func newTokens() *service.TokenService {
	return service.NewTokenService(testSecret, time.Hour)
}

func issueToken(t *testing.T, role string) string {
	t.Helper()
	token, err := newTokens().Issue(domain.Claims{
		Subject:     "u1",
		Role:        role,
		PhoneNumber: "+911234567890",
		FullName:    "A",
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func newAuthContext(t *testing.T, authHeader string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	_, c, rec := newAuthContext(t, "Bearer "+issueToken(t, domain.RoleEmployee))

	called := false
	mw := Authenticate(newTokens(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		p, ok := GetPrincipal(c)
		if !ok {
			t.Fatalf("principal not set")
		}
		if p.UserID != "u1" || p.Role != domain.RoleEmployee {
			t.Fatalf("unexpected principal: %+v", p)
		}
		if p.PhoneNumber != "+911234567890" || p.FullName != "A" {
			t.Fatalf("identity claims not carried: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func rejectWith401(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e, c, rec := newAuthContext(t, authHeader)

	mw := Authenticate(newTokens(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer challenge, got %q", got)
	}
	return rec
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	rejectWith401(t, "")
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	rejectWith401(t, "Token abc")
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	rejectWith401(t, "Bearer not-a-token")
}

func TestAuthenticate_TamperedToken(t *testing.T) {
	token := issueToken(t, domain.RoleCitizen)
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	rejectWith401(t, "Bearer "+parts[0]+"."+parts[1]+"."+string(sig))
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := rejectWith401(t, "Bearer "+expired)

	// The failure taxonomy must not leak to the caller.
	if body := rec.Body.String(); strings.Contains(body, "expired") {
		t.Fatalf("response leaks failure reason: %s", body)
	}
	if !strings.Contains(rec.Body.String(), "could not validate credentials") {
		t.Fatalf("expected generic detail, got %s", rec.Body.String())
	}
}

func TestAuthenticate_MissingSubject(t *testing.T) {
	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": domain.RoleEmployee,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	rejectWith401(t, "Bearer "+noSub)
}

func TestOptionalAuthenticate_NeverRejects(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	headers := map[string]string{
		"absent header":    "",
		"malformed header": "Bearer",
		"wrong scheme":     "Basic dXNlcjpwdw==",
		"garbage token":    "Bearer junk",
		"expired token":    "Bearer " + expired,
	}

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			_, c, rec := newAuthContext(t, header)

			mw := OptionalAuthenticate(newTokens())
			handler := mw(func(c echo.Context) error {
				if _, ok := GetPrincipal(c); ok {
					t.Fatalf("expected no principal")
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("optional auth must not error, got %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestOptionalAuthenticate_ValidToken(t *testing.T) {
	_, c, _ := newAuthContext(t, "Bearer "+issueToken(t, domain.RoleCitizen))

	mw := OptionalAuthenticate(newTokens())
	handler := mw(func(c echo.Context) error {
		p, ok := GetPrincipal(c)
		if !ok || p.UserID != "u1" {
			t.Fatalf("expected principal, got %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
