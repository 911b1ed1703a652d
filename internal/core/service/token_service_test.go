package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

const testSecret = "test-secret"

func testClaims() domain.Claims {
	return domain.Claims{
		Subject:     "u1",
		Role:        domain.RoleEmployee,
		PhoneNumber: "+911234567890",
		FullName:    "A",
	}
}

// signRaw builds a token outside the service so tests can control individual
// claims (missing sub, past exp, and so on).
func signRaw(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, 7*24*time.Hour)

	token, err := svc.Issue(testClaims())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got.Subject != "u1" || got.Role != domain.RoleEmployee {
		t.Fatalf("unexpected claims: %+v", got)
	}
	if got.PhoneNumber != "+911234567890" || got.FullName != "A" {
		t.Fatalf("unexpected identity claims: %+v", got)
	}
	if d := got.ExpiresAt.Sub(got.IssuedAt); d != 7*24*time.Hour {
		t.Fatalf("expected exp - iat of exactly 604800s, got %v", d)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService(testSecret, 0)
	if svc.TTL() != 7*24*time.Hour {
		t.Fatalf("expected 7 day default TTL, got %v", svc.TTL())
	}
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	now := time.Now().UTC()

	expired := signRaw(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"iat": now.Add(-time.Hour).Unix(),
		"exp": now.Add(-time.Second).Unix(),
	})
	if _, err := svc.Verify(expired); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	stillValid := signRaw(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"iat": now.Add(-time.Hour).Unix(),
		"exp": now.Add(time.Second).Unix(),
	})
	if _, err := svc.Verify(stillValid); err != nil {
		t.Fatalf("token with exp one second ahead should verify, got %v", err)
	}
}

func TestTokenService_SignatureTamper(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue(testClaims())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}

	// Flip one byte of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	foreign := signRaw(t, "other-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := svc.Verify(foreign); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestTokenService_WrongAlgorithm(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	hs512 := signRaw(t, testSecret, jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := svc.Verify(hs512); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature for HS512 token, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_MissingSubject(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	// Signature-valid token without a sub claim.
	noSub := signRaw(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"role": domain.RoleEmployee,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	if _, err := svc.Verify(noSub); !errors.Is(err, domain.ErrTokenMissingSubject) {
		t.Fatalf("expected ErrTokenMissingSubject, got %v", err)
	}
}

func TestTokenService_RoleDefaultsToCitizen(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	noRole := signRaw(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	claims, err := svc.Verify(noRole)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Role != domain.RoleCitizen {
		t.Fatalf("expected citizen fallback role, got %q", claims.Role)
	}
}
