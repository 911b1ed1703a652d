package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// tokenClaims is the wire-level claim set inside the signed payload.
// sub/iat/exp come from the embedded registered claims.
type tokenClaims struct {
	Role        string `json:"role,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed access tokens. The secret is
// loaded once at startup and read-only afterwards, so concurrent use needs no
// synchronisation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the validity window applied to issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token bound to the given identity claims. iat and exp are
// stamped from a single clock reading so exp - iat equals the TTL exactly.
func (s *TokenService) Issue(claims domain.Claims) (string, error) {
	now := time.Now().UTC()
	tc := tokenClaims{
		Role:        claims.Role,
		PhoneNumber: claims.PhoneNumber,
		FullName:    claims.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and signature-checks a token, returning its claims.
//
// A token without a subject is rejected even when the signature is valid.
// A missing role falls back to citizen: this is a deliberate lowest-privilege
// default that downstream role checks rely on, not an accident.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	default:
		return nil, domain.ErrTokenInvalidSignature
	}

	if tc.Subject == "" {
		return nil, domain.ErrTokenMissingSubject
	}

	role := tc.Role
	if role == "" {
		role = domain.RoleCitizen
	}

	out := &domain.Claims{
		Subject:     tc.Subject,
		Role:        role,
		PhoneNumber: tc.PhoneNumber,
		FullName:    tc.FullName,
	}
	if tc.IssuedAt != nil {
		out.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		out.ExpiresAt = tc.ExpiresAt.Time
	}
	return out, nil
}
