package ports

import (
	"time"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

// TokenService issues and verifies signed, time-bound access tokens.
//
// Issue stamps its own iat/exp from a single clock reading; any timestamps on
// the input claims are ignored. Verify returns one of the domain token errors
// (ErrTokenMalformed, ErrTokenInvalidSignature, ErrTokenExpired,
// ErrTokenMissingSubject) on failure.
type TokenService interface {
	Issue(claims domain.Claims) (string, error)
	Verify(token string) (*domain.Claims, error)
	TTL() time.Duration
}
