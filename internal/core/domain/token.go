package domain

import (
	"errors"
	"time"
)

// Token verification failures. The HTTP boundary collapses all of these to a
// generic 401 so callers cannot probe which check failed; the distinction is
// kept for logging and metrics.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMissingSubject   = errors.New("token missing subject")
)

// Claims is the verified content of an access token. Subject is the user id
// and is mandatory: a token without one is rejected even when the signature
// checks out.
type Claims struct {
	Subject     string
	Role        string
	PhoneNumber string
	FullName    string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}
