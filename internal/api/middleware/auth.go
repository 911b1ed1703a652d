package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/urbaneye/civic-issue-system/internal/api/metrics"
	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

// Principal is the request-scoped identity derived from a verified token.
// It is rebuilt on every request and discarded with it; nothing is shared
// between concurrent requests.
type Principal struct {
	UserID      string
	Role        string
	PhoneNumber string
	FullName    string
}

const principalContextKey = "auth.principal"

// Local failures preceding token verification.
var (
	errMissingCredential = errors.New("missing authorization header")
	errMalformedHeader   = errors.New("malformed authorization header")
)

// genericAuthDetail is the only failure message the HTTP boundary exposes.
// The taxonomy (expired vs malformed vs missing subject) stays in logs and
// metrics so callers cannot probe which check failed.
const genericAuthDetail = "could not validate credentials"

// Authenticate extracts the bearer token, verifies it, and injects a
// Principal into the request context. Every failure collapses to a 401 with
// a WWW-Authenticate: Bearer challenge.
func Authenticate(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := authenticate(c, tokens)
			if err != nil {
				reason := failureReason(err)
				log.Debug().Err(err).
					Str("reason", reason).
					Str("path", c.Path()).
					Msg("authentication rejected")
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()

				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, genericAuthDetail)
			}

			c.Set(principalContextKey, p)
			return next(c)
		}
	}
}

// OptionalAuthenticate is the soft-fail variant used by endpoints that behave
// differently for anonymous and authenticated callers. Any failure, whether a
// missing header, a malformed header, or a bad token, is treated as "no user";
// it never rejects the request.
func OptionalAuthenticate(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p, err := authenticate(c, tokens); err == nil {
				c.Set(principalContextKey, p)
			}
			return next(c)
		}
	}
}

// RequireRole composes after Authenticate and enforces the binary role split.
// Role mismatch is a legitimate authorization decision, so unlike credential
// failures it is reported distinctly as 403.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := GetPrincipal(c)
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, genericAuthDetail)
			}
			if p.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, role+" access required")
			}
			return next(c)
		}
	}
}

// GetPrincipal returns the verified principal for this request, if any.
func GetPrincipal(c echo.Context) (*Principal, bool) {
	p, ok := c.Get(principalContextKey).(*Principal)
	return p, ok && p != nil
}

func authenticate(c echo.Context, tokens ports.TokenService) (*Principal, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return nil, errMissingCredential
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, errMalformedHeader
	}

	claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	return &Principal{
		UserID:      claims.Subject,
		Role:        claims.Role,
		PhoneNumber: claims.PhoneNumber,
		FullName:    claims.FullName,
	}, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, errMissingCredential):
		return "missing_credential"
	case errors.Is(err, errMalformedHeader):
		return "malformed_header"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed_token"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenMissingSubject):
		return "missing_subject"
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return "invalid_signature"
	default:
		return "verification_failed"
	}
}
