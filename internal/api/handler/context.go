package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urbaneye/civic-issue-system/internal/api/middleware"
)

// requirePrincipal extracts the principal injected by the Authenticate
// middleware. Its absence on a protected route means the route was wired
// without the middleware; treat it as unauthenticated rather than panicking.
func requirePrincipal(c echo.Context) (*middleware.Principal, error) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
