package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

// ProfileReader is the slice of UserService this handler needs.
type ProfileReader interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type UserHandler struct {
	users ProfileReader
}

func NewUserHandler(users ProfileReader) *UserHandler {
	return &UserHandler{users: users}
}

// Profile returns the authenticated caller's account record. The principal
// carries only token claims; this reads the live record from the store.
//
// @Summary      Get my profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
