package ports

import (
	"context"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

// UserRepository is the boundary to the external credential store. Uniqueness
// of phone numbers is enforced by the store itself (unique index), not here.
type UserRepository interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
