package ports

import (
	"context"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

// SignupInput carries the fields a new account is created from.
type SignupInput struct {
	FullName    string
	PhoneNumber string
	Password    string
	Role        string
	Department  string
}

// AuthResult is returned by both signup and login: a freshly issued token
// plus the account it is bound to.
type AuthResult struct {
	Token     string
	ExpiresIn int // seconds
	User      *domain.User
}

// AuthService implements the signup and login flows.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, phone, password string) (*AuthResult, error)
}
