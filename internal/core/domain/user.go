package domain

import (
	"errors"
	"time"
)

// Role is the binary access level used for authorization decisions.
const (
	RoleCitizen  = "citizen"
	RoleEmployee = "employee"
)

// Account status values. Only active accounts may log in.
const (
	AccountActive   = "active"
	AccountInactive = "inactive"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignup      = errors.New("invalid signup data")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrStoreUnavailable   = errors.New("credential store unavailable")
)

// User is a persisted citizen or employee account.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Department   string    `json:"department,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the two supported access levels.
func ValidRole(role string) bool {
	return role == RoleCitizen || role == RoleEmployee
}
