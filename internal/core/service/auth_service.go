package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

// AuthService implements the signup and login flows: credential store lookups
// plus token issuance. Passwords are stored as bcrypt hashes only.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	if in.FullName == "" || in.PhoneNumber == "" || in.Password == "" {
		return nil, domain.ErrInvalidSignup
	}

	role := in.Role
	if role == "" {
		role = domain.RoleCitizen
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidSignup
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:     in.FullName,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
		Role:         role,
		Department:   in.Department,
		Status:       domain.AccountActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's unique index on phone_number is the authority on
	// duplicates; a pre-check here would only race.
	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("account created")
	return s.issue(created)
}

func (s *AuthService) Login(ctx context.Context, phone, password string) (*ports.AuthResult, error) {
	if phone == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		// Collapse "no such account" into the generic credential failure so
		// login cannot be used to enumerate phone numbers.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Status != domain.AccountActive {
		return nil, domain.ErrAccountInactive
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	token, err := s.tokens.Issue(domain.Claims{
		Subject:     user.ID,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
		FullName:    user.FullName,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.AuthResult{
		Token:     token,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}
