package handler

import "github.com/urbaneye/civic-issue-system/internal/core/domain"

type signupRequest struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Password    string `json:"password" validate:"required,min=4"`
	Role        string `json:"role" validate:"omitempty,oneof=citizen employee"`
	Department  string `json:"department,omitempty" validate:"omitempty,max=100"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Password    string `json:"password" validate:"required,min=4"`
}

type userResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Department  string `json:"department,omitempty"`
	Status      string `json:"status,omitempty"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        userResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Department:  u.Department,
		Status:      u.Status,
	}
}
