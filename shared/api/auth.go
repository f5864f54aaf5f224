package api

import "github.com/studyhub-dev/studyhub/shared/domain"

// Request DTOs

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty"`
}

type SetAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

// Response DTOs

// MessageResponse is the body of every error and of plain acknowledgements.
type MessageResponse struct {
	Msg string `json:"msg"`
}

type LoginResponse struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}

type UserResponse struct {
	User domain.User `json:"user"`
}

type UpdateUserResponse struct {
	Msg  string      `json:"msg"`
	User domain.User `json:"user"`
}
