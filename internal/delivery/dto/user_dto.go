package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserPayload is the nested identity block accepted inside profile payloads.
// Every field is optional; an absent payload makes the orchestrator
// synthesize a placeholder identity instead.
type UserPayload struct {
	Username string `json:"username" validate:"omitempty,min=3,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=4"`
}

// Request DTOs (admin user management)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	IsAdmin  *bool  `json:"is_admin" validate:"omitempty"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Response DTOs

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  *bool     `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
