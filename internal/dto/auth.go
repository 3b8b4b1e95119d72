package dto

import "github.com/tribopay/pix_admin_backend/internal/core/domain"

// LoginRequest carries the administrator credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserResponse is the public view of a panel operator.
type UserResponse struct {
	UserID string          `json:"userID"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
}

// LoginResponse returns the signed JWT together with the user it identifies.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
