package services

import (
	"context"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// UserSvcFacade exposes panel operator lookup and creation.
type UserSvcFacade interface {
	// GetUserByEmail retrieves an active user for credential verification.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// CreateUser persists a new user with an already-hashed password.
	CreateUser(ctx context.Context, user domain.User) error
}
