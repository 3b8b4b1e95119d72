package repositories

import (
	"context"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// UserRepository defines persistence operations for panel operators.
type UserRepository interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves an active user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
