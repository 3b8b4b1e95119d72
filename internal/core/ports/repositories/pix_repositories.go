package repositories

import (
	"context"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// PixRepository defines persistence for PIX OUT requests.
type PixRepository interface {
	// SavePixOut persists a new PIX OUT request with the gateway's initial response.
	SavePixOut(ctx context.Context, request domain.PixOutRequest) error

	// FindPixOutByDocumentNumber retrieves a request by the gateway document number.
	FindPixOutByDocumentNumber(ctx context.Context, documentNumber string) (*domain.PixOutRequest, error)

	// UpdatePixOutStatus overwrites status, raw response and error fields after
	// a status re-query against the gateway.
	UpdatePixOutStatus(ctx context.Context, request domain.PixOutRequest) error

	// ListPixOut retrieves a page of requests, newest first.
	ListPixOut(ctx context.Context, limit int, offset int) ([]domain.PixOutRequest, error)
}
