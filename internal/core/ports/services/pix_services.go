package services

import (
	"context"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	"github.com/tribopay/pix_admin_backend/internal/dto"
)

// PixSvcFacade exposes PIX OUT operations against the banking gateway.
type PixSvcFacade interface {
	// CreatePixOut initiates an outbound transfer and persists the request
	// with the gateway's response, whatever the outcome.
	CreatePixOut(ctx context.Context, req dto.CreatePixOutRequest, actor domain.Actor) (*domain.PixOutRequest, error)

	// GetPixOutStatus re-queries the gateway for the current status of a
	// transfer and updates the stored request.
	GetPixOutStatus(ctx context.Context, documentNumber string, actor domain.Actor) (*domain.PixOutRequest, error)

	// ListPixOut retrieves a page of transfer history, newest first.
	ListPixOut(ctx context.Context, limit int, offset int) ([]domain.PixOutRequest, error)

	// GetPixKeys lists the PIX keys registered for a saved account.
	GetPixKeys(ctx context.Context, accountID string, actor domain.Actor) (*PixKeysResult, error)
}
