package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tribopay/pix_admin_backend/internal/apperrors"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	"github.com/tribopay/pix_admin_backend/internal/models"
)

type PgxPixRepository struct {
	pool *pgxpool.Pool
}

// newPgxPixRepository creates a new repository for PIX OUT requests.
func newPgxPixRepository(pool *pgxpool.Pool) portsrepo.PixRepository {
	return &PgxPixRepository{pool: pool}
}

var _ portsrepo.PixRepository = (*PgxPixRepository)(nil)

func toModelPixOut(d domain.PixOutRequest) models.PixOutRequest {
	m := models.PixOutRequest{
		RequestID:        d.RequestID,
		DocumentNumber:   d.DocumentNumber,
		Identifier:       d.Identifier,
		Value:            d.Value,
		PaymentDate:      d.PaymentDate,
		Description:      d.Description,
		FromAccountID:    d.FromAccountID,
		ToName:           d.ToName,
		ToTaxNumber:      d.ToTaxNumber,
		ToBank:           d.ToBank,
		ToBranch:         d.ToBranch,
		ToAccount:        d.ToAccount,
		ToAccountDigit:   d.ToAccountDigit,
		Status:           string(d.Status),
		ReceiptURL:       d.ReceiptURL,
		RawResponseJSON:  d.RawResponseJSON,
		ErrorCode:        d.ErrorCode,
		ErrorDescription: d.ErrorDescription,
		CreatedBy:        d.CreatedBy,
		CreatedAt:        d.CreatedAt,
	}
	if d.ToAccountID != "" {
		m.ToAccountID = sql.NullString{String: d.ToAccountID, Valid: true}
	}
	return m
}

func toDomainPixOut(m models.PixOutRequest) domain.PixOutRequest {
	return domain.PixOutRequest{
		RequestID:        m.RequestID,
		DocumentNumber:   m.DocumentNumber,
		Identifier:       m.Identifier,
		Value:            m.Value,
		PaymentDate:      m.PaymentDate,
		Description:      m.Description,
		FromAccountID:    m.FromAccountID,
		ToAccountID:      m.ToAccountID.String,
		ToName:           m.ToName,
		ToTaxNumber:      m.ToTaxNumber,
		ToBank:           m.ToBank,
		ToBranch:         m.ToBranch,
		ToAccount:        m.ToAccount,
		ToAccountDigit:   m.ToAccountDigit,
		Status:           domain.PixStatus(m.Status),
		ReceiptURL:       m.ReceiptURL,
		RawResponseJSON:  m.RawResponseJSON,
		ErrorCode:        m.ErrorCode,
		ErrorDescription: m.ErrorDescription,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

const pixOutColumns = `request_id, document_number, identifier, value, payment_date, description, from_account_id, to_account_id, to_name, to_tax_number, to_bank, to_branch, to_account, to_account_digit, status, receipt_url, raw_response_json, error_code, error_description, created_by, created_at`

func scanPixOut(row pgx.Row) (models.PixOutRequest, error) {
	var m models.PixOutRequest
	err := row.Scan(
		&m.RequestID,
		&m.DocumentNumber,
		&m.Identifier,
		&m.Value,
		&m.PaymentDate,
		&m.Description,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.ToName,
		&m.ToTaxNumber,
		&m.ToBank,
		&m.ToBranch,
		&m.ToAccount,
		&m.ToAccountDigit,
		&m.Status,
		&m.ReceiptURL,
		&m.RawResponseJSON,
		&m.ErrorCode,
		&m.ErrorDescription,
		&m.CreatedBy,
		&m.CreatedAt,
	)
	return m, err
}

// SavePixOut persists a new PIX OUT request with the gateway's initial response.
func (r *PgxPixRepository) SavePixOut(ctx context.Context, request domain.PixOutRequest) error {
	m := toModelPixOut(request)

	query := `
		INSERT INTO pix_out_requests (` + pixOutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.pool.Exec(ctx, query,
		m.RequestID,
		m.DocumentNumber,
		m.Identifier,
		m.Value,
		m.PaymentDate,
		m.Description,
		m.FromAccountID,
		m.ToAccountID,
		m.ToName,
		m.ToTaxNumber,
		m.ToBank,
		m.ToBranch,
		m.ToAccount,
		m.ToAccountDigit,
		m.Status,
		m.ReceiptURL,
		m.RawResponseJSON,
		m.ErrorCode,
		m.ErrorDescription,
		m.CreatedBy,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: pix out request with identifier %s already exists", apperrors.ErrDuplicate, m.Identifier)
		}
		return fmt.Errorf("failed to save pix out request %s: %w", m.RequestID, err)
	}
	return nil
}

// FindPixOutByDocumentNumber retrieves a request by the gateway document number.
func (r *PgxPixRepository) FindPixOutByDocumentNumber(ctx context.Context, documentNumber string) (*domain.PixOutRequest, error) {
	query := `
		SELECT ` + pixOutColumns + `
		FROM pix_out_requests
		WHERE document_number = $1;
	`
	m, err := scanPixOut(r.pool.QueryRow(ctx, query, documentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pix out request by document number %s: %w", documentNumber, err)
	}
	req := toDomainPixOut(m)
	return &req, nil
}

// UpdatePixOutStatus overwrites status, raw response and error fields after a
// status re-query against the gateway.
func (r *PgxPixRepository) UpdatePixOutStatus(ctx context.Context, request domain.PixOutRequest) error {
	query := `
		UPDATE pix_out_requests
		SET status = $2, receipt_url = $3, raw_response_json = $4, error_code = $5, error_description = $6
		WHERE request_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		request.RequestID,
		string(request.Status),
		request.ReceiptURL,
		request.RawResponseJSON,
		request.ErrorCode,
		request.ErrorDescription,
	)
	if err != nil {
		return fmt.Errorf("failed to update pix out request %s: %w", request.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListPixOut retrieves a page of requests, newest first.
func (r *PgxPixRepository) ListPixOut(ctx context.Context, limit int, offset int) ([]domain.PixOutRequest, error) {
	query := `
		SELECT ` + pixOutColumns + `
		FROM pix_out_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pix out requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.PixOutRequest, 0)
	for rows.Next() {
		m, err := scanPixOut(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pix out row: %w", err)
		}
		requests = append(requests, toDomainPixOut(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pix out rows: %w", err)
	}
	return requests, nil
}
