package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tribopay/pix_admin_backend/internal/apperrors"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/dto"
)

// paymentDateLayout is the wire format the panel and gateway use for dates.
const paymentDateLayout = "02/01/2006"

// pixService initiates PIX OUT transfers and tracks their status. Every
// request is persisted with the gateway's raw response, success or not, so
// the history is complete even for rejected transfers.
type pixService struct {
	BaseService
	accountRepo portsrepo.BankAccountReader
	pixRepo     portsrepo.PixRepository
	gateway     portssvc.BankingGateway
	audit       portssvc.AuditSvc
}

func NewPixService(
	accountRepo portsrepo.BankAccountReader,
	pixRepo portsrepo.PixRepository,
	gateway portssvc.BankingGateway,
	audit portssvc.AuditSvc,
) portssvc.PixSvcFacade {
	return &pixService{accountRepo: accountRepo, pixRepo: pixRepo, gateway: gateway, audit: audit}
}

var _ portssvc.PixSvcFacade = (*pixService)(nil)

// CreatePixOut initiates an outbound transfer. The destination is either a
// saved account or the ad-hoc to* fields; the resolved routing is denormalized
// into the stored request so history survives account edits.
func (s *pixService) CreatePixOut(ctx context.Context, req dto.CreatePixOutRequest, actor domain.Actor) (*domain.PixOutRequest, error) {
	if !req.Value.IsPositive() {
		return nil, fmt.Errorf("%w: value must be positive", apperrors.ErrValidation)
	}
	paymentDate, err := time.Parse(paymentDateLayout, req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: paymentDate must be DD/MM/YYYY", apperrors.ErrValidation)
	}

	fromAccount, err := s.accountRepo.FindAccountByID(ctx, req.FromAccountID)
	if err != nil {
		return nil, fmt.Errorf("source account: %w", err)
	}

	dest, err := s.resolveDestination(ctx, req)
	if err != nil {
		return nil, err
	}

	params := portssvc.PixOutParams{
		From: portssvc.AccountRouting{
			Bank:    fromAccount.Bank,
			Branch:  fromAccount.Branch,
			Account: fromAccount.Account,
			Digit:   fromAccount.Digit,
		},
		To: portssvc.AccountRouting{
			Bank:    dest.bank,
			Branch:  dest.branch,
			Account: dest.account,
			Digit:   dest.digit,
		},
		ToName:        dest.name,
		ToTaxNumber:   dest.taxNumber,
		ToAccountKind: dest.accountKind,
		Value:         req.Value,
		PaymentDate:   paymentDate,
		Identifier:    uuid.NewString(),
		Description:   req.Description,
	}

	record := domain.PixOutRequest{
		RequestID:      uuid.NewString(),
		Identifier:     params.Identifier,
		Value:          req.Value,
		PaymentDate:    paymentDate,
		Description:    req.Description,
		FromAccountID:  fromAccount.AccountID,
		ToAccountID:    dest.accountID,
		ToName:         dest.name,
		ToTaxNumber:    dest.taxNumber,
		ToBank:         dest.bank,
		ToBranch:       dest.branch,
		ToAccount:      dest.account,
		ToAccountDigit: dest.digit,
		Status:         domain.PixFailed,
		CreatedBy:      actor.UserID,
		CreatedAt:      time.Now(),
	}

	out, err := s.gateway.GeneratePixOut(ctx, params)
	if err != nil {
		s.LogError(ctx, err, "PIX OUT gateway call failed", slog.String("identifier", params.Identifier))
		record.ErrorDescription = err.Error()
	} else {
		record.DocumentNumber = out.DocumentNumber
		record.ReceiptURL = out.ReceiptURL
		record.RawResponseJSON = out.Raw
		record.ErrorCode = out.ErrorCode
		record.ErrorDescription = out.ErrorDescription
		if out.Success {
			record.Status = domain.PixSuccess
		}
	}

	if saveErr := s.pixRepo.SavePixOut(ctx, record); saveErr != nil {
		s.LogError(ctx, saveErr, "Failed to persist PIX OUT request", slog.String("identifier", record.Identifier))
		return nil, fmt.Errorf("failed to persist pix out request: %w", saveErr)
	}

	s.LogInfo(ctx, "PIX OUT created",
		slog.String("request_id", record.RequestID),
		slog.String("document_number", record.DocumentNumber),
		slog.String("status", string(record.Status)),
		slog.String("value", record.Value.String()))
	s.audit.Record(ctx, actor, domain.AuditPixOutCreated, "pix_out_request", record.RequestID, map[string]any{
		"document_number": record.DocumentNumber,
		"value":           record.Value.String(),
		"status":          string(record.Status),
	})
	return &record, nil
}

type pixDestination struct {
	accountID   string
	name        string
	taxNumber   string
	bank        string
	branch      string
	account     string
	digit       string
	accountKind string
}

func (s *pixService) resolveDestination(ctx context.Context, req dto.CreatePixOutRequest) (pixDestination, error) {
	if req.ToAccountID != "" {
		toAccount, err := s.accountRepo.FindAccountByID(ctx, req.ToAccountID)
		if err != nil {
			return pixDestination{}, fmt.Errorf("destination account: %w", err)
		}
		return pixDestination{
			accountID:   toAccount.AccountID,
			name:        toAccount.HolderName,
			taxNumber:   toAccount.TaxNumber,
			bank:        toAccount.Bank,
			branch:      toAccount.Branch,
			account:     toAccount.Account,
			digit:       toAccount.Digit,
			accountKind: toAccount.AccountKind,
		}, nil
	}

	if req.ToName == "" || req.ToBank == "" || req.ToBranch == "" || req.ToAccount == "" {
		return pixDestination{}, fmt.Errorf("%w: destination requires toAccountId or toName, toBank, toBranch and toAccount", apperrors.ErrValidation)
	}
	return pixDestination{
		name:        req.ToName,
		taxNumber:   req.ToTaxNumber,
		bank:        req.ToBank,
		branch:      req.ToBranch,
		account:     req.ToAccount,
		digit:       req.ToAccountDigit,
		accountKind: "0",
	}, nil
}

// GetPixOutStatus re-queries the gateway for the current status of a transfer
// and overwrites the stored status, raw response and error fields.
func (s *pixService) GetPixOutStatus(ctx context.Context, documentNumber string, actor domain.Actor) (*domain.PixOutRequest, error) {
	record, err := s.pixRepo.FindPixOutByDocumentNumber(ctx, documentNumber)
	if err != nil {
		return nil, err
	}

	fromAccount, err := s.accountRepo.FindAccountByID(ctx, record.FromAccountID)
	if err != nil {
		return nil, fmt.Errorf("source account: %w", err)
	}

	out, err := s.gateway.GetPixOutByID(ctx, documentNumber, portssvc.AccountRouting{
		Bank:    fromAccount.Bank,
		Branch:  fromAccount.Branch,
		Account: fromAccount.Account,
		Digit:   fromAccount.Digit,
	})
	if err != nil {
		s.LogError(ctx, err, "PIX OUT status query failed", slog.String("document_number", documentNumber))
		return nil, fmt.Errorf("failed to query pix out status: %w", err)
	}

	record.Status = domain.PixFailed
	if out.Success {
		record.Status = domain.PixSuccess
	}
	if out.ReceiptURL != "" {
		record.ReceiptURL = out.ReceiptURL
	}
	record.RawResponseJSON = out.Raw
	record.ErrorCode = out.ErrorCode
	record.ErrorDescription = out.ErrorDescription

	if err := s.pixRepo.UpdatePixOutStatus(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update PIX OUT status", slog.String("request_id", record.RequestID))
		return nil, fmt.Errorf("failed to update pix out status: %w", err)
	}

	s.audit.Record(ctx, actor, domain.AuditPixStatusChecked, "pix_out_request", record.RequestID, map[string]any{
		"document_number": documentNumber,
		"status":          string(record.Status),
	})
	return record, nil
}

// ListPixOut retrieves a page of transfer history, newest first.
func (s *pixService) ListPixOut(ctx context.Context, limit int, offset int) ([]domain.PixOutRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.pixRepo.ListPixOut(ctx, limit, offset)
}

// GetPixKeys lists the PIX keys registered for a saved account.
func (s *pixService) GetPixKeys(ctx context.Context, accountID string, actor domain.Actor) (*portssvc.PixKeysResult, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	keys, err := s.gateway.GetPixKeys(ctx, portssvc.AccountRouting{
		Bank:    account.Bank,
		Branch:  account.Branch,
		Account: account.Account,
		Digit:   account.Digit,
	})
	if err != nil {
		s.LogError(ctx, err, "PIX keys query failed", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to query pix keys: %w", err)
	}

	s.audit.Record(ctx, actor, domain.AuditPixKeysConsulted, "bank_account", accountID, nil)
	return keys, nil
}
