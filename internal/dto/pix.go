package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	"github.com/tribopay/pix_admin_backend/internal/utils"
)

// CreatePixOutRequest defines the data needed to initiate a PIX OUT transfer.
// The destination is either a saved account (toAccountId) or the full ad-hoc
// to* field set.
type CreatePixOutRequest struct {
	FromAccountID  string          `json:"fromAccountId" binding:"required,uuid"`
	ToAccountID    string          `json:"toAccountId" binding:"omitempty,uuid"`
	ToName         string          `json:"toName"`
	ToTaxNumber    string          `json:"toTaxNumber"`
	ToBank         string          `json:"toBank"`
	ToBranch       string          `json:"toBranch"`
	ToAccount      string          `json:"toAccount"`
	ToAccountDigit string          `json:"toAccountDigit"`
	Value          decimal.Decimal `json:"value" binding:"required"`
	PaymentDate    string          `json:"paymentDate" binding:"required"` // DD/MM/YYYY
	Description    string          `json:"description"`
}

// PixOutError carries the gateway error pair when a transfer fails.
type PixOutError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// PixOutData is the successful payload of a PIX OUT creation.
type PixOutData struct {
	ID             string `json:"id"`
	DocumentNumber string `json:"documentNumber"`
	Identifier     string `json:"identifier"`
	ReceiptURL     string `json:"receiptUrl,omitempty"`
	Status         string `json:"status"`
}

// PixOutResponse wraps the gateway outcome of a PIX OUT creation.
type PixOutResponse struct {
	Success bool         `json:"success"`
	Data    PixOutData   `json:"data"`
	Error   *PixOutError `json:"error,omitempty"`
}

// ToPixOutResponse converts a stored request to the creation response.
func ToPixOutResponse(req *domain.PixOutRequest) PixOutResponse {
	resp := PixOutResponse{
		Success: req.Status == domain.PixSuccess,
		Data: PixOutData{
			ID:             req.RequestID,
			DocumentNumber: req.DocumentNumber,
			Identifier:     req.Identifier,
			ReceiptURL:     req.ReceiptURL,
			Status:         string(req.Status),
		},
	}
	if req.Status != domain.PixSuccess {
		resp.Error = &PixOutError{Code: req.ErrorCode, Description: req.ErrorDescription}
	}
	return resp
}

// PixStatusResponse is the answer of a status re-query.
type PixStatusResponse struct {
	DocumentNumber string          `json:"documentNumber"`
	Identifier     string          `json:"identifier"`
	Status         string          `json:"status"`
	Value          decimal.Decimal `json:"value"`
	PaymentDate    time.Time       `json:"paymentDate"`
	ReceiptURL     string          `json:"receiptUrl,omitempty"`
	Success        bool            `json:"success"`
	Error          *PixOutError    `json:"error,omitempty"`
}

// ToPixStatusResponse converts an updated request to the status response.
func ToPixStatusResponse(req *domain.PixOutRequest) PixStatusResponse {
	resp := PixStatusResponse{
		DocumentNumber: req.DocumentNumber,
		Identifier:     req.Identifier,
		Status:         string(req.Status),
		Value:          req.Value,
		PaymentDate:    req.PaymentDate,
		ReceiptURL:     req.ReceiptURL,
		Success:        req.Status == domain.PixSuccess,
	}
	if req.Status != domain.PixSuccess {
		resp.Error = &PixOutError{Code: req.ErrorCode, Description: req.ErrorDescription}
	}
	return resp
}

// PixOutHistoryItem is one masked entry of the transfer history.
type PixOutHistoryItem struct {
	ID              string          `json:"id"`
	DocumentNumber  string          `json:"documentNumber"`
	Identifier      string          `json:"identifier"`
	Value           decimal.Decimal `json:"value"`
	PaymentDate     time.Time       `json:"paymentDate"`
	Description     string          `json:"description,omitempty"`
	FromAccountID   string          `json:"fromAccountID"`
	ToName          string          `json:"toName"`
	ToAccountMasked string          `json:"toAccountMasked"`
	ToTaxMasked     string          `json:"toTaxNumberMasked,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToPixOutHistory converts stored requests into masked history entries.
func ToPixOutHistory(requests []domain.PixOutRequest) []PixOutHistoryItem {
	res := make([]PixOutHistoryItem, len(requests))
	for i, r := range requests {
		res[i] = PixOutHistoryItem{
			ID:              r.RequestID,
			DocumentNumber:  r.DocumentNumber,
			Identifier:      r.Identifier,
			Value:           r.Value,
			PaymentDate:     r.PaymentDate,
			Description:     r.Description,
			FromAccountID:   r.FromAccountID,
			ToName:          r.ToName,
			ToAccountMasked: r.ToBank + "-" + utils.MaskTail(r.ToAccount),
			ToTaxMasked:     utils.MaskTail(r.ToTaxNumber),
			Status:          string(r.Status),
			CreatedAt:       r.CreatedAt,
		}
	}
	return res
}

// ListPixOutParams defines query parameters for the transfer history.
type ListPixOutParams struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=50"`
}
