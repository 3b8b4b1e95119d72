package dto

import (
	"time"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	"github.com/tribopay/pix_admin_backend/internal/utils"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	Label       string             `json:"label" binding:"required"`
	Type        domain.AccountType `json:"type" binding:"required,oneof=transactional fee receiving"`
	Bank        string             `json:"bank" binding:"required"`
	Branch      string             `json:"branch" binding:"required"`
	Account     string             `json:"account" binding:"required"`
	Digit       string             `json:"digit" binding:"required"`
	AccountKind string             `json:"accountKind"` // Defaults to "0" (checking)
	HolderName  string             `json:"holderName" binding:"required"`
	TaxNumber   string             `json:"taxNumber"` // Optional
}

// UpdateBankAccountRequest replaces all editable fields of an account, same
// shape as creation.
type UpdateBankAccountRequest = CreateBankAccountRequest

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	AccountID   string             `json:"accountID"`
	Label       string             `json:"label"`
	Type        domain.AccountType `json:"type"`
	Bank        string             `json:"bank"`
	Branch      string             `json:"branch"`
	Account     string             `json:"account"`
	Digit       string             `json:"digit"`
	AccountKind string             `json:"accountKind"`
	HolderName  string             `json:"holderName"`
	TaxNumber   string             `json:"taxNumber,omitempty"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ToBankAccountResponse converts a domain.BankAccount to its response DTO.
// When masked, the account number and tax number are reduced to their last
// four digits; list endpoints always mask, the single-account endpoint (used
// for editing) does not.
func ToBankAccountResponse(acc *domain.BankAccount, masked bool) BankAccountResponse {
	resp := BankAccountResponse{
		AccountID:   acc.AccountID,
		Label:       acc.Label,
		Type:        acc.Type,
		Bank:        acc.Bank,
		Branch:      acc.Branch,
		Account:     acc.Account,
		Digit:       acc.Digit,
		AccountKind: acc.AccountKind,
		HolderName:  acc.HolderName,
		TaxNumber:   acc.TaxNumber,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		CreatedBy:   acc.CreatedBy,
	}
	if masked {
		resp.Account = utils.MaskTail(acc.Account)
		resp.TaxNumber = utils.MaskTail(acc.TaxNumber)
	}
	return resp
}

// ToListBankAccountResponse converts a slice of accounts, always masked.
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToBankAccountResponse(&acc, true)
	}
	return res
}
