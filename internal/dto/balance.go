package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// BalanceResponse defines the data returned for one cached balance.
type BalanceResponse struct {
	BankAccountID  string             `json:"bankAccountID"`
	Balance        decimal.Decimal    `json:"balance"`
	BlockedBalance decimal.Decimal    `json:"blockedBalance"`
	UpdatedAt      time.Time          `json:"updatedAt"`
	AccountLabel   string             `json:"accountLabel"`
	AccountType    domain.AccountType `json:"accountType"`
	HolderName     string             `json:"holderName"`
}

// ToListBalanceResponse converts cached balances to response DTOs.
func ToListBalanceResponse(balances []domain.AccountBalance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = BalanceResponse{
			BankAccountID:  b.BankAccountID,
			Balance:        b.Balance,
			BlockedBalance: b.BlockedBalance,
			UpdatedAt:      b.UpdatedAt,
			AccountLabel:   b.AccountLabel,
			AccountType:    b.AccountType,
			HolderName:     b.HolderName,
		}
	}
	return res
}

// RefreshBalancesResponse is the manual refresh answer: always returned with
// HTTP 200, partial failures show up per result entry.
type RefreshBalancesResponse struct {
	Success bool                   `json:"success"`
	Results []domain.RefreshResult `json:"results"`
}

// ToRefreshBalancesResponse converts a sync summary. A skipped pass yields an
// empty result list, not an error.
func ToRefreshBalancesResponse(summary domain.SyncSummary) RefreshBalancesResponse {
	results := summary.Results
	if results == nil {
		results = []domain.RefreshResult{}
	}
	return RefreshBalancesResponse{Success: true, Results: results}
}
