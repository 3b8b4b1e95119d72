package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the latest known balance for a bank account. There is at
// most one row per account; every sync overwrites it (upsert, never delete).
type AccountBalance struct {
	BankAccountID  string          `json:"bankAccountID"`
	Balance        decimal.Decimal `json:"balance"`
	BlockedBalance decimal.Decimal `json:"blockedBalance"`
	RawEntryJSON   json.RawMessage `json:"rawEntryJSON"` // Gateway response stored verbatim
	UpdatedAt      time.Time       `json:"updatedAt"`

	// Denormalized account fields for list views.
	AccountLabel string      `json:"accountLabel,omitempty"`
	AccountType  AccountType `json:"accountType,omitempty"`
	HolderName   string      `json:"holderName,omitempty"`
}

// RefreshResult is the per-account outcome of one sync pass.
type RefreshResult struct {
	AccountID string           `json:"accountId"`
	Label     string           `json:"label"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
}

// SyncSummary aggregates one complete pass of the balance synchronizer.
// Skipped means the pass never started (another run in progress, or the
// gateway is not configured) and no state was touched.
type SyncSummary struct {
	Results      []RefreshResult `json:"results"`
	SuccessCount int             `json:"successCount"`
	ErrorCount   int             `json:"errorCount"`
	Skipped      bool            `json:"skipped"`
}
