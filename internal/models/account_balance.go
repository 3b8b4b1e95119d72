package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the DB representation of the latest cached balance for a
// bank account. bank_account_id is both PK and FK; upserts key on it.
type AccountBalance struct {
	BankAccountID  string          `db:"bank_account_id"`
	Balance        decimal.Decimal `db:"balance"`
	BlockedBalance decimal.Decimal `db:"blocked_balance"`
	RawEntryJSON   json.RawMessage `db:"raw_entry_json"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
