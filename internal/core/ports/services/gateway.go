package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AccountRouting is the bank/branch/account/digit quadruple identifying an
// account at the gateway.
type AccountRouting struct {
	Bank    string
	Branch  string
	Account string
	Digit   string
}

// AccountEntryParams selects the activity window queried for one account.
// Dates are calendar days; the gateway expects DD/MM/YYYY.
type AccountEntryParams struct {
	Routing   AccountRouting
	StartDate time.Time
	EndDate   time.Time
	PageSize  int
	PageIndex int
}

// AccountEntryResult is the normalized gateway answer for an activity query.
// Success is already coerced to a plain bool and the balances to decimals;
// Raw carries the response body verbatim for storage.
type AccountEntryResult struct {
	Success          bool
	Balance          decimal.Decimal
	BlockedBalance   decimal.Decimal
	ErrorCode        string
	ErrorDescription string
	Raw              json.RawMessage
}

// PixOutParams describes one outbound PIX transfer to be initiated.
type PixOutParams struct {
	From          AccountRouting
	To            AccountRouting
	ToName        string
	ToTaxNumber   string
	ToAccountKind string
	Value         decimal.Decimal
	PaymentDate   time.Time
	Identifier    string
	Description   string
}

// PixOutResult is the normalized gateway answer for PIX OUT creation or a
// status re-query.
type PixOutResult struct {
	Success          bool
	DocumentNumber   string
	ReceiptURL       string
	ErrorCode        string
	ErrorDescription string
	Raw              json.RawMessage
}

// PixKeysResult lists the PIX keys registered for an account. Keys is passed
// through opaque; the panel only displays it.
type PixKeysResult struct {
	Success          bool
	Keys             json.RawMessage
	ErrorCode        string
	ErrorDescription string
	Raw              json.RawMessage
}

// BankingGateway is the outbound port to the banking API. Every call
// re-authenticates with fixed credentials; implementations hold no session
// state. Transport failures and undecodable bodies surface as errors, which
// callers handle per account.
type BankingGateway interface {
	// Configured reports whether credentials are present. An unconfigured
	// gateway short-circuits balance synchronization before any state change.
	Configured() bool

	GetAccountEntryPaged(ctx context.Context, params AccountEntryParams) (*AccountEntryResult, error)
	GeneratePixOut(ctx context.Context, params PixOutParams) (*PixOutResult, error)
	GetPixOutByID(ctx context.Context, documentNumber string, routing AccountRouting) (*PixOutResult, error)
	GetPixKeys(ctx context.Context, routing AccountRouting) (*PixKeysResult, error)
}
