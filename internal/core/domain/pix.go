package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PixStatus is the lifecycle state of a PIX OUT request as last reported by
// the gateway.
type PixStatus string

const (
	PixSuccess PixStatus = "success"
	PixFailed  PixStatus = "failed"
)

// PixOutRequest records one outbound PIX transfer initiated through the
// gateway. Destination fields are denormalized so history survives account
// edits and ad-hoc (unsaved) destinations.
type PixOutRequest struct {
	RequestID      string          `json:"requestID"`
	DocumentNumber string          `json:"documentNumber"` // Gateway-assigned
	Identifier     string          `json:"identifier"`     // Our idempotency key (UUID)
	Value          decimal.Decimal `json:"value"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Description    string          `json:"description"`

	FromAccountID string `json:"fromAccountID"`
	ToAccountID   string `json:"toAccountID"` // Empty for ad-hoc destinations

	ToName         string `json:"toName"`
	ToTaxNumber    string `json:"toTaxNumber"`
	ToBank         string `json:"toBank"`
	ToBranch       string `json:"toBranch"`
	ToAccount      string `json:"toAccount"`
	ToAccountDigit string `json:"toAccountDigit"`

	Status           PixStatus       `json:"status"`
	ReceiptURL       string          `json:"receiptUrl"`
	RawResponseJSON  json.RawMessage `json:"rawResponseJSON"`
	ErrorCode        string          `json:"errorCode"`
	ErrorDescription string          `json:"errorDescription"`

	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
