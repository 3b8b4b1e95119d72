package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PixOutRequest is the DB representation of one outbound PIX transfer.
type PixOutRequest struct {
	RequestID      string          `db:"request_id"`
	DocumentNumber string          `db:"document_number"`
	Identifier     string          `db:"identifier"`
	Value          decimal.Decimal `db:"value"`
	PaymentDate    time.Time       `db:"payment_date"`
	Description    string          `db:"description"`

	FromAccountID string         `db:"from_account_id"`
	ToAccountID   sql.NullString `db:"to_account_id"`

	ToName         string `db:"to_name"`
	ToTaxNumber    string `db:"to_tax_number"`
	ToBank         string `db:"to_bank"`
	ToBranch       string `db:"to_branch"`
	ToAccount      string `db:"to_account"`
	ToAccountDigit string `db:"to_account_digit"`

	Status           string          `db:"status"`
	ReceiptURL       string          `db:"receipt_url"`
	RawResponseJSON  json.RawMessage `db:"raw_response_json"`
	ErrorCode        string          `db:"error_code"`
	ErrorDescription string          `db:"error_description"`

	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}
