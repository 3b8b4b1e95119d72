package fitbank

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexBool tolerates the gateway's inconsistent success flag: JSON true/false
// or the literal strings "true"/"false". Anything else, including an absent
// field or null, decodes to false. The gateway never distinguishes "unknown"
// from "failed".
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*b = FlexBool(strings.EqualFold(s, "true"))
	return nil
}

// FlexString tolerates string and numeric encodings of identifier fields
// (the gateway returns DocumentNumber and ErrorCode as either).
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	v := strings.Trim(string(data), `"`)
	if v == "null" {
		v = ""
	}
	*s = FlexString(v)
	return nil
}

// Amount tolerates number, numeric string, null, absent and garbage balance
// encodings; everything unparseable decodes to zero.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// envelope covers the response fields consumed from any gateway method. The
// raw body is kept alongside for verbatim storage.
type envelope struct {
	Success          FlexBool        `json:"Success"`
	Balance          Amount          `json:"Balance"`
	BlockedBalance   Amount          `json:"BlockedBalance"`
	DocumentNumber   FlexString      `json:"DocumentNumber"`
	ReceiptURL       string          `json:"ReceiptUrl"`
	Keys             json.RawMessage `json:"Keys"`
	ErrorCode        FlexString      `json:"ErrorCode"`
	ErrorDescription string          `json:"ErrorDescription"`
}
