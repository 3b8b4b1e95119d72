package models

// AccountType mirrors the bank_accounts.type check constraint.
type AccountType string

const (
	Transactional AccountType = "transactional"
	Fee           AccountType = "fee"
	Receiving     AccountType = "receiving"
)

// BankAccount is the DB representation of a registered bank account.
type BankAccount struct {
	AccountID   string      `db:"account_id"`
	Label       string      `db:"label"`
	Type        AccountType `db:"type"`
	Bank        string      `db:"bank"`
	Branch      string      `db:"branch"`
	Account     string      `db:"account"`
	Digit       string      `db:"digit"`
	AccountKind string      `db:"account_kind"`
	HolderName  string      `db:"holder_name"`
	TaxNumber   string      `db:"tax_number"` // Nullable in DB
	IsActive    bool        `db:"is_active"`
	AuditFields
}
