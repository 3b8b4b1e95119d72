package domain

// AccountType classifies what a bank account is used for.
type AccountType string

const (
	// Transactional accounts originate PIX OUT payments and carry the main balance.
	Transactional AccountType = "transactional"
	// Fee accounts collect tariffs; they are balance-synchronized like transactional ones.
	Fee AccountType = "fee"
	// Receiving accounts are destination-only; they are never balance-synchronized.
	Receiving AccountType = "receiving"
)

// BankAccount represents a registered bank account within the core domain.
// This is the primary representation used by services. Accounts are never
// hard-deleted; deactivation flips IsActive off.
type BankAccount struct {
	AccountID   string      `json:"accountID"`
	Label       string      `json:"label"`
	Type        AccountType `json:"type"`
	Bank        string      `json:"bank"`        // Bank compensation code (e.g. "450")
	Branch      string      `json:"branch"`      // Branch number without digit
	Account     string      `json:"account"`     // Account number without digit
	Digit       string      `json:"digit"`       // Account check digit
	AccountKind string      `json:"accountKind"` // Gateway account-type discriminator, "0" for checking
	HolderName  string      `json:"holderName"`
	TaxNumber   string      `json:"taxNumber"` // CPF/CNPJ, optional
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// EligibleForSync reports whether this account participates in balance
// synchronization: only active transactional and fee accounts do.
func (a BankAccount) EligibleForSync() bool {
	return a.IsActive && (a.Type == Transactional || a.Type == Fee)
}
