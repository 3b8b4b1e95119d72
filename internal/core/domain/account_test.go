package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBankAccount_EligibleForSync(t *testing.T) {
	testCases := []struct {
		name     string
		account  BankAccount
		eligible bool
	}{
		{"active transactional", BankAccount{Type: Transactional, IsActive: true}, true},
		{"active fee", BankAccount{Type: Fee, IsActive: true}, true},
		{"active receiving", BankAccount{Type: Receiving, IsActive: true}, false},
		{"inactive transactional", BankAccount{Type: Transactional, IsActive: false}, false},
		{"inactive fee", BankAccount{Type: Fee, IsActive: false}, false},
		{"inactive receiving", BankAccount{Type: Receiving, IsActive: false}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.eligible, tc.account.EligibleForSync())
		})
	}
}
