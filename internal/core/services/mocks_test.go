package services_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
)

// --- Mock BankAccountRepository ---
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListEligibleAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) UpdateAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) UpsertBalance(ctx context.Context, bankAccountID string, balance, blockedBalance decimal.Decimal, rawEntry json.RawMessage, updatedAt time.Time) error {
	args := m.Called(ctx, bankAccountID, balance, blockedBalance, rawEntry, updatedAt)
	return args.Error(0)
}

func (m *MockBalanceRepository) ListBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

// --- Mock PixRepository ---
type MockPixRepository struct {
	mock.Mock
}

func (m *MockPixRepository) SavePixOut(ctx context.Context, request domain.PixOutRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPixRepository) FindPixOutByDocumentNumber(ctx context.Context, documentNumber string) (*domain.PixOutRequest, error) {
	args := m.Called(ctx, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PixOutRequest), args.Error(1)
}

func (m *MockPixRepository) UpdatePixOutStatus(ctx context.Context, request domain.PixOutRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPixRepository) ListPixOut(ctx context.Context, limit int, offset int) ([]domain.PixOutRequest, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PixOutRequest), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditLogs(ctx context.Context, limit int, offset int, userID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit, offset, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock BankingGateway ---
type MockBankingGateway struct {
	mock.Mock
}

func (m *MockBankingGateway) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockBankingGateway) GetAccountEntryPaged(ctx context.Context, params portssvc.AccountEntryParams) (*portssvc.AccountEntryResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AccountEntryResult), args.Error(1)
}

func (m *MockBankingGateway) GeneratePixOut(ctx context.Context, params portssvc.PixOutParams) (*portssvc.PixOutResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PixOutResult), args.Error(1)
}

func (m *MockBankingGateway) GetPixOutByID(ctx context.Context, documentNumber string, routing portssvc.AccountRouting) (*portssvc.PixOutResult, error) {
	args := m.Called(ctx, documentNumber, routing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PixOutResult), args.Error(1)
}

func (m *MockBankingGateway) GetPixKeys(ctx context.Context, routing portssvc.AccountRouting) (*portssvc.PixKeysResult, error) {
	args := m.Called(ctx, routing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PixKeysResult), args.Error(1)
}

// --- Mock AuditSvc ---
type MockAuditSvc struct {
	mock.Mock
}

func (m *MockAuditSvc) Record(ctx context.Context, actor domain.Actor, action, entity, entityID string, metadata map[string]any) {
	m.Called(ctx, actor, action, entity, entityID, metadata)
}

func (m *MockAuditSvc) ListAuditLogs(ctx context.Context, limit int, offset int, userID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit, offset, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
