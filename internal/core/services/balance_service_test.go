package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/core/services"
)

// --- Test Suite ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockBankAccountRepository
	mockBalanceRepo *MockBalanceRepository
	mockGateway     *MockBankingGateway
	mockAudit       *MockAuditSvc
	service         portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockBankAccountRepository)
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockGateway = new(MockBankingGateway)
	suite.mockAudit = new(MockAuditSvc)
	suite.service = services.NewBalanceService(
		suite.mockAccountRepo,
		suite.mockBalanceRepo,
		suite.mockGateway,
		suite.mockAudit,
		time.Millisecond,
	)
}

func eligibleAccount(label string) domain.BankAccount {
	return domain.BankAccount{
		AccountID: uuid.NewString(),
		Label:     label,
		Type:      domain.Transactional,
		Bank:      "450",
		Branch:    "0001",
		Account:   "9342213115",
		Digit:     "2",
		IsActive:  true,
	}
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestSyncAll_Success() {
	ctx := context.Background()
	accA := eligibleAccount("Main")
	accB := eligibleAccount("Fees")
	raw := json.RawMessage(`{"Success":"true","Balance":"1523.76"}`)

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{accA, accB}, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.MatchedBy(func(p portssvc.AccountEntryParams) bool {
		return p.Routing.Bank == "450" && p.PageSize == 50 && p.PageIndex == 0 &&
			p.EndDate.Sub(p.StartDate) == 7*24*time.Hour
	})).Return(&portssvc.AccountEntryResult{
		Success:        true,
		Balance:        decimal.RequireFromString("1523.76"),
		BlockedBalance: decimal.Zero,
		Raw:            raw,
	}, nil).Twice()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, accA.AccountID, decimal.RequireFromString("1523.76"), decimal.Zero, raw, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, accB.AccountID, decimal.RequireFromString("1523.76"), decimal.Zero, raw, mock.AnythingOfType("time.Time")).Return(nil).Once()

	summary, err := suite.service.SyncAll(ctx)

	suite.Require().NoError(err)
	suite.False(summary.Skipped)
	suite.Equal(2, summary.SuccessCount)
	suite.Equal(0, summary.ErrorCount)
	suite.Require().Len(summary.Results, 2)
	suite.True(summary.Results[0].Success)
	suite.Equal(accA.AccountID, summary.Results[0].AccountID)
	suite.Require().NotNil(summary.Results[0].Balance)
	suite.True(summary.Results[0].Balance.Equal(decimal.RequireFromString("1523.76")))
	suite.mockBalanceRepo.AssertExpectations(suite.T())
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestSyncAll_PartialFailure() {
	ctx := context.Background()
	accA := eligibleAccount("First")
	accB := eligibleAccount("Broken")
	accC := eligibleAccount("Last")

	okResult := &portssvc.AccountEntryResult{
		Success: true,
		Balance: decimal.NewFromInt(100),
		Raw:     json.RawMessage(`{}`),
	}

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{accA, accB, accC}, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Return(okResult, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Return(nil, assert.AnError).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Return(okResult, nil).Once()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, accA.AccountID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, accC.AccountID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	summary, err := suite.service.SyncAll(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, summary.SuccessCount)
	suite.Equal(1, summary.ErrorCount)
	suite.Require().Len(summary.Results, 3)
	suite.True(summary.Results[0].Success)
	suite.False(summary.Results[1].Success)
	suite.NotEmpty(summary.Results[1].Error)
	suite.True(summary.Results[2].Success)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestSyncAll_GatewayRejection() {
	ctx := context.Background()
	acc := eligibleAccount("Rejected")

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{acc}, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Return(&portssvc.AccountEntryResult{
		Success:          false,
		ErrorCode:        "E999",
		ErrorDescription: "account blocked",
	}, nil).Once()

	summary, err := suite.service.SyncAll(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, summary.SuccessCount)
	suite.Equal(1, summary.ErrorCount)
	suite.Require().Len(summary.Results, 1)
	suite.Contains(summary.Results[0].Error, "E999")
	suite.Contains(summary.Results[0].Error, "account blocked")
	// The cache keeps the previous balance when the gateway rejects the query.
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "UpsertBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestSyncAll_UpsertFailureCountsAsError() {
	ctx := context.Background()
	acc := eligibleAccount("Unstorable")

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{acc}, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Return(&portssvc.AccountEntryResult{
		Success: true,
		Balance: decimal.NewFromInt(5),
	}, nil).Once()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, acc.AccountID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	summary, err := suite.service.SyncAll(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, summary.SuccessCount)
	suite.Equal(1, summary.ErrorCount)
}

func (suite *BalanceServiceTestSuite) TestSyncAll_NotConfigured() {
	ctx := context.Background()
	suite.mockGateway.On("Configured").Return(false)

	summary, err := suite.service.SyncAll(ctx)

	suite.Require().NoError(err)
	suite.True(summary.Skipped)
	suite.Empty(summary.Results)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListEligibleAccounts", mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestSyncAll_IneligibleAccountsAreNeverQueried() {
	ctx := context.Background()
	eligible := eligibleAccount("Main")
	receiving := eligibleAccount("Destination only")
	receiving.Type = domain.Receiving
	inactive := eligibleAccount("Closed")
	inactive.IsActive = false

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).
		Return([]domain.BankAccount{receiving, eligible, inactive}, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Return(&portssvc.AccountEntryResult{
		Success: true,
		Balance: decimal.NewFromInt(10),
	}, nil).Once()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, eligible.AccountID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	summary, err := suite.service.SyncAll(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, summary.SuccessCount)
	suite.Equal(0, summary.ErrorCount)
	suite.Require().Len(summary.Results, 1)
	suite.Equal(eligible.AccountID, summary.Results[0].AccountID)
	suite.mockGateway.AssertNumberOfCalls(suite.T(), "GetAccountEntryPaged", 1)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestSyncAll_ConcurrentPassIsDropped() {
	ctx := context.Background()
	acc := eligibleAccount("Slow")
	entered := make(chan struct{})
	release := make(chan struct{})

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{acc}, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Run(func(args mock.Arguments) {
		close(entered)
		<-release
	}).Return(&portssvc.AccountEntryResult{Success: true, Balance: decimal.NewFromInt(1)}, nil).Once()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, acc.AccountID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	done := make(chan domain.SyncSummary, 1)
	go func() {
		first, err := suite.service.SyncAll(ctx)
		suite.NoError(err)
		done <- first
	}()

	<-entered
	second, err := suite.service.SyncAll(ctx)
	suite.Require().NoError(err)
	suite.True(second.Skipped)
	suite.Empty(second.Results)

	close(release)
	first := <-done
	suite.False(first.Skipped)
	suite.Equal(1, first.SuccessCount)
}

func (suite *BalanceServiceTestSuite) TestSyncAll_SetupFailureReleasesGuard() {
	ctx := context.Background()

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return(nil, assert.AnError).Once()

	summary, err := suite.service.SyncAll(ctx)
	suite.Require().Error(err)
	suite.False(summary.Skipped)
	suite.Empty(summary.Results)

	// The guard must be released so the next pass can run.
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{}, nil).Once()
	summary, err = suite.service.SyncAll(ctx)
	suite.Require().NoError(err)
	suite.False(summary.Skipped)
	suite.Equal(0, summary.SuccessCount)
	suite.Equal(0, summary.ErrorCount)
}

func (suite *BalanceServiceTestSuite) TestSyncAll_AllAccountsFailStillFinishes() {
	ctx := context.Background()
	accA := eligibleAccount("A")
	accB := eligibleAccount("B")

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{accA, accB}, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Return(nil, assert.AnError).Twice()

	summary, err := suite.service.SyncAll(ctx)
	suite.Require().NoError(err)
	suite.Equal(0, summary.SuccessCount)
	suite.Equal(2, summary.ErrorCount)

	// The guard must be released even after a pass where everything failed.
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{}, nil).Once()
	summary, err = suite.service.SyncAll(ctx)
	suite.Require().NoError(err)
	suite.False(summary.Skipped)
}

func (suite *BalanceServiceTestSuite) TestRefreshBalances_RecordsOneAuditEntry() {
	ctx := context.Background()
	actor := domain.Actor{UserID: uuid.NewString(), IPAddress: "10.0.0.1"}
	acc := eligibleAccount("Main")

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return([]domain.BankAccount{acc}, nil).Once()
	suite.mockGateway.On("GetAccountEntryPaged", ctx, mock.Anything).Return(&portssvc.AccountEntryResult{
		Success: true,
		Balance: decimal.NewFromInt(42),
	}, nil).Once()
	suite.mockBalanceRepo.On("UpsertBalance", ctx, acc.AccountID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, actor, domain.AuditBalanceRefresh, "account_balances", "", mock.MatchedBy(func(meta map[string]any) bool {
		results, ok := meta["results"].([]domain.RefreshResult)
		return meta["success_count"] == 1 && meta["error_count"] == 0 &&
			ok && len(results) == 1 && results[0].AccountID == acc.AccountID && results[0].Success
	})).Once()

	summary, err := suite.service.RefreshBalances(ctx, actor)

	suite.Require().NoError(err)
	suite.Equal(1, summary.SuccessCount)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestRefreshBalances_SetupFailureSkipsAudit() {
	ctx := context.Background()
	actor := domain.Actor{UserID: uuid.NewString()}

	suite.mockGateway.On("Configured").Return(true)
	suite.mockAccountRepo.On("ListEligibleAccounts", ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.RefreshBalances(ctx, actor)

	suite.Require().Error(err)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestListBalances() {
	ctx := context.Background()
	expected := []domain.AccountBalance{{BankAccountID: uuid.NewString(), Balance: decimal.NewFromInt(7)}}

	suite.mockBalanceRepo.On("ListBalances", ctx).Return(expected, nil).Once()

	balances, err := suite.service.ListBalances(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, balances)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
