package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/dto"
	"github.com/tribopay/pix_admin_backend/internal/handlers"
	"github.com/tribopay/pix_admin_backend/internal/middleware"
)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ListBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceService) SyncAll(ctx context.Context) (domain.SyncSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SyncSummary), args.Error(1)
}

func (m *MockBalanceService) RefreshBalances(ctx context.Context, actor domain.Actor) (domain.SyncSummary, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.SyncSummary), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Test Suite ---
type BalanceHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockBalanceService
	jwtSecret   string
}

func (suite *BalanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockService = new(MockBalanceService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret), middleware.RequireAdmin())
	handlers.RegisterBalanceRoutes(v1, suite.mockService)
}

func (suite *BalanceHandlerTestSuite) doRequest(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), suite.jwtSecret, uuid.NewString(), "admin"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *BalanceHandlerTestSuite) TestListBalances() {
	balances := []domain.AccountBalance{
		{
			BankAccountID: uuid.NewString(),
			Balance:       decimal.RequireFromString("1523.76"),
			AccountLabel:  "Conta Principal",
			AccountType:   domain.Transactional,
		},
	}
	suite.mockService.On("ListBalances", mock.Anything).Return(balances, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/balances")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Conta Principal", resp[0].AccountLabel)
	suite.True(resp[0].Balance.Equal(decimal.RequireFromString("1523.76")))
}

func (suite *BalanceHandlerTestSuite) TestRefreshBalances_ReturnsResults() {
	balance := decimal.RequireFromString("99.10")
	summary := domain.SyncSummary{
		Results: []domain.RefreshResult{
			{AccountID: uuid.NewString(), Label: "Main", Balance: &balance, Success: true},
			{AccountID: uuid.NewString(), Label: "Broken", Success: false, Error: "gateway timeout"},
		},
		SuccessCount: 1,
		ErrorCount:   1,
	}
	suite.mockService.On("RefreshBalances", mock.Anything, mock.AnythingOfType("domain.Actor")).Return(summary, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/balances/refresh")

	// Partial failure is still a 200; the caller inspects per-account results.
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshBalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Require().Len(resp.Results, 2)
	suite.True(resp.Results[0].Success)
	suite.Equal("gateway timeout", resp.Results[1].Error)
}

func (suite *BalanceHandlerTestSuite) TestRefreshBalances_SkippedPassReturnsEmptyResults() {
	summary := domain.SyncSummary{Results: []domain.RefreshResult{}, Skipped: true}
	suite.mockService.On("RefreshBalances", mock.Anything, mock.AnythingOfType("domain.Actor")).Return(summary, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/balances/refresh")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshBalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Empty(resp.Results)
}

func (suite *BalanceHandlerTestSuite) TestRefreshBalances_SetupFailureIs500() {
	suite.mockService.On("RefreshBalances", mock.Anything, mock.AnythingOfType("domain.Actor")).
		Return(domain.SyncSummary{}, assert.AnError).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/balances/refresh")

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *BalanceHandlerTestSuite) TestRefreshBalances_RateLimited() {
	summary := domain.SyncSummary{Results: []domain.RefreshResult{}}
	suite.mockService.On("RefreshBalances", mock.Anything, mock.AnythingOfType("domain.Actor")).Return(summary, nil).Times(10)

	for i := 0; i < 10; i++ {
		w := suite.doRequest(http.MethodPost, "/api/v1/balances/refresh")
		suite.Equal(http.StatusOK, w.Code)
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/balances/refresh")
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.Contains(w.Body.String(), "Too many balance refresh requests")
	suite.mockService.AssertExpectations(suite.T())
}

func TestBalanceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceHandlerTestSuite))
}
