package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tribopay/pix_admin_backend/internal/apperrors"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/dto"
	"github.com/tribopay/pix_admin_backend/internal/handlers"
	"github.com/tribopay/pix_admin_backend/internal/middleware"
)

// --- Mock BankAccountService ---
type MockBankAccountService struct {
	mock.Mock
}

func (m *MockBankAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) ListAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) CreateAccount(ctx context.Context, req dto.CreateBankAccountRequest, actor domain.Actor) (*domain.BankAccount, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateBankAccountRequest, actor domain.Actor) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) DeactivateAccount(ctx context.Context, accountID string, actor domain.Actor) error {
	args := m.Called(ctx, accountID, actor)
	return args.Error(0)
}

var _ portssvc.BankAccountSvcFacade = (*MockBankAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockBankAccountService
	jwtSecret   string
}

// generateTestToken creates a signed JWT with the given role for testing.
func generateTestToken(t interface{ FailNow() }, secret, userID, role string) string {
	claims := middleware.PanelClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "pix-admin-test",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.FailNow()
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockService = new(MockBankAccountService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret), middleware.RequireAdmin())
	handlers.RegisterAccountRoutes(v1, suite.mockService)
}

func (suite *AccountHandlerTestSuite) doRequest(method, path, role string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), suite.jwtSecret, uuid.NewString(), role))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestListAccounts_MasksSensitiveFields() {
	account := domain.BankAccount{
		AccountID:  uuid.NewString(),
		Label:      "Conta Principal",
		Type:       domain.Transactional,
		Bank:       "450",
		Branch:     "0001",
		Account:    "9342213115",
		Digit:      "2",
		HolderName: "TRIBOPAY",
		TaxNumber:  "53302781000135",
		IsActive:   true,
	}
	suite.mockService.On("ListAccounts", mock.Anything).Return([]domain.BankAccount{account}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts", "admin", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.BankAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("****3115", resp[0].Account)
	suite.Equal("****0135", resp[0].TaxNumber)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_ReturnsUnmaskedData() {
	account := domain.BankAccount{
		AccountID: uuid.NewString(),
		Label:     "Conta Principal",
		Type:      domain.Transactional,
		Account:   "9342213115",
		TaxNumber: "53302781000135",
		IsActive:  true,
	}
	suite.mockService.On("GetAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+account.AccountID, "admin", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BankAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("9342213115", resp.Account)
	suite.Equal("53302781000135", resp.TaxNumber)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockService.On("GetAccountByID", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, "admin", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateBankAccountRequest{
		Label:      "Nova Conta",
		Type:       domain.Fee,
		Bank:       "208",
		Branch:     "0050",
		Account:    "528218",
		Digit:      "0",
		HolderName: "TriboPay",
	}
	created := domain.BankAccount{AccountID: uuid.NewString(), Label: req.Label, Type: req.Type, IsActive: true}
	suite.mockService.On("CreateAccount", mock.Anything, req, mock.AnythingOfType("domain.Actor")).Return(&created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", "admin", req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidType() {
	body := map[string]any{
		"label": "Bad", "type": "savings", "bank": "1", "branch": "1",
		"account": "1", "digit": "1", "holderName": "x",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", "admin", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Success() {
	accountID := uuid.NewString()
	suite.mockService.On("DeactivateAccount", mock.Anything, accountID, mock.AnythingOfType("domain.Actor")).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, "admin", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *AccountHandlerTestSuite) TestNonAdminIsForbidden() {
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts", "operator", nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
