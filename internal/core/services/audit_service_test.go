package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/core/services"
)

// --- Test Suite ---
type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditRepository
	service  portssvc.AuditSvc
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAuditRepository)
	suite.service = services.NewAuditService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AuditServiceTestSuite) TestRecord_PersistsEntry() {
	ctx := context.Background()
	actor := domain.Actor{UserID: uuid.NewString(), IPAddress: "10.1.1.1", UserAgent: "panel"}

	suite.mockRepo.On("SaveAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.LogID != "" && e.UserID == actor.UserID && e.Action == domain.AuditLogin &&
			e.IPAddress == actor.IPAddress && !e.CreatedAt.IsZero()
	})).Return(nil).Once()

	suite.service.Record(ctx, actor, domain.AuditLogin, "user", actor.UserID, map[string]any{"email": "a@b.c"})

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecord_SwallowsRepositoryError() {
	ctx := context.Background()
	actor := domain.Actor{UserID: uuid.NewString()}

	suite.mockRepo.On("SaveAuditLog", ctx, mock.Anything).Return(assert.AnError).Once()

	// Must not panic or propagate; auditing is best-effort.
	suite.service.Record(ctx, actor, domain.AuditBalanceRefresh, "account_balances", "", nil)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestListAuditLogs_ClampsPaging() {
	ctx := context.Background()

	suite.mockRepo.On("ListAuditLogs", ctx, 50, 0, "").Return([]domain.AuditLog{}, nil).Once()

	logs, err := suite.service.ListAuditLogs(ctx, 1000, -1, "")

	suite.Require().NoError(err)
	suite.Empty(logs)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
