package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockNotificationRepository is a mock type for the NotificationRepositoryFacade interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

func (m *MockNotificationRepository) UpdateStatusByRelated(ctx context.Context, relatedID string, notificationType domain.NotificationType, status domain.NotificationStatus, now time.Time) (int64, error) {
	args := m.Called(ctx, relatedID, notificationType, status, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	notifications, _ := args.Get(0).([]domain.Notification)
	token, _ := args.Get(1).(*string)
	return notifications, token, args.Error(2)
}

// MockUserReader is a mock type for the UserReader interface
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *MockUserReader) ListSalariedUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

// MockDelivery is a mock type for the NotificationDelivery interface
type MockDelivery struct {
	mock.Mock
}

func (m *MockDelivery) Publish(ctx context.Context, notification domain.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

// --- Test Suite Setup ---

type NotificationDispatcherTestSuite struct {
	suite.Suite
	ctx        context.Context
	repo       *MockNotificationRepository
	users      *MockUserReader
	delivery   *MockDelivery
	dispatcher portssvc.NotificationDispatcherSvc
}

func TestNotificationDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationDispatcherTestSuite))
}

func (suite *NotificationDispatcherTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = new(MockNotificationRepository)
	suite.users = new(MockUserReader)
	suite.delivery = new(MockDelivery)
	suite.dispatcher = services.NewNotificationDispatcher(suite.repo, suite.users, suite.delivery,
		services.WithClock(func() time.Time { return fixedNow }))
}

func (suite *NotificationDispatcherTestSuite) TestNotifyAdminsFansOutAndPublishes() {
	suite.users.On("ListUsersByRole", suite.ctx, domain.RoleAdmin).
		Return([]domain.User{{UserID: "admin-1"}, {UserID: "admin-2"}}, nil).Once()
	suite.repo.On("SaveNotifications", suite.ctx, mock.MatchedBy(func(batch []domain.Notification) bool {
		if len(batch) != 2 {
			return false
		}
		for _, n := range batch {
			if n.Status != domain.NotificationPending || n.RelatedID != "p-1" || !n.CreatedAt.Equal(fixedNow) {
				return false
			}
		}
		return batch[0].UserID == "admin-1" && batch[1].UserID == "admin-2"
	})).Return(nil).Once()
	suite.delivery.On("Publish", suite.ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Twice()

	suite.dispatcher.NotifyAdmins(suite.ctx, domain.NotifyPurchaseVerification, "p-1", "New purchase")

	suite.users.AssertExpectations(suite.T())
	suite.repo.AssertExpectations(suite.T())
	suite.delivery.AssertExpectations(suite.T())
}

func (suite *NotificationDispatcherTestSuite) TestSaveFailureIsSwallowed() {
	suite.repo.On("SaveNotifications", suite.ctx, mock.Anything).Return(errors.New("db down")).Once()

	suite.NotPanics(func() {
		suite.dispatcher.NotifyUser(suite.ctx, "manager-1", domain.NotifyPurchaseVerified, "p-1", "Verified", domain.NotificationApproved)
	})
	suite.delivery.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *NotificationDispatcherTestSuite) TestPublishFailureIsSwallowed() {
	suite.repo.On("SaveNotifications", suite.ctx, mock.Anything).Return(nil).Once()
	suite.delivery.On("Publish", suite.ctx, mock.Anything).Return(errors.New("queue full")).Once()

	suite.dispatcher.NotifyUser(suite.ctx, "client-1", domain.NotifyPaymentRejected, "t-1", "Rejected", domain.NotificationRejected)
	suite.delivery.AssertExpectations(suite.T())
}

func (suite *NotificationDispatcherTestSuite) TestResolveUpdatesByRelatedAndType() {
	suite.repo.On("UpdateStatusByRelated", suite.ctx, "p-1", domain.NotifyPurchaseVerification, domain.NotificationApproved, fixedNow).
		Return(int64(2), nil).Once()
	suite.dispatcher.Resolve(suite.ctx, "p-1", domain.NotifyPurchaseVerification, domain.NotificationApproved)

	suite.repo.On("UpdateStatusByRelated", suite.ctx, "p-2", domain.NotifyPurchaseVerification, domain.NotificationRejected, fixedNow).
		Return(int64(0), errors.New("timeout")).Once()
	suite.NotPanics(func() {
		suite.dispatcher.Resolve(suite.ctx, "p-2", domain.NotifyPurchaseVerification, domain.NotificationRejected)
	})
	suite.repo.AssertExpectations(suite.T())
}

func (suite *NotificationDispatcherTestSuite) TestNoRecipientsWritesNothing() {
	suite.users.On("ListUsersByRole", suite.ctx, domain.RoleAdmin).Return([]domain.User{}, nil).Once()
	suite.dispatcher.NotifyAdmins(suite.ctx, domain.NotifyPhaseApproval, "phase-1", "Phase ready")
	suite.repo.AssertNotCalled(suite.T(), "SaveNotifications", mock.Anything, mock.Anything)
}
