package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
)

// NotificationRepositoryFacade defines persistence for notifications
type NotificationRepositoryFacade interface {
	// SaveNotifications persists a batch of notifications.
	SaveNotifications(ctx context.Context, notifications []domain.Notification) error

	// UpdateStatusByRelated sets status on every notification matching (relatedID, type).
	// It returns the number of notifications updated.
	UpdateStatusByRelated(ctx context.Context, relatedID string, notificationType domain.NotificationType, status domain.NotificationStatus, now time.Time) (int64, error)

	// ListNotificationsByUser retrieves a user's notifications, newest first, using token-based pagination.
	ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error)
}

// SalaryRepositoryFacade defines persistence for monthly salary assignments
type SalaryRepositoryFacade interface {
	// SaveSalaryAssignment persists an assignment. Returns apperrors.ErrDuplicate if the user already has one for the month.
	SaveSalaryAssignment(ctx context.Context, assignment domain.SalaryAssignment) error

	// FindSalaryAssignment retrieves the user's assignment for a month.
	FindSalaryAssignment(ctx context.Context, userID, month string) (*domain.SalaryAssignment, error)
}
