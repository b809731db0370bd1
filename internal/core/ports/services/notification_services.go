package services

import (
	"context"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
)

// NotificationDispatcherSvc fans out and resolves approval notifications.
// Failures are logged and swallowed; they never undo a ledger posting.
type NotificationDispatcherSvc interface {
	// Create emits one pending notification per user.
	Create(ctx context.Context, userIDs []string, notificationType domain.NotificationType, relatedID, message string)

	// Resolve bulk-updates every notification matching (relatedID, type).
	Resolve(ctx context.Context, relatedID string, notificationType domain.NotificationType, status domain.NotificationStatus)

	// NotifyUser emits a single notification with an explicit status.
	NotifyUser(ctx context.Context, userID string, notificationType domain.NotificationType, relatedID, message string, status domain.NotificationStatus)

	// NotifyAdmins emits one pending notification to every current admin.
	NotifyAdmins(ctx context.Context, notificationType domain.NotificationType, relatedID, message string)

	// ListForUser lists a user's notifications using token-based pagination.
	ListForUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error)
}

// NotificationDelivery hands stored notifications to an outward channel.
type NotificationDelivery interface {
	Publish(ctx context.Context, notification domain.Notification) error
}
