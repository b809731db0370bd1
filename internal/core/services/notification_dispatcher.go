package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/google/uuid"
)

type notificationDispatcher struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	userRepo         portsrepo.UserReader
	delivery         portssvc.NotificationDelivery
}

// NewNotificationDispatcher creates the dispatcher. delivery may be nil, in which case
// notifications are only stored.
func NewNotificationDispatcher(notificationRepo portsrepo.NotificationRepositoryFacade, userRepo portsrepo.UserReader, delivery portssvc.NotificationDelivery, opts ...Option) portssvc.NotificationDispatcherSvc {
	return &notificationDispatcher{
		BaseService:      newBaseService(opts),
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		delivery:         delivery,
	}
}

var _ portssvc.NotificationDispatcherSvc = (*notificationDispatcher)(nil)

func (s *notificationDispatcher) Create(ctx context.Context, userIDs []string, notificationType domain.NotificationType, relatedID, message string) {
	s.save(ctx, userIDs, notificationType, relatedID, message, domain.NotificationPending)
}

func (s *notificationDispatcher) NotifyUser(ctx context.Context, userID string, notificationType domain.NotificationType, relatedID, message string, status domain.NotificationStatus) {
	s.save(ctx, []string{userID}, notificationType, relatedID, message, status)
}

func (s *notificationDispatcher) NotifyAdmins(ctx context.Context, notificationType domain.NotificationType, relatedID, message string) {
	admins, err := s.userRepo.ListUsersByRole(ctx, domain.RoleAdmin)
	if err != nil {
		s.LogError(ctx, err, "Failed to list admins for notification",
			slog.String("related_id", relatedID),
			slog.String("type", string(notificationType)))
		return
	}
	userIDs := make([]string, 0, len(admins))
	for _, admin := range admins {
		userIDs = append(userIDs, admin.UserID)
	}
	s.Create(ctx, userIDs, notificationType, relatedID, message)
}

func (s *notificationDispatcher) Resolve(ctx context.Context, relatedID string, notificationType domain.NotificationType, status domain.NotificationStatus) {
	updated, err := s.notificationRepo.UpdateStatusByRelated(ctx, relatedID, notificationType, status, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve notifications",
			slog.String("related_id", relatedID),
			slog.String("type", string(notificationType)))
		return
	}
	s.LogDebug(ctx, "Notifications resolved",
		slog.String("related_id", relatedID),
		slog.String("status", string(status)),
		slog.Int64("count", updated))
}

func (s *notificationDispatcher) ListForUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	return s.notificationRepo.ListNotificationsByUser(ctx, userID, limit, nextToken)
}

func (s *notificationDispatcher) save(ctx context.Context, userIDs []string, notificationType domain.NotificationType, relatedID, message string, status domain.NotificationStatus) {
	if len(userIDs) == 0 {
		s.LogDebug(ctx, "No recipients for notification", slog.String("related_id", relatedID))
		return
	}

	now := s.Now()
	notifications := make([]domain.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         userID,
			Type:           notificationType,
			RelatedID:      relatedID,
			Message:        message,
			Status:         status,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	if err := s.notificationRepo.SaveNotifications(ctx, notifications); err != nil {
		s.LogError(ctx, err, "Failed to save notifications",
			slog.String("related_id", relatedID),
			slog.String("type", string(notificationType)))
		return
	}

	if s.delivery == nil {
		return
	}
	for _, n := range notifications {
		if err := s.delivery.Publish(ctx, n); err != nil {
			s.LogError(ctx, err, "Failed to publish notification",
				slog.String("notification_id", n.NotificationID))
		}
	}
}
