package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/utils/pagination"
)

func (s *Store) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, notifications...)
	return nil
}

func (s *Store) UpdateStatusByRelated(ctx context.Context, relatedID string, notificationType domain.NotificationType, status domain.NotificationStatus, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for i := range s.notifications {
		n := &s.notifications[i]
		if n.RelatedID == relatedID && n.Type == notificationType {
			n.Status = status
			n.UpdatedAt = now
			updated++
		}
	}
	return updated, nil
}

func (s *Store) ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	var (
		cursorAt time.Time
		cursorID string
		hasToken bool
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		cursorAt, cursorID, hasToken = at, id, true
	}

	s.mu.RLock()
	var mine []domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	s.mu.RUnlock()

	sort.Slice(mine, func(i, j int) bool { return newerThan(mine[i], mine[j].CreatedAt, mine[j].NotificationID) })

	result := make([]domain.Notification, 0, limit)
	for _, n := range mine {
		if hasToken && !newerThan(domain.Notification{CreatedAt: cursorAt, NotificationID: cursorID}, n.CreatedAt, n.NotificationID) {
			continue
		}
		if len(result) == limit {
			last := result[len(result)-1]
			token := pagination.EncodeToken(last.CreatedAt, last.NotificationID)
			return result, &token, nil
		}
		result = append(result, n)
	}
	return result, nil, nil
}

// newerThan orders notifications by (CreatedAt, NotificationID) descending.
func newerThan(n domain.Notification, at time.Time, id string) bool {
	if !n.CreatedAt.Equal(at) {
		return n.CreatedAt.After(at)
	}
	return n.NotificationID > id
}

// NotificationsByRelated returns every notification about relatedID.
func (s *Store) NotificationsByRelated(relatedID string) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Notification
	for _, n := range s.notifications {
		if n.RelatedID == relatedID {
			out = append(out, n)
		}
	}
	return out
}

func salaryKey(userID, month string) string {
	return userID + "|" + month
}

func (s *Store) SaveSalaryAssignment(ctx context.Context, assignment domain.SalaryAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := salaryKey(assignment.UserID, assignment.Month)
	if _, exists := s.salaries[key]; exists {
		return fmt.Errorf("salary of %s for %s: %w", assignment.UserID, assignment.Month, apperrors.ErrDuplicate)
	}
	s.salaries[key] = assignment
	return nil
}

func (s *Store) FindSalaryAssignment(ctx context.Context, userID, month string) (*domain.SalaryAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignment, ok := s.salaries[salaryKey(userID, month)]
	if !ok {
		return nil, fmt.Errorf("salary of %s for %s: %w", userID, month, apperrors.ErrNotFound)
	}
	return &assignment, nil
}
