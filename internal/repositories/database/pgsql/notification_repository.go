package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_ledger_app/internal/models"
	"github.com/SscSPs/site_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxNotificationRepository stores notifications and monthly salary assignments.
type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)
	_ portsrepo.SalaryRepositoryFacade       = (*PgxNotificationRepository)(nil)
)

const notificationColumns = `notification_id, user_id, type, related_id, message, status, is_read, created_at, updated_at`

// SaveNotifications writes the batch with CopyFrom.
func (r *PgxNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	_, err := r.Pool.CopyFrom(ctx,
		pgx.Identifier{"notifications"},
		[]string{"notification_id", "user_id", "type", "related_id", "message", "status", "is_read", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(notifications), func(i int) ([]any, error) {
			n := notifications[i]
			return []any{n.NotificationID, n.UserID, string(n.Type), n.RelatedID, n.Message, string(n.Status), n.IsRead, n.CreatedAt, n.UpdatedAt}, nil
		}),
	)
	return mapError(err, "save notifications")
}

func (r *PgxNotificationRepository) UpdateStatusByRelated(ctx context.Context, relatedID string, notificationType domain.NotificationType, status domain.NotificationStatus, now time.Time) (int64, error) {
	query := `UPDATE notifications SET status = $3, updated_at = $4 WHERE related_id = $1 AND type = $2;`
	tag, err := r.Pool.Exec(ctx, query, relatedID, string(notificationType), string(status), now)
	if err != nil {
		return 0, mapError(err, "update notifications of "+relatedID)
	}
	return tag.RowsAffected(), nil
}

// ListNotificationsByUser pages by (created_at, notification_id) descending.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	args := []any{userID, limit + 1}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		query += ` AND (created_at, notification_id) < ($3, $4)`
		args = append(args, at, id)
	}
	query += ` ORDER BY created_at DESC, notification_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "list notifications")
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Notification])
	if err != nil {
		return nil, nil, mapError(err, "scan notifications")
	}

	var next *string
	if len(collected) > limit {
		collected = collected[:limit]
		last := collected[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.NotificationID)
		next = &token
	}
	notifications := make([]domain.Notification, len(collected))
	for i, m := range collected {
		notifications[i] = toDomainNotification(m)
	}
	return notifications, next, nil
}

func (r *PgxNotificationRepository) SaveSalaryAssignment(ctx context.Context, a domain.SalaryAssignment) error {
	query := `
		INSERT INTO salary_assignments (assignment_id, user_id, month, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, a.AssignmentID, a.UserID, a.Month, a.Amount, string(a.Status), a.CreatedAt)
	return mapError(err, fmt.Sprintf("salary of %s for %s", a.UserID, a.Month))
}

func (r *PgxNotificationRepository) FindSalaryAssignment(ctx context.Context, userID, month string) (*domain.SalaryAssignment, error) {
	what := fmt.Sprintf("salary of %s for %s", userID, month)
	rows, err := r.Pool.Query(ctx,
		`SELECT assignment_id, user_id, month, amount, status, created_at FROM salary_assignments WHERE user_id = $1 AND month = $2;`,
		userID, month)
	if err != nil {
		return nil, mapError(err, what)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SalaryAssignment])
	if err != nil {
		return nil, mapError(err, what)
	}
	assignment := toDomainSalaryAssignment(row)
	return &assignment, nil
}
