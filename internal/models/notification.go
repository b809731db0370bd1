package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification is a row of notifications.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	UserID         string    `db:"user_id"`
	Type           string    `db:"type"`
	RelatedID      string    `db:"related_id"`
	Message        string    `db:"message"`
	Status         string    `db:"status"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// SalaryAssignment is a row of salary_assignments.
type SalaryAssignment struct {
	AssignmentID string          `db:"assignment_id"`
	UserID       string          `db:"user_id"`
	Month        string          `db:"month"`
	Amount       decimal.Decimal `db:"amount"`
	Status       string          `db:"status"`
	CreatedAt    time.Time       `db:"created_at"`
}
