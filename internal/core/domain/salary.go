package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryAssignment is a user's salary for one calendar month. At most one exists per (UserID, Month).
type SalaryAssignment struct {
	AssignmentID string          `json:"assignmentID"`
	UserID       string          `json:"userID"`
	Month        string          `json:"month"` // YYYY-MM
	Amount       decimal.Decimal `json:"amount"`
	Status       EventStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// SalaryMonth formats t as the month key of a salary assignment.
func SalaryMonth(t time.Time) string {
	return t.UTC().Format("2006-01")
}
