package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a row of users.
type User struct {
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	Role          string          `db:"role"`
	IsSalaried    bool            `db:"is_salaried"`
	MonthlySalary decimal.Decimal `db:"monthly_salary"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
