package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the back-office role of an authenticated user.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSiteManager Role = "siteManager"
	RoleClient      Role = "client"
	RoleEmployee    Role = "employee"
)

// Actor is the authenticated caller of a core operation.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// User represents a user of the back office.
type User struct {
	UserID        string          `json:"userID"` // Primary Key (e.g., UUID)
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          Role            `json:"role"`
	IsSalaried    bool            `json:"isSalaried"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
