package repositories

import (
	"context"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsersByRole retrieves every active user holding role.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// ListSalariedUsers retrieves every active salaried user.
	ListSalariedUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
