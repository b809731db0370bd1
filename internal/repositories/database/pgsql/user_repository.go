package pgsql

import (
	"context"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_ledger_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, role, is_salaried, monthly_salary, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		string(user.Role),
		user.IsSalaried,
		user.MonthlySalary,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
		user.DeletedAt,
	)
	return mapError(err, "user "+user.UserID)
}

// FindUserByID retrieves a user by ID, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "user "+userID)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err, "user "+userID)
	}
	user := toDomainUser(row)
	return &user, nil
}

func (r *PgxUserRepository) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 AND deleted_at IS NULL ORDER BY user_id;`, string(role))
}

func (r *PgxUserRepository) ListSalariedUsers(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE is_salaried AND deleted_at IS NULL ORDER BY user_id;`)
}

func (r *PgxUserRepository) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list users")
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err, "scan users")
	}
	users := make([]domain.User, len(collected))
	for i, m := range collected {
		users[i] = toDomainUser(m)
	}
	return users, nil
}
