package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_ledger_app/internal/models"
	"github.com/SscSPs/site_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger accounts and entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerAccountColumns = `account_id, kind, owner_id, site_id, balance, sequence, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxLedgerRepository) FindAccount(ctx context.Context, key domain.AccountKey) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE kind = $1 AND owner_id = $2 AND site_id = $3;`
	return r.queryAccount(ctx, r.Pool, query, fmt.Sprintf("%s account %s", key.Kind, key.OwnerID), string(key.Kind), key.OwnerID, key.SiteID)
}

func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE account_id = $1;`
	return r.queryAccount(ctx, r.Pool, query, "account "+accountID, accountID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxLedgerRepository) queryAccount(ctx context.Context, q querier, query, what string, args ...any) (*domain.LedgerAccount, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, what)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerAccount])
	if err != nil {
		return nil, mapError(err, what)
	}
	account := toDomainLedgerAccount(row)
	return &account, nil
}

// ListEntries pages by sequence, newest first. One extra row is fetched to decide on a next token.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	args := []any{accountID, limit + 1}
	query := `
		SELECT account_id, sequence, amount, balance_after, type, description, site_id, related_id, actor_id, entry_date, created_at
		FROM ledger_entries
		WHERE account_id = $1`
	if nextToken != nil && *nextToken != "" {
		before, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		query += ` AND sequence < $3`
		args = append(args, before)
	}
	query += ` ORDER BY sequence DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries of account %s: %w", accountID, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan entries of account %s: %w", accountID, err)
	}

	var next *string
	if len(collected) > limit {
		collected = collected[:limit]
		token := pagination.EncodeSequenceToken(collected[limit-1].Sequence)
		next = &token
	}
	entries := make([]domain.LedgerEntry, len(collected))
	for i, m := range collected {
		entries[i] = toDomainLedgerEntry(m)
	}
	return entries, next, nil
}

func (r *PgxLedgerRepository) CreateAccount(ctx context.Context, account domain.LedgerAccount) error {
	query := `
		INSERT INTO ledger_accounts (` + ledgerAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		string(account.Kind),
		account.OwnerID,
		account.SiteID,
		account.Balance,
		account.Sequence,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("%s account %s", account.Kind, account.OwnerID))
}

// PostEntry locks the account row, appends the entry and moves the cached balance in one transaction.
func (r *PgxLedgerRepository) PostEntry(ctx context.Context, key domain.AccountKey, entry domain.LedgerEntry) (*domain.LedgerAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	what := fmt.Sprintf("%s account %s", key.Kind, key.OwnerID)
	account, err := r.queryAccount(ctx, tx,
		`SELECT `+ledgerAccountColumns+` FROM ledger_accounts WHERE kind = $1 AND owner_id = $2 AND site_id = $3 FOR UPDATE;`,
		what, string(key.Kind), key.OwnerID, key.SiteID)
	if err != nil {
		return nil, err
	}

	account.Sequence++
	account.Balance = account.Balance.Add(entry.Amount)
	account.LastUpdatedAt = entry.CreatedAt
	account.LastUpdatedBy = entry.ActorID

	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (account_id, sequence, amount, balance_after, type, description, site_id, related_id, actor_id, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		account.AccountID,
		account.Sequence,
		entry.Amount,
		account.Balance,
		string(entry.Type),
		entry.Description,
		entry.SiteID,
		entry.RelatedID,
		entry.ActorID,
		entry.EntryDate,
		entry.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "insert ledger entry")
	}

	_, err = tx.Exec(ctx, `
		UPDATE ledger_accounts
		SET balance = $2, sequence = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;`,
		account.AccountID, account.Balance, account.Sequence, account.LastUpdatedAt, account.LastUpdatedBy)
	if err != nil {
		return nil, mapError(err, "update account balance")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccountsBySite relies on ON DELETE CASCADE to drop the entries.
func (r *PgxLedgerRepository) DeleteAccountsBySite(ctx context.Context, siteID string) error {
	if siteID == "" {
		return fmt.Errorf("%w: site id is required", apperrors.ErrValidation)
	}
	_, err := r.Pool.Exec(ctx, `DELETE FROM ledger_accounts WHERE site_id = $1;`, siteID)
	return mapError(err, "delete site accounts")
}
