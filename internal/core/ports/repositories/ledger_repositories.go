package repositories

import (
	"context"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger accounts and entries
type LedgerReader interface {
	// FindAccount retrieves an account by its key. Returns apperrors.ErrNotFound if absent.
	FindAccount(ctx context.Context, key domain.AccountKey) (*domain.LedgerAccount, error)

	// FindAccountByID retrieves an account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// ListEntries retrieves entries of one account, newest first, using token-based pagination.
	ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines write operations for ledger accounts
type LedgerWriter interface {
	// CreateAccount opens a new account. Returns apperrors.ErrDuplicate if the key is taken.
	CreateAccount(ctx context.Context, account domain.LedgerAccount) error

	// PostEntry appends entry to the account at key and applies its amount to the cached balance.
	// The append and the balance update are one write on one account; nothing else is locked.
	PostEntry(ctx context.Context, key domain.AccountKey, entry domain.LedgerEntry) (*domain.LedgerAccount, error)

	// DeleteAccountsBySite removes every account scoped to a site together with its entries.
	DeleteAccountsBySite(ctx context.Context, siteID string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
