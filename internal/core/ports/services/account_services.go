package services

import (
	"context"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations over ledger accounts
type AccountReaderSvc interface {
	// GetCompanyAccount returns the company singleton, or apperrors.ErrInvariantViolation if it was never initialized.
	GetCompanyAccount(ctx context.Context) (*domain.LedgerAccount, error)

	// GetSiteBalances returns the budget and cumulative expenses of a site.
	GetSiteBalances(ctx context.Context, siteID string) (*domain.SiteBalances, error)

	// GetUserExpenseAccount returns a site manager's spending allowance.
	GetUserExpenseAccount(ctx context.Context, userID string) (*domain.LedgerAccount, error)

	// GetContractorAccount returns a contractor's balance on one site.
	GetContractorAccount(ctx context.Context, contractorID, siteID string) (*domain.LedgerAccount, error)

	// VendorOutstandingCredit sums the vendor's unpaid credit purchases.
	VendorOutstandingCredit(ctx context.Context, vendorID string) (decimal.Decimal, []domain.Purchase, error)

	// ListEntries lists an account's entries using token-based pagination.
	ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// AccountAdjusterSvc defines single-account balance postings
type AccountAdjusterSvc interface {
	AdjustCompanyBalance(ctx context.Context, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error)
	AdjustSiteBudget(ctx context.Context, siteID string, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error)

	// PostSiteExpense adds amount to the site's cumulative expenses.
	PostSiteExpense(ctx context.Context, siteID string, amount decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error)

	// AdjustUserExpenseBalance changes a site manager's allowance, opening it on first use.
	AdjustUserExpenseBalance(ctx context.Context, userID string, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error)

	// AdjustContractorBalance changes a contractor's site balance, enrolling the pair on first use.
	AdjustContractorBalance(ctx context.Context, contractorID, siteID string, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error)
}

// AccountLifecycleSvc defines account creation and funding operations
type AccountLifecycleSvc interface {
	// InitializeCompany opens the company singleton. A second call returns apperrors.ErrDuplicate.
	InitializeCompany(ctx context.Context, openingBalance decimal.Decimal, description string, actor domain.Actor) (*domain.LedgerAccount, error)

	// OpenSiteAccounts opens the budget and expense accounts of a new site.
	OpenSiteAccounts(ctx context.Context, siteID string, actorID string) error

	// FundUserAllowance moves company money into a site manager's allowance.
	FundUserAllowance(ctx context.Context, actor domain.Actor, userID string, amount decimal.Decimal, description string) (*domain.LedgerAccount, error)
}

// AccountRegistrySvcFacade combines all account-related service interfaces
type AccountRegistrySvcFacade interface {
	AccountReaderSvc
	AccountAdjusterSvc
	AccountLifecycleSvc
}
