package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind identifies which of the ledger's account shapes a row represents.
type AccountKind string

const (
	KindCompany       AccountKind = "company"
	KindSiteBudget    AccountKind = "site_budget"
	KindSiteExpense   AccountKind = "site_expense"
	KindUserAllowance AccountKind = "user_allowance"
	KindContractor    AccountKind = "contractor"
)

// CompanyOwnerID is the well-known owner of the company singleton account.
const CompanyOwnerID = "company"

// AccountKey locates an account. SiteID is only set for per-site kinds.
type AccountKey struct {
	Kind    AccountKind `json:"kind"`
	OwnerID string      `json:"ownerID"`
	SiteID  string      `json:"siteID,omitempty"`
}

// CompanyKey returns the key of the company singleton.
func CompanyKey() AccountKey {
	return AccountKey{Kind: KindCompany, OwnerID: CompanyOwnerID}
}

// SiteBudgetKey returns the key of a site's budget account.
func SiteBudgetKey(siteID string) AccountKey {
	return AccountKey{Kind: KindSiteBudget, OwnerID: siteID, SiteID: siteID}
}

// SiteExpenseKey returns the key of a site's cumulative expenses account.
func SiteExpenseKey(siteID string) AccountKey {
	return AccountKey{Kind: KindSiteExpense, OwnerID: siteID, SiteID: siteID}
}

// UserAllowanceKey returns the key of a site manager's spending allowance.
func UserAllowanceKey(userID string) AccountKey {
	return AccountKey{Kind: KindUserAllowance, OwnerID: userID}
}

// ContractorKey returns the key of a contractor's balance on one site.
func ContractorKey(contractorID, siteID string) AccountKey {
	return AccountKey{Kind: KindContractor, OwnerID: contractorID, SiteID: siteID}
}

// LedgerAccount is a cached aggregate balance over an append-only entry log.
// Sequence is the number of the last entry posted to the account.
type LedgerAccount struct {
	AccountID string          `json:"accountID"`
	Kind      AccountKind     `json:"kind"`
	OwnerID   string          `json:"ownerID"`
	SiteID    string          `json:"siteID,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Sequence  int64           `json:"sequence"`
	AuditFields
}

// Key returns the lookup key of the account.
func (a LedgerAccount) Key() AccountKey {
	return AccountKey{Kind: a.Kind, OwnerID: a.OwnerID, SiteID: a.SiteID}
}

// CanCover reports whether the balance is at least amount.
func (a LedgerAccount) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
