package dto

import (
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InitializeCompanyRequest opens the company account with an opening balance.
type InitializeCompanyRequest struct {
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Description    string          `json:"description"`
}

// FundAllowanceRequest moves company money into a site manager's allowance.
type FundAllowanceRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Kind          string          `json:"kind"`
	OwnerID       string          `json:"ownerID"`
	SiteID        string          `json:"siteID,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Sequence      int64           `json:"sequence"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.LedgerAccount to AccountResponse DTO.
func ToAccountResponse(a *domain.LedgerAccount) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Kind:          string(a.Kind),
		OwnerID:       a.OwnerID,
		SiteID:        a.SiteID,
		Balance:       a.Balance,
		Sequence:      a.Sequence,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// ListEntriesParams holds parameters for listing ledger entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of ledger entries.
type ListEntriesResponse struct {
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// VendorCreditResponse reports a vendor's outstanding credit.
type VendorCreditResponse struct {
	VendorID    string          `json:"vendorID"`
	Outstanding decimal.Decimal `json:"outstanding"`
	PurchaseIDs []string        `json:"purchaseIDs"`
}
