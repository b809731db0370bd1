package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Site is a construction site. Its budget and expenses live in ledger accounts.
type Site struct {
	SiteID        string    `json:"siteID"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	SiteManagerID string    `json:"siteManagerID,omitempty"`
	StartDate     time.Time `json:"startDate"`
	Imported      bool      `json:"imported"`
	AuditFields
}

// SiteBalances is the read view of a site's two scalar balances.
type SiteBalances struct {
	SiteID   string          `json:"siteID"`
	Budget   decimal.Decimal `json:"budget"`
	Expenses decimal.Decimal `json:"expenses"`
}
