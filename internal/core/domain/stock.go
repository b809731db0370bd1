package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockKey identifies a stock line on a site.
type StockKey struct {
	SiteID   string `json:"siteID"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

// Stock is the on-hand quantity of one material on one site.
type Stock struct {
	StockID  string          `json:"stockID"`
	Key      StockKey        `json:"key"`
	Quantity decimal.Decimal `json:"quantity"`
	AuditFields
}

// StockKeyFor returns the stock line a purchase item lands in.
func StockKeyFor(siteID string, item PurchaseItem) StockKey {
	return StockKey{SiteID: siteID, Name: item.Name, Unit: item.Unit, Category: item.Category}
}

// StockUsage records consumption of stock on a site.
type StockUsage struct {
	UsageID    string          `json:"usageID"`
	Key        StockKey        `json:"key"`
	Quantity   decimal.Decimal `json:"quantity"`
	UsageDate  time.Time       `json:"usageDate"`
	RecordedBy string          `json:"recordedBy"`
	AuditFields
}
