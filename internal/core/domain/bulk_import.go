package domain

import "github.com/shopspring/decimal"

// ImportedRecords tracks every document persisted by one bulk import, per kind.
type ImportedRecords struct {
	SiteID                   string          `json:"siteID"`
	PhaseIDs                 []string        `json:"phaseIDs"`
	PurchaseIDs              []string        `json:"purchaseIDs"`
	RentalIDs                []string        `json:"rentalIDs"`
	AttendanceIDs            []string        `json:"attendanceIDs"`
	StockUsageIDs            []string        `json:"stockUsageIDs"`
	ContractorTransactionIDs []string        `json:"contractorTransactionIDs"`
	ProjectedExpenditure     decimal.Decimal `json:"projectedExpenditure"`
}
