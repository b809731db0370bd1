package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BulkImportRequest is a whole site with its history, imported in one go.
// Validation tags are checked by the import service before anything is written.
type BulkImportRequest struct {
	Site                   ImportSite                    `json:"site"`
	Purchases              []ImportPurchase              `json:"purchases" validate:"dive"`
	MachineryRentals       []ImportRental                `json:"machineryRentals" validate:"dive"`
	Attendances            []ImportAttendance            `json:"attendances" validate:"dive"`
	StockUsages            []ImportStockUsage            `json:"stockUsages" validate:"dive"`
	ContractorTransactions []ImportContractorTransaction `json:"contractorTransactions" validate:"dive"`
}

// ImportSite describes the site being onboarded.
type ImportSite struct {
	Name          string          `json:"name" validate:"required"`
	Location      string          `json:"location" validate:"required"`
	SiteManagerID string          `json:"siteManagerID"`
	StartDate     time.Time       `json:"startDate" validate:"required"`
	Budget        decimal.Decimal `json:"budget" validate:"gte=0"`
	Phases        []ImportPhase   `json:"phases" validate:"dive"`
}

// ImportPhase is a planned phase and its historical status.
type ImportPhase struct {
	Name           string     `json:"name" validate:"required,phase_name"`
	Status         string     `json:"status" validate:"required,oneof=not_started completed"`
	CompletionDate *time.Time `json:"completionDate"`
}

// ImportPurchaseItem is a purchase line.
type ImportPurchaseItem struct {
	Name      string          `json:"name" validate:"required"`
	Unit      string          `json:"unit" validate:"required"`
	Category  string          `json:"category" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
}

// ImportPurchase is a historical, already settled purchase.
type ImportPurchase struct {
	VendorID      string               `json:"vendorID" validate:"required"`
	Items         []ImportPurchaseItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount   decimal.Decimal      `json:"totalAmount" validate:"gt=0"`
	PaymentMethod string               `json:"paymentMethod" validate:"required,oneof=cash credit"`
	PurchaseDate  time.Time            `json:"purchaseDate" validate:"required"`
	BillURL       string               `json:"billURL"`
}

// ImportRental is a historical machinery rental.
type ImportRental struct {
	VendorID      string          `json:"vendorID" validate:"required"`
	MachineName   string          `json:"machineName" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=cash credit"`
	StartDate     time.Time       `json:"startDate" validate:"required"`
	EndDate       time.Time       `json:"endDate" validate:"required,gtefield=StartDate"`
}

// ImportAttendanceEntry is one employee's historical attendance.
type ImportAttendanceEntry struct {
	EmployeeID string          `json:"employeeID" validate:"required"`
	Present    bool            `json:"present"`
	Wage       decimal.Decimal `json:"wage" validate:"gte=0"`
}

// ImportAttendance is a historical day of attendance.
type ImportAttendance struct {
	Date    time.Time               `json:"date" validate:"required"`
	Entries []ImportAttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// ImportStockUsage is historical consumption of imported stock.
type ImportStockUsage struct {
	Name      string          `json:"name" validate:"required"`
	Unit      string          `json:"unit" validate:"required"`
	Category  string          `json:"category" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	UsageDate time.Time       `json:"usageDate" validate:"required"`
}

// ImportContractorTransaction is a historical contractor movement.
type ImportContractorTransaction struct {
	ContractorID    string          `json:"contractorID" validate:"required"`
	Type            string          `json:"type" validate:"required,oneof=advance expense additional_payment"`
	Amount          decimal.Decimal `json:"amount" validate:"gt=0"`
	TransactionDate time.Time       `json:"transactionDate" validate:"required"`
	Description     string          `json:"description"`
}
