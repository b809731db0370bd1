package dto

import (
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AttendanceEntryRequest is one employee's attendance.
type AttendanceEntryRequest struct {
	EmployeeID string          `json:"employeeID" binding:"required"`
	Present    bool            `json:"present"`
	Wage       decimal.Decimal `json:"wage"`
}

// RecordAttendanceRequest defines the payload for a day's attendance on a site.
type RecordAttendanceRequest struct {
	SiteID  string                   `json:"siteID" binding:"required"`
	Date    time.Time                `json:"date" binding:"required"`
	Entries []AttendanceEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// ToDomainAttendanceEntries converts request entries into domain entries.
func ToDomainAttendanceEntries(entries []AttendanceEntryRequest) []domain.AttendanceEntry {
	out := make([]domain.AttendanceEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.AttendanceEntry{EmployeeID: e.EmployeeID, Present: e.Present, Wage: e.Wage}
	}
	return out
}

// RecordContractorTransactionRequest defines the payload for a contractor transaction.
type RecordContractorTransactionRequest struct {
	ContractorID    string                   `json:"contractorID" binding:"required"`
	SiteID          string                   `json:"siteID" binding:"required"`
	Type            domain.ContractorTxnType `json:"type" binding:"required,oneof=advance expense additional_payment"`
	Amount          decimal.Decimal          `json:"amount"`
	Description     string                   `json:"description"`
	TransactionDate *time.Time               `json:"transactionDate"`
}

// ListNotificationsParams holds parameters for listing notifications.
type ListNotificationsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListNotificationsResponse wraps a page of notifications.
type ListNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	NextToken     *string               `json:"nextToken,omitempty"`
}
