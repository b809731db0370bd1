package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceEntry is one employee's day on a site.
type AttendanceEntry struct {
	EmployeeID string          `json:"employeeID"`
	Present    bool            `json:"present"`
	Wage       decimal.Decimal `json:"wage"`
}

// Attendance is a day's roll call for a site. It is posted as a site expense at creation.
type Attendance struct {
	AttendanceID string            `json:"attendanceID"`
	SiteID       string            `json:"siteID"`
	Date         time.Time         `json:"date"`
	Entries      []AttendanceEntry `json:"entries"`
	TotalWage    decimal.Decimal   `json:"totalWage"`
	RecordedBy   string            `json:"recordedBy"`
	AuditFields
}

// PayableWage sums the wages of present employees.
func PayableWage(entries []AttendanceEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Present {
			total = total.Add(e.Wage)
		}
	}
	return total
}
