package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MachineryRental is a rental of equipment for a site.
type MachineryRental struct {
	RentalID        string          `json:"rentalID"`
	SiteID          string          `json:"siteID"`
	VendorID        string          `json:"vendorID"`
	MachineName     string          `json:"machineName"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          EventStatus     `json:"status"`
	SubmittedBy     string          `json:"submittedBy"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	BillURL         string          `json:"billURL,omitempty"`
	VerifiedBy      string          `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time      `json:"verifiedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	AuditFields
}
