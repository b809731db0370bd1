package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientTransaction is a payment sent by a client towards a site.
// Verifying it is the only flow that adds funds to the company.
type ClientTransaction struct {
	TransactionID   string          `json:"transactionID"`
	SiteID          string          `json:"siteID"`
	ClientID        string          `json:"clientID"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMode     string          `json:"paymentMode"`
	Reference       string          `json:"reference,omitempty"`
	ReceiptURL      string          `json:"receiptURL,omitempty"`
	Status          EventStatus     `json:"status"`
	PaymentDate     time.Time       `json:"paymentDate"`
	VerifiedBy      string          `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time      `json:"verifiedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	AuditFields
}
