package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a spend is paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
)

// PurchaseItem is one line of a purchase bill.
type PurchaseItem struct {
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// LineTotal returns quantity times unit price.
func (i PurchaseItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Purchase is a material purchase for a site.
type Purchase struct {
	PurchaseID      string          `json:"purchaseID"`
	SiteID          string          `json:"siteID"`
	VendorID        string          `json:"vendorID"`
	Items           []PurchaseItem  `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          EventStatus     `json:"status"`
	SubmittedBy     string          `json:"submittedBy"`
	BillURL         string          `json:"billURL,omitempty"`
	PurchaseDate    time.Time       `json:"purchaseDate"`
	VerifiedBy      string          `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time      `json:"verifiedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

// ValidateItems checks the line-item shape shared by live purchases and imports.
func ValidateItems(items []PurchaseItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: purchase needs at least one item", apperrors.ErrValidation)
	}
	for i, item := range items {
		if item.Name == "" || item.Unit == "" || item.Category == "" {
			return fmt.Errorf("%w: item %d needs name, unit and category", apperrors.ErrValidation, i)
		}
		if !item.Quantity.IsPositive() {
			return fmt.Errorf("%w: item %d quantity must be positive", apperrors.ErrValidation, i)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d unit price cannot be negative", apperrors.ErrValidation, i)
		}
	}
	return nil
}

// ItemsTotal sums the line totals of items.
func ItemsTotal(items []PurchaseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ResolvePurchaseTotal returns the amount a purchase of items costs.
// A zero declared total defaults to the line sum; any other declared total must equal it.
func ResolvePurchaseTotal(items []PurchaseItem, declared decimal.Decimal) (decimal.Decimal, error) {
	total := ItemsTotal(items)
	if !declared.IsZero() && !declared.Equal(total) {
		return decimal.Zero, fmt.Errorf("%w: total amount %s does not match line items %s", apperrors.ErrValidation, declared, total)
	}
	return total, nil
}

// IsOutstandingCredit reports whether the purchase still counts towards vendor credit.
func (p Purchase) IsOutstandingCredit() bool {
	return p.PaymentMethod == PaymentCredit && !p.IsPaid && p.Status != StatusRejected
}
