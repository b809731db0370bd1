package dto

import (
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SpendRequest asks the authorizer to clear (and for cash, debit) a spend.
type SpendRequest struct {
	Requester     domain.Actor
	Amount        decimal.Decimal
	PaymentMethod domain.PaymentMethod
	SiteID        string
	RelatedID     string
	Description   string
	Date          time.Time
}

// PurchaseItemRequest is one line of a purchase.
type PurchaseItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	Unit      string          `json:"unit" binding:"required"`
	Category  string          `json:"category" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ToDomainItems converts request lines into domain purchase items.
func ToDomainItems(items []PurchaseItemRequest) []domain.PurchaseItem {
	out := make([]domain.PurchaseItem, len(items))
	for i, it := range items {
		out[i] = domain.PurchaseItem{
			Name:      it.Name,
			Unit:      it.Unit,
			Category:  it.Category,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return out
}

// CreatePurchaseRequest defines the payload for submitting a purchase.
type CreatePurchaseRequest struct {
	SiteID        string                `json:"siteID" binding:"required"`
	VendorID      string                `json:"vendorID" binding:"required"`
	Items         []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	PaymentMethod domain.PaymentMethod  `json:"paymentMethod" binding:"required,oneof=cash credit"`
	BillURL       string                `json:"billURL"`
	PurchaseDate  *time.Time            `json:"purchaseDate"`
}

// CreateRentalRequest defines the payload for submitting a machinery rental.
type CreateRentalRequest struct {
	SiteID        string               `json:"siteID" binding:"required"`
	VendorID      string               `json:"vendorID" binding:"required"`
	MachineName   string               `json:"machineName" binding:"required"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash credit"`
	StartDate     time.Time            `json:"startDate" binding:"required"`
	EndDate       time.Time            `json:"endDate" binding:"required"`
	BillURL       string               `json:"billURL"`
}

// CreateClientTransactionRequest defines the payload a client sends with a payment.
type CreateClientTransactionRequest struct {
	SiteID      string          `json:"siteID" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"paymentMode" binding:"required,oneof=bank upi cash cheque"`
	Reference   string          `json:"reference"`
	ReceiptURL  string          `json:"receiptURL"`
	PaymentDate *time.Time      `json:"paymentDate"`
}

// ResolveRequest approves or rejects a pending event.
type ResolveRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}
