package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags a ledger posting.
type EntryType string

const (
	EntryIncoming          EntryType = "incoming"
	EntryExpenditure       EntryType = "expenditure"
	EntryPurchase          EntryType = "purchase"
	EntryRental            EntryType = "rental"
	EntryAttendance        EntryType = "attendance"
	EntryStockTransfer     EntryType = "stockTransfer"
	EntryContractorPayment EntryType = "contractor_payment"
	EntryAdvance           EntryType = "advance"
	EntryExpense           EntryType = "expense"
	EntryAdditionalPayment EntryType = "additional_payment"
	EntryReversal          EntryType = "reversal"
)

// LedgerEntry is an immutable balance change, keyed by (AccountID, Sequence).
// Amount is signed: positive adds to the balance, negative removes from it.
type LedgerEntry struct {
	AccountID    string          `json:"accountID"`
	Sequence     int64           `json:"sequence"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Type         EntryType       `json:"type"`
	Description  string          `json:"description"`
	SiteID       string          `json:"siteID,omitempty"`
	RelatedID    string          `json:"relatedID,omitempty"`
	ActorID      string          `json:"actorID,omitempty"`
	EntryDate    time.Time       `json:"entryDate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// PostingMeta describes the origin of a posting.
type PostingMeta struct {
	Type        EntryType
	Description string
	SiteID      string
	RelatedID   string
	ActorID     string
	Date        time.Time
}

// NewEntry builds an unsequenced entry for delta; the repository assigns Sequence and BalanceAfter.
func NewEntry(delta decimal.Decimal, meta PostingMeta, now time.Time) LedgerEntry {
	date := meta.Date
	if date.IsZero() {
		date = now
	}
	return LedgerEntry{
		Amount:      delta,
		Type:        meta.Type,
		Description: meta.Description,
		SiteID:      meta.SiteID,
		RelatedID:   meta.RelatedID,
		ActorID:     meta.ActorID,
		EntryDate:   date,
		CreatedAt:   now,
	}
}

// IsExpenditure reports whether the entry removes funds.
func (e LedgerEntry) IsExpenditure() bool {
	return e.Amount.IsNegative()
}
