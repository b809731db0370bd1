package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractorTxnType is the kind of a contractor transaction.
type ContractorTxnType string

const (
	ContractorAdvance           ContractorTxnType = "advance"
	ContractorExpense           ContractorTxnType = "expense"
	ContractorAdditionalPayment ContractorTxnType = "additional_payment"
)

// IsValid reports whether t is a known contractor transaction type.
func (t ContractorTxnType) IsValid() bool {
	switch t {
	case ContractorAdvance, ContractorExpense, ContractorAdditionalPayment:
		return true
	}
	return false
}

// IsPayout reports whether the transaction moves company money to the contractor.
func (t ContractorTxnType) IsPayout() bool {
	return t == ContractorAdvance || t == ContractorAdditionalPayment
}

// BalanceDelta is the signed change to the contractor's site balance.
func (t ContractorTxnType) BalanceDelta(amount decimal.Decimal) decimal.Decimal {
	if t == ContractorExpense {
		return amount.Neg()
	}
	return amount
}

// EntryType returns the ledger entry type used on the contractor account.
func (t ContractorTxnType) EntryType() EntryType {
	switch t {
	case ContractorAdvance:
		return EntryAdvance
	case ContractorAdditionalPayment:
		return EntryAdditionalPayment
	default:
		return EntryExpense
	}
}

// ContractorTransaction is a movement on a contractor's per-site balance.
type ContractorTransaction struct {
	TransactionID   string            `json:"transactionID"`
	ContractorID    string            `json:"contractorID"`
	SiteID          string            `json:"siteID"`
	Type            ContractorTxnType `json:"type"`
	Amount          decimal.Decimal   `json:"amount"`
	Description     string            `json:"description,omitempty"`
	TransactionDate time.Time         `json:"transactionDate"`
	RecordedBy      string            `json:"recordedBy"`
	AuditFields
}
