package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAccount is a row of ledger_accounts. SiteID is '' for accounts without a site.
type LedgerAccount struct {
	AccountID string          `db:"account_id"`
	Kind      string          `db:"kind"`
	OwnerID   string          `db:"owner_id"`
	SiteID    string          `db:"site_id"`
	Balance   decimal.Decimal `db:"balance"`
	Sequence  int64           `db:"sequence"`
	AuditFields
}

// LedgerEntry is a row of ledger_entries.
type LedgerEntry struct {
	AccountID    string          `db:"account_id"`
	Sequence     int64           `db:"sequence"`
	Amount       decimal.Decimal `db:"amount"`
	BalanceAfter decimal.Decimal `db:"balance_after"`
	Type         string          `db:"type"`
	Description  string          `db:"description"`
	SiteID       string          `db:"site_id"`
	RelatedID    string          `db:"related_id"`
	ActorID      string          `db:"actor_id"`
	EntryDate    time.Time       `db:"entry_date"`
	CreatedAt    time.Time       `db:"created_at"`
}
