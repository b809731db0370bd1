package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseRepositoryFacade defines persistence for purchases
type PurchaseRepositoryFacade interface {
	SavePurchase(ctx context.Context, purchase domain.Purchase) error
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ResolvePurchase stores the resolved purchase only if the stored one is still pending.
	// Returns apperrors.ErrAlreadyResolved otherwise.
	ResolvePurchase(ctx context.Context, purchase domain.Purchase) error

	// ListOutstandingCreditPurchases returns the vendor's unpaid, non-rejected credit purchases.
	ListOutstandingCreditPurchases(ctx context.Context, vendorID string) ([]domain.Purchase, error)

	// MarkPurchasesPaid flags purchases as settled.
	MarkPurchasesPaid(ctx context.Context, purchaseIDs []string, paidAt time.Time, userID string) error

	DeletePurchase(ctx context.Context, purchaseID string) error
}

// RentalRepositoryFacade defines persistence for machinery rentals
type RentalRepositoryFacade interface {
	SaveRental(ctx context.Context, rental domain.MachineryRental) error
	FindRentalByID(ctx context.Context, rentalID string) (*domain.MachineryRental, error)

	// ResolveRental stores the resolved rental only if the stored one is still pending.
	ResolveRental(ctx context.Context, rental domain.MachineryRental) error

	DeleteRental(ctx context.Context, rentalID string) error
}

// ClientTransactionRepositoryFacade defines persistence for client payments
type ClientTransactionRepositoryFacade interface {
	SaveClientTransaction(ctx context.Context, txn domain.ClientTransaction) error
	FindClientTransactionByID(ctx context.Context, transactionID string) (*domain.ClientTransaction, error)

	// ResolveClientTransaction stores the resolved payment only if the stored one is still pending.
	ResolveClientTransaction(ctx context.Context, txn domain.ClientTransaction) error
}

// AttendanceRepositoryFacade defines persistence for attendance
type AttendanceRepositoryFacade interface {
	SaveAttendance(ctx context.Context, attendance domain.Attendance) error
	DeleteAttendance(ctx context.Context, attendanceID string) error
}

// StockRepositoryFacade defines persistence for stock lines and their usage
type StockRepositoryFacade interface {
	// AdjustStock adds delta to the stock line at key, creating the line if absent.
	AdjustStock(ctx context.Context, key domain.StockKey, delta decimal.Decimal, userID string, now time.Time) (*domain.Stock, error)

	FindStock(ctx context.Context, key domain.StockKey) (*domain.Stock, error)
	ListStockBySite(ctx context.Context, siteID string) ([]domain.Stock, error)
	DeleteStockBySite(ctx context.Context, siteID string) error

	SaveStockUsage(ctx context.Context, usage domain.StockUsage) error
	DeleteStockUsage(ctx context.Context, usageID string) error
}

// ContractorRepositoryFacade defines persistence for contractor transactions
type ContractorRepositoryFacade interface {
	SaveContractorTransaction(ctx context.Context, txn domain.ContractorTransaction) error
	DeleteContractorTransaction(ctx context.Context, transactionID string) error
	ListContractorTransactions(ctx context.Context, contractorID, siteID string) ([]domain.ContractorTransaction, error)
}
