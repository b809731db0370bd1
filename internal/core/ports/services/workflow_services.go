package services

import (
	"context"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// SpendAuthorizerSvc clears spends before the spending document exists.
type SpendAuthorizerSvc interface {
	// Authorize checks affordability for cash spends and posts the debit against the payer.
	// Credit spends pass without a check or a debit. Returns the payer's account after the debit, or nil for credit.
	Authorize(ctx context.Context, req dto.SpendRequest) (*domain.LedgerAccount, error)
}

// SpendEventSvc defines creation and verification of spending events
type SpendEventSvc interface {
	CreatePurchase(ctx context.Context, actor domain.Actor, req dto.CreatePurchaseRequest) (*domain.Purchase, error)
	VerifyPurchase(ctx context.Context, actor domain.Actor, purchaseID string, req dto.ResolveRequest) (*domain.Purchase, error)
	GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	CreateMachineryRental(ctx context.Context, actor domain.Actor, req dto.CreateRentalRequest) (*domain.MachineryRental, error)
	VerifyMachineryRental(ctx context.Context, actor domain.Actor, rentalID string, req dto.ResolveRequest) (*domain.MachineryRental, error)
	GetMachineryRental(ctx context.Context, rentalID string) (*domain.MachineryRental, error)
}

// IncomeEventSvc defines client payments, the only flow that adds funds
type IncomeEventSvc interface {
	CreateClientTransaction(ctx context.Context, actor domain.Actor, req dto.CreateClientTransactionRequest) (*domain.ClientTransaction, error)
	VerifyClientTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.ResolveRequest) (*domain.ClientTransaction, error)
	GetClientTransaction(ctx context.Context, transactionID string) (*domain.ClientTransaction, error)
}

// PhaseWorkflowSvc defines the phase completion approval
type PhaseWorkflowSvc interface {
	RequestPhaseCompletion(ctx context.Context, actor domain.Actor, phaseID string) (*domain.Phase, error)
	ResolvePhase(ctx context.Context, actor domain.Actor, phaseID string, req dto.ResolveRequest) (*domain.Phase, error)
}

// SiteOperationsSvc defines postings that skip the pending step
type SiteOperationsSvc interface {
	// RecordAttendance posts the day's wages to site expenses immediately.
	RecordAttendance(ctx context.Context, actor domain.Actor, req dto.RecordAttendanceRequest) (*domain.Attendance, error)

	RecordContractorTransaction(ctx context.Context, actor domain.Actor, req dto.RecordContractorTransactionRequest) (*domain.ContractorTransaction, error)

	// SettleVendorCredit pays all of a vendor's outstanding credit purchases from the company account.
	SettleVendorCredit(ctx context.Context, actor domain.Actor, vendorID string) (decimal.Decimal, error)
}

// VerificationWorkflowSvcFacade combines all workflow service interfaces
type VerificationWorkflowSvcFacade interface {
	SpendEventSvc
	IncomeEventSvc
	PhaseWorkflowSvc
	SiteOperationsSvc
}

// BulkImportSvc backfills a whole site with its history.
type BulkImportSvc interface {
	ImportSite(ctx context.Context, actor domain.Actor, req dto.BulkImportRequest) (*domain.ImportedRecords, error)
}

// SalarySchedulerSvc assigns monthly salaries.
type SalarySchedulerSvc interface {
	// RunMonthlySalaryAssignment assigns now's month salary to every salaried user that lacks one.
	// It returns the number of assignments created.
	RunMonthlySalaryAssignment(ctx context.Context, now time.Time) (int, error)

	// Start runs the assignment immediately and then on every tick until ctx is done.
	Start(ctx context.Context, interval time.Duration)
}
