package services_test

import (
	"testing"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type WorkflowTestSuite struct {
	ledgerSuite
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}

func (s *WorkflowTestSuite) cementAndSteel(method domain.PaymentMethod) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		SiteID:   s.siteID,
		VendorID: "vendor-1",
		Items: []dto.PurchaseItemRequest{
			{Name: "Cement", Unit: "bag", Category: "binder", Quantity: d(100), UnitPrice: d(30)},
			{Name: "Steel", Unit: "ton", Category: "metal", Quantity: d(10), UnitPrice: d(200)},
		},
		TotalAmount:   d(5000),
		PaymentMethod: method,
	}
}

func (s *WorkflowTestSuite) TestCashPurchaseLifecycle() {
	s.initCompany(20000)

	purchase, err := s.svc.Workflow.CreatePurchase(s.ctx, admin, s.cementAndSteel(domain.PaymentCash))
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, purchase.Status)
	s.True(d(15000).Equal(s.companyBalance()), "cash is debited at request time")
	s.True(s.siteBalances().Expenses.IsZero(), "expenses wait for verification")

	pending := s.notificationsOfType(purchase.PurchaseID, domain.NotifyPurchaseVerification)
	s.Len(pending, 2, "one notification per admin")
	for _, n := range pending {
		s.Equal(domain.NotificationPending, n.Status)
	}

	verified, err := s.svc.Workflow.VerifyPurchase(s.ctx, admin2, purchase.PurchaseID, dto.ResolveRequest{Approve: true})
	s.Require().NoError(err)
	s.Equal(domain.StatusVerified, verified.Status)
	s.Equal(admin2.UserID, verified.VerifiedBy)
	s.True(d(5000).Equal(s.siteBalances().Expenses))
	s.True(d(15000).Equal(s.companyBalance()), "verification does not debit again")
	s.True(d(100).Equal(s.stockOf("Cement", "bag", "binder")))
	s.True(d(10).Equal(s.stockOf("Steel", "ton", "metal")))

	for _, n := range s.notificationsOfType(purchase.PurchaseID, domain.NotifyPurchaseVerification) {
		s.Equal(domain.NotificationApproved, n.Status)
	}
	outcome := s.notificationsOfType(purchase.PurchaseID, domain.NotifyPurchaseVerified)
	s.Require().Len(outcome, 1)
	s.Equal(admin.UserID, outcome[0].UserID)
}

func (s *WorkflowTestSuite) TestVerifyTwiceIsRejectedWithoutDoubleStock() {
	s.initCompany(20000)
	purchase, err := s.svc.Workflow.CreatePurchase(s.ctx, admin, s.cementAndSteel(domain.PaymentCash))
	s.Require().NoError(err)

	_, err = s.svc.Workflow.VerifyPurchase(s.ctx, admin, purchase.PurchaseID, dto.ResolveRequest{Approve: true})
	s.Require().NoError(err)

	_, err = s.svc.Workflow.VerifyPurchase(s.ctx, admin, purchase.PurchaseID, dto.ResolveRequest{Approve: true})
	s.ErrorIs(err, apperrors.ErrAlreadyResolved)
	_, err = s.svc.Workflow.VerifyPurchase(s.ctx, admin, purchase.PurchaseID, dto.ResolveRequest{Approve: false})
	s.ErrorIs(err, apperrors.ErrAlreadyResolved)

	s.True(d(100).Equal(s.stockOf("Cement", "bag", "binder")))
	s.True(d(5000).Equal(s.siteBalances().Expenses))
}

func (s *WorkflowTestSuite) TestExpensesGrowByExactSumOfVerifiedPurchases() {
	s.initCompany(100000)
	amounts := []int64{1200, 800, 4500, 333}

	var total int64
	for _, amount := range amounts {
		req := dto.CreatePurchaseRequest{
			SiteID:        s.siteID,
			VendorID:      "vendor-2",
			Items:         []dto.PurchaseItemRequest{{Name: "Sand", Unit: "m3", Category: "aggregate", Quantity: d(1), UnitPrice: d(amount)}},
			PaymentMethod: domain.PaymentCash,
		}
		purchase, err := s.svc.Workflow.CreatePurchase(s.ctx, admin, req)
		s.Require().NoError(err)
		s.True(d(amount).Equal(purchase.TotalAmount), "total defaults to the sum of line totals")

		_, err = s.svc.Workflow.VerifyPurchase(s.ctx, admin, purchase.PurchaseID, dto.ResolveRequest{Approve: true})
		s.Require().NoError(err)
		total += amount
	}

	s.True(d(total).Equal(s.siteBalances().Expenses))
	s.True(d(int64(len(amounts))).Equal(s.stockOf("Sand", "m3", "aggregate")))
}

func (s *WorkflowTestSuite) TestUnderfundedSiteManagerCashPurchaseWritesNothing() {
	s.initCompany(20000)
	_, err := s.svc.Accounts.FundUserAllowance(s.ctx, admin, manager.UserID, d(1000), "")
	s.Require().NoError(err)
	before := s.store.Counts()

	_, err = s.svc.Workflow.CreatePurchase(s.ctx, manager, s.cementAndSteel(domain.PaymentCash))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	after := s.store.Counts()
	s.Equal(before.Purchases, after.Purchases)
	s.Equal(before.Notifications, after.Notifications)

	allowance, err := s.svc.Accounts.GetUserExpenseAccount(s.ctx, manager.UserID)
	s.Require().NoError(err)
	s.True(d(1000).Equal(allowance.Balance))
}

func (s *WorkflowTestSuite) TestPurchaseTotalMustMatchLineItems() {
	s.initCompany(20000)
	before := s.store.Counts()

	_, err := s.svc.Workflow.CreatePurchase(s.ctx, admin, dto.CreatePurchaseRequest{
		SiteID:   s.siteID,
		VendorID: "vendor-1",
		Items: []dto.PurchaseItemRequest{
			{Name: "Cement", Unit: "bag", Category: "binder", Quantity: d(1000), UnitPrice: d(90)},
		},
		TotalAmount:   d(1),
		PaymentMethod: domain.PaymentCash,
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	after := s.store.Counts()
	s.Equal(before.Purchases, after.Purchases)
	s.Equal(before.Stocks, after.Stocks)
	s.True(d(20000).Equal(s.companyBalance()))
}

func (s *WorkflowTestSuite) TestUnderfundedSiteManagerRentalIsRejected() {
	s.initCompany(20000)
	_, err := s.svc.Accounts.FundUserAllowance(s.ctx, admin, manager.UserID, d(1000), "")
	s.Require().NoError(err)

	_, err = s.svc.Workflow.CreateMachineryRental(s.ctx, manager, dto.CreateRentalRequest{
		SiteID:        s.siteID,
		VendorID:      "vendor-9",
		MachineName:   "JCB",
		Amount:        d(1500),
		PaymentMethod: domain.PaymentCash,
		StartDate:     fixedNow,
		EndDate:       fixedNow.AddDate(0, 0, 3),
	})
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Zero(s.store.Counts().Rentals)
}

func (s *WorkflowTestSuite) TestSiteManagerWithoutAllowanceCannotSpendCash() {
	s.initCompany(20000)
	_, err := s.svc.Workflow.CreatePurchase(s.ctx, manager, s.cementAndSteel(domain.PaymentCash))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (s *WorkflowTestSuite) TestSiteManagerRentalFromAllowance() {
	s.initCompany(20000)
	_, err := s.svc.Accounts.FundUserAllowance(s.ctx, admin, manager.UserID, d(3000), "")
	s.Require().NoError(err)
	s.True(d(17000).Equal(s.companyBalance()))

	rental, err := s.svc.Workflow.CreateMachineryRental(s.ctx, manager, dto.CreateRentalRequest{
		SiteID:        s.siteID,
		VendorID:      "vendor-9",
		MachineName:   "Crane",
		Amount:        d(1500),
		PaymentMethod: domain.PaymentCash,
		StartDate:     fixedNow,
		EndDate:       fixedNow.AddDate(0, 0, 1),
	})
	s.Require().NoError(err)

	allowance, err := s.svc.Accounts.GetUserExpenseAccount(s.ctx, manager.UserID)
	s.Require().NoError(err)
	s.True(d(1500).Equal(allowance.Balance))

	_, err = s.svc.Workflow.VerifyMachineryRental(s.ctx, admin, rental.RentalID, dto.ResolveRequest{Approve: true})
	s.Require().NoError(err)
	s.True(d(1500).Equal(s.siteBalances().Expenses))
	s.Len(s.notificationsOfType(rental.RentalID, domain.NotifyRentalVerified), 1)
}

func (s *WorkflowTestSuite) TestRejectionKeepsFundsInFlight() {
	s.initCompany(20000)
	purchase, err := s.svc.Workflow.CreatePurchase(s.ctx, admin, s.cementAndSteel(domain.PaymentCash))
	s.Require().NoError(err)

	rejected, err := s.svc.Workflow.VerifyPurchase(s.ctx, admin2, purchase.PurchaseID, dto.ResolveRequest{Approve: false, Reason: "wrong bill"})
	s.Require().NoError(err)
	s.Equal(domain.StatusRejected, rejected.Status)
	s.Equal("wrong bill", rejected.RejectionReason)

	s.True(d(15000).Equal(s.companyBalance()), "rejection does not refund the eager debit")
	s.True(s.siteBalances().Expenses.IsZero())
	for _, n := range s.notificationsOfType(purchase.PurchaseID, domain.NotifyPurchaseVerification) {
		s.Equal(domain.NotificationRejected, n.Status)
	}
	s.Len(s.notificationsOfType(purchase.PurchaseID, domain.NotifyPurchaseRejected), 1)
}

func (s *WorkflowTestSuite) TestOnlyAdminsResolve() {
	s.initCompany(20000)
	purchase, err := s.svc.Workflow.CreatePurchase(s.ctx, admin, s.cementAndSteel(domain.PaymentCash))
	s.Require().NoError(err)

	_, err = s.svc.Workflow.VerifyPurchase(s.ctx, manager, purchase.PurchaseID, dto.ResolveRequest{Approve: true})
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.Workflow.CreatePurchase(s.ctx, client, s.cementAndSteel(domain.PaymentCash))
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *WorkflowTestSuite) TestClientPaymentAddsFunds() {
	s.initCompany(20000)
	_, err := s.svc.Accounts.AdjustSiteBudget(s.ctx, s.siteID, d(10000), domain.PostingMeta{Description: "Initial budget", ActorID: admin.UserID})
	s.Require().NoError(err)

	payment, err := s.svc.Workflow.CreateClientTransaction(s.ctx, client, dto.CreateClientTransactionRequest{
		SiteID:      s.siteID,
		Amount:      d(2000),
		PaymentMode: "bank",
		Reference:   "UTR-991",
	})
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, payment.Status)
	s.True(d(20000).Equal(s.companyBalance()))

	verified, err := s.svc.Workflow.VerifyClientTransaction(s.ctx, admin, payment.TransactionID, dto.ResolveRequest{Approve: true})
	s.Require().NoError(err)
	s.Equal(domain.StatusVerified, verified.Status)
	s.Equal(admin.UserID, verified.VerifiedBy)
	s.NotNil(verified.VerifiedAt)

	s.True(d(22000).Equal(s.companyBalance()))
	s.True(d(12000).Equal(s.siteBalances().Budget))

	outcome := s.notificationsOfType(payment.TransactionID, domain.NotifyPaymentVerified)
	s.Require().Len(outcome, 1)
	s.Equal(client.UserID, outcome[0].UserID)
	s.Equal(domain.NotificationApproved, outcome[0].Status)
}

func (s *WorkflowTestSuite) TestOnlyClientsSubmitPayments() {
	s.initCompany(0)
	_, err := s.svc.Workflow.CreateClientTransaction(s.ctx, admin, dto.CreateClientTransactionRequest{
		SiteID: s.siteID, Amount: d(10), PaymentMode: "cash",
	})
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *WorkflowTestSuite) TestPhaseApprovalRoundTrip() {
	phase := domain.Phase{PhaseID: "phase-1", SiteID: s.siteID, Name: "Foundation", Status: domain.StatusNotStarted}
	s.Require().NoError(s.store.SavePhases(s.ctx, []domain.Phase{phase}))

	_, err := s.svc.Workflow.ResolvePhase(s.ctx, admin, phase.PhaseID, dto.ResolveRequest{Approve: true})
	s.ErrorIs(err, apperrors.ErrValidation, "a phase must be requested before it can be resolved")

	_, err = s.svc.Workflow.RequestPhaseCompletion(s.ctx, admin, phase.PhaseID)
	s.ErrorIs(err, apperrors.ErrForbidden)

	requested, err := s.svc.Workflow.RequestPhaseCompletion(s.ctx, manager, phase.PhaseID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, requested.Status)
	s.Len(s.notificationsOfType(phase.PhaseID, domain.NotifyPhaseApproval), 2)

	_, err = s.svc.Workflow.RequestPhaseCompletion(s.ctx, manager, phase.PhaseID)
	s.ErrorIs(err, apperrors.ErrValidation)

	rejected, err := s.svc.Workflow.ResolvePhase(s.ctx, admin, phase.PhaseID, dto.ResolveRequest{Approve: false, Reason: "curing incomplete"})
	s.Require().NoError(err)
	s.Equal(domain.StatusNotStarted, rejected.Status)
	s.Nil(rejected.CompletionDate)
	s.Len(s.notificationsOfType(phase.PhaseID, domain.NotifyPhaseRejected), 1)

	_, err = s.svc.Workflow.RequestPhaseCompletion(s.ctx, manager, phase.PhaseID)
	s.Require().NoError(err)

	completed, err := s.svc.Workflow.ResolvePhase(s.ctx, admin, phase.PhaseID, dto.ResolveRequest{Approve: true})
	s.Require().NoError(err)
	s.Equal(domain.StatusCompleted, completed.Status)
	s.Require().NotNil(completed.CompletionDate)
	s.Equal(fixedNow, *completed.CompletionDate)

	approved := s.notificationsOfType(phase.PhaseID, domain.NotifyPhaseApproved)
	s.Require().Len(approved, 1)
	s.Equal(manager.UserID, approved[0].UserID)

	_, err = s.svc.Workflow.ResolvePhase(s.ctx, admin, phase.PhaseID, dto.ResolveRequest{Approve: true})
	s.ErrorIs(err, apperrors.ErrAlreadyResolved)
}

func (s *WorkflowTestSuite) TestAttendancePostsExpenseImmediately() {
	attendance, err := s.svc.Workflow.RecordAttendance(s.ctx, manager, dto.RecordAttendanceRequest{
		SiteID: s.siteID,
		Date:   fixedNow,
		Entries: []dto.AttendanceEntryRequest{
			{EmployeeID: "e1", Present: true, Wage: d(700)},
			{EmployeeID: "e2", Present: false, Wage: d(700)},
			{EmployeeID: "e3", Present: true, Wage: d(650)},
		},
	})
	s.Require().NoError(err)
	s.True(d(1350).Equal(attendance.TotalWage))
	s.True(d(1350).Equal(s.siteBalances().Expenses))
	s.Zero(s.store.Counts().Notifications, "attendance has no approval step")
}

func (s *WorkflowTestSuite) TestContractorAutoEnrollAndBalance() {
	s.initCompany(20000)

	_, err := s.svc.Accounts.GetContractorAccount(s.ctx, "contractor-1", s.siteID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Workflow.RecordContractorTransaction(s.ctx, admin, dto.RecordContractorTransactionRequest{
		ContractorID: "contractor-1", SiteID: s.siteID, Type: domain.ContractorAdvance, Amount: d(1000),
	})
	s.Require().NoError(err)

	account, err := s.svc.Accounts.GetContractorAccount(s.ctx, "contractor-1", s.siteID)
	s.Require().NoError(err)
	s.True(d(1000).Equal(account.Balance))
	s.True(d(19000).Equal(s.companyBalance()))
	s.True(d(1000).Equal(s.siteBalances().Expenses))

	_, err = s.svc.Workflow.RecordContractorTransaction(s.ctx, manager, dto.RecordContractorTransactionRequest{
		ContractorID: "contractor-1", SiteID: s.siteID, Type: domain.ContractorExpense, Amount: d(300),
	})
	s.Require().NoError(err)

	account, err = s.svc.Accounts.GetContractorAccount(s.ctx, "contractor-1", s.siteID)
	s.Require().NoError(err)
	s.True(d(700).Equal(account.Balance))
	s.True(d(1000).Equal(s.siteBalances().Expenses), "contractor expenses do not touch site expenses")

	_, err = s.svc.Workflow.RecordContractorTransaction(s.ctx, manager, dto.RecordContractorTransactionRequest{
		ContractorID: "contractor-1", SiteID: s.siteID, Type: domain.ContractorAdditionalPayment, Amount: d(100),
	})
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *WorkflowTestSuite) TestVendorCreditAccruesAndSettles() {
	s.initCompany(20000)

	purchase, err := s.svc.Workflow.CreatePurchase(s.ctx, admin, s.cementAndSteel(domain.PaymentCredit))
	s.Require().NoError(err)
	s.True(d(20000).Equal(s.companyBalance()), "credit skips the debit")

	outstanding, purchases, err := s.svc.Accounts.VendorOutstandingCredit(s.ctx, "vendor-1")
	s.Require().NoError(err)
	s.True(d(5000).Equal(outstanding))
	s.Len(purchases, 1)

	_, err = s.svc.Workflow.VerifyPurchase(s.ctx, admin, purchase.PurchaseID, dto.ResolveRequest{Approve: true})
	s.Require().NoError(err)

	paid, err := s.svc.Workflow.SettleVendorCredit(s.ctx, admin, "vendor-1")
	s.Require().NoError(err)
	s.True(d(5000).Equal(paid))
	s.True(d(15000).Equal(s.companyBalance()))

	outstanding, _, err = s.svc.Accounts.VendorOutstandingCredit(s.ctx, "vendor-1")
	s.Require().NoError(err)
	s.True(outstanding.IsZero())

	stored, err := s.svc.Workflow.GetPurchase(s.ctx, purchase.PurchaseID)
	s.Require().NoError(err)
	s.True(stored.IsPaid)
}

func (s *WorkflowTestSuite) TestSettlementNeedsFunds() {
	s.initCompany(1000)
	_, err := s.svc.Workflow.CreatePurchase(s.ctx, admin, s.cementAndSteel(domain.PaymentCredit))
	s.Require().NoError(err)

	_, err = s.svc.Workflow.SettleVendorCredit(s.ctx, admin, "vendor-1")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.True(d(1000).Equal(s.companyBalance()))
}
