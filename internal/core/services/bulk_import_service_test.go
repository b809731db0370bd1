package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_ledger_app/internal/core/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

// failingPurchaseRepo fails the failOn-th SavePurchase call.
type failingPurchaseRepo struct {
	portsrepo.PurchaseRepositoryFacade
	failOn int
	calls  int
}

func (r *failingPurchaseRepo) SavePurchase(ctx context.Context, purchase domain.Purchase) error {
	r.calls++
	if r.calls == r.failOn {
		return errors.New("connection reset")
	}
	return r.PurchaseRepositoryFacade.SavePurchase(ctx, purchase)
}

type BulkImportTestSuite struct {
	ledgerSuite
}

func TestBulkImportTestSuite(t *testing.T) {
	suite.Run(t, new(BulkImportTestSuite))
}

func importPurchase(vendor string, qty, price int64) dto.ImportPurchase {
	return dto.ImportPurchase{
		VendorID: vendor,
		Items: []dto.ImportPurchaseItem{
			{Name: "Cement", Unit: "bag", Category: "binder", Quantity: d(qty), UnitPrice: d(price)},
		},
		TotalAmount:   d(qty * price),
		PaymentMethod: "cash",
		PurchaseDate:  fixedNow.AddDate(0, -2, 0),
	}
}

func (s *BulkImportTestSuite) payload(purchases int) dto.BulkImportRequest {
	req := dto.BulkImportRequest{
		Site: dto.ImportSite{
			Name:      "Old Mill",
			Location:  "Nashik",
			StartDate: fixedNow.AddDate(-1, 0, 0),
			Budget:    d(50000),
			Phases: []dto.ImportPhase{
				{Name: "Foundation", Status: "completed", CompletionDate: &fixedNow},
				{Name: "Plinth", Status: "not_started"},
			},
		},
		MachineryRentals: []dto.ImportRental{{
			VendorID:      "vendor-r",
			MachineName:   "Mixer",
			Amount:        d(500),
			PaymentMethod: "cash",
			StartDate:     fixedNow.AddDate(0, -1, 0),
			EndDate:       fixedNow.AddDate(0, -1, 2),
		}},
		Attendances: []dto.ImportAttendance{{
			Date: fixedNow.AddDate(0, -1, 0),
			Entries: []dto.ImportAttendanceEntry{
				{EmployeeID: "e1", Present: true, Wage: d(400)},
				{EmployeeID: "e2", Present: false, Wage: d(400)},
			},
		}},
		StockUsages: []dto.ImportStockUsage{{
			Name: "Cement", Unit: "bag", Category: "binder", Quantity: d(5), UsageDate: fixedNow.AddDate(0, -1, 0),
		}},
		ContractorTransactions: []dto.ImportContractorTransaction{
			{ContractorID: "contractor-9", Type: "advance", Amount: d(1000), TransactionDate: fixedNow.AddDate(0, -1, 0)},
			{ContractorID: "contractor-9", Type: "expense", Amount: d(250), TransactionDate: fixedNow.AddDate(0, -1, 1)},
		},
	}
	for i := 0; i < purchases; i++ {
		req.Purchases = append(req.Purchases, importPurchase("vendor-p", 10, 100))
	}
	return req
}

func (s *BulkImportTestSuite) TestImportWritesEverything() {
	s.initCompany(20000)

	records, err := s.svc.BulkImport.ImportSite(s.ctx, admin, s.payload(2))
	s.Require().NoError(err)

	// 2 purchases of 1000, rental 500, one present wage 400, advance 1000
	s.True(d(3900).Equal(records.ProjectedExpenditure))
	s.True(d(16100).Equal(s.companyBalance()))
	s.Len(records.PurchaseIDs, 2)
	s.Len(records.RentalIDs, 1)
	s.Len(records.AttendanceIDs, 1)
	s.Len(records.StockUsageIDs, 1)
	s.Len(records.ContractorTransactionIDs, 2)
	s.Len(records.PhaseIDs, 2)

	balances, err := s.svc.Accounts.GetSiteBalances(s.ctx, records.SiteID)
	s.Require().NoError(err)
	s.True(d(50000).Equal(balances.Budget))
	s.True(d(3900).Equal(balances.Expenses))

	stock, err := s.store.FindStock(s.ctx, domain.StockKey{SiteID: records.SiteID, Name: "Cement", Unit: "bag", Category: "binder"})
	s.Require().NoError(err)
	s.True(d(15).Equal(stock.Quantity))

	contractor, err := s.svc.Accounts.GetContractorAccount(s.ctx, "contractor-9", records.SiteID)
	s.Require().NoError(err)
	s.True(d(750).Equal(contractor.Balance))

	purchase, err := s.svc.Workflow.GetPurchase(s.ctx, records.PurchaseIDs[0])
	s.Require().NoError(err)
	s.Equal(domain.StatusVerified, purchase.Status)
	s.True(purchase.IsPaid)

	phases := s.store.PhasesBySite(records.SiteID)
	s.Require().Len(phases, 2)
	s.Equal(domain.StatusCompleted, phases[0].Status)
	s.Equal(domain.StatusNotStarted, phases[1].Status)
	s.Zero(s.store.Counts().Notifications, "imports skip the approval workflow")
}

func (s *BulkImportTestSuite) TestImportBeyondCompanyFundsWritesNothing() {
	s.initCompany(1000)
	before := s.store.Counts()

	_, err := s.svc.BulkImport.ImportSite(s.ctx, admin, s.payload(3))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	s.Equal(before, s.store.Counts())
	s.True(d(1000).Equal(s.companyBalance()))
}

func (s *BulkImportTestSuite) TestImportFailingMidwayIsRolledBack() {
	s.initCompany(20000)
	before := s.store.Counts()

	repos := s.repos
	repos.PurchaseRepo = &failingPurchaseRepo{PurchaseRepositoryFacade: s.repos.PurchaseRepo, failOn: 3}
	importer := services.NewBulkImportService(repos, s.svc.Accounts, services.WithClock(func() time.Time { return fixedNow }))

	_, err := importer.ImportSite(s.ctx, admin, s.payload(5))
	s.Require().Error(err)
	s.Contains(err.Error(), "purchase 2")
	s.NotErrorIs(err, apperrors.ErrInsufficientFunds)

	s.Equal(before, s.store.Counts())
	s.True(d(20000).Equal(s.companyBalance()), "company shows no net change")

	company, err := s.svc.Accounts.GetCompanyAccount(s.ctx)
	s.Require().NoError(err)
	entries, _, err := s.svc.Accounts.ListEntries(s.ctx, company.AccountID, 10, nil)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(entries), 2)
	reversal, debit := entries[0], entries[1]
	s.True(debit.Amount.IsNegative(), "imported history was debited")
	s.True(reversal.Amount.Equal(debit.Amount.Neg()))
	s.True(strings.HasPrefix(reversal.Description, "Reversal of "))
}

func (s *BulkImportTestSuite) TestImportValidation() {
	s.initCompany(20000)

	tests := []struct {
		name   string
		mutate func(*dto.BulkImportRequest)
	}{
		{"unknown phase name", func(r *dto.BulkImportRequest) { r.Site.Phases[0].Name = "Roofing" }},
		{"purchase without items", func(r *dto.BulkImportRequest) { r.Purchases[0].Items = nil }},
		{"item without unit", func(r *dto.BulkImportRequest) { r.Purchases[0].Items[0].Unit = "" }},
		{"negative quantity", func(r *dto.BulkImportRequest) { r.Purchases[0].Items[0].Quantity = d(-1) }},
		{"total below line items", func(r *dto.BulkImportRequest) { r.Purchases[0].TotalAmount = d(1) }},
		{"unknown contractor type", func(r *dto.BulkImportRequest) { r.ContractorTransactions[0].Type = "bonus" }},
		{"rental ends before it starts", func(r *dto.BulkImportRequest) {
			r.MachineryRentals[0].EndDate = r.MachineryRentals[0].StartDate.AddDate(0, 0, -1)
		}},
		{"usage beyond imported stock", func(r *dto.BulkImportRequest) { r.StockUsages[0].Quantity = d(500) }},
		{"missing site name", func(r *dto.BulkImportRequest) { r.Site.Name = "" }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			before := s.store.Counts()
			req := s.payload(1)
			tt.mutate(&req)

			_, err := s.svc.BulkImport.ImportSite(s.ctx, admin, req)
			s.ErrorIs(err, apperrors.ErrValidation)
			s.Equal(before, s.store.Counts())
		})
	}
}

func (s *BulkImportTestSuite) TestOnlyAdminsImport() {
	s.initCompany(20000)
	_, err := s.svc.BulkImport.ImportSite(s.ctx, manager, s.payload(1))
	s.ErrorIs(err, apperrors.ErrForbidden)
}
