package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// bulkImportService backfills a site with already settled history. It writes straight
// through the repositories and the account registry, skipping the pending workflow,
// and undoes its own writes when any step fails.
type bulkImportService struct {
	BaseService
	repos    portsrepo.RepositoryProvider
	accounts portssvc.AccountRegistrySvcFacade
	validate *validator.Validate
}

// NewBulkImportService creates the import service.
func NewBulkImportService(repos portsrepo.RepositoryProvider, accounts portssvc.AccountRegistrySvcFacade, opts ...Option) portssvc.BulkImportSvc {
	return &bulkImportService{
		BaseService: newBaseService(opts),
		repos:       repos,
		accounts:    accounts,
		validate:    newImportValidator(),
	}
}

var _ portssvc.BulkImportSvc = (*bulkImportService)(nil)

func newImportValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("phase_name", func(fl validator.FieldLevel) bool {
		return domain.IsPhaseName(fl.Field().String())
	})
	return v
}

func (s *bulkImportService) ImportSite(ctx context.Context, actor domain.Actor, req dto.BulkImportRequest) (*domain.ImportedRecords, error) {
	if err := s.RequireRole(ctx, actor, "import a site", domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validatePayload(req); err != nil {
		s.LogError(ctx, err, "Bulk import payload rejected")
		return nil, err
	}

	projected := projectedExpenditure(req)
	company, err := s.accounts.GetCompanyAccount(ctx)
	if err != nil {
		return nil, err
	}
	if !company.CanCover(projected) {
		err := fmt.Errorf("%w: company balance %s cannot cover projected expenditure %s", apperrors.ErrInsufficientFunds, company.Balance, projected)
		s.LogError(ctx, err, "Bulk import rejected")
		return nil, err
	}

	records := &domain.ImportedRecords{ProjectedExpenditure: projected}
	sg := &saga{}
	if err := s.apply(ctx, actor, req, records, sg); err != nil {
		steps := sg.len()
		undoErr := sg.compensate(context.WithoutCancel(ctx))
		if undoErr != nil {
			s.LogError(ctx, undoErr, "Bulk import compensation incomplete",
				slog.String("site_id", records.SiteID))
		} else {
			s.LogInfo(ctx, "Bulk import rolled back",
				slog.String("site_id", records.SiteID),
				slog.Int("steps_undone", steps))
		}
		return nil, errors.Join(fmt.Errorf("bulk import failed: %w", err), undoErr)
	}

	s.LogInfo(ctx, "Site imported",
		slog.String("site_id", records.SiteID),
		slog.Int("purchases", len(records.PurchaseIDs)),
		slog.Int("rentals", len(records.RentalIDs)),
		slog.String("projected_expenditure", projected.String()))
	return records, nil
}

func (s *bulkImportService) validatePayload(req dto.BulkImportRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	available := make(map[domain.StockKey]decimal.Decimal)
	for i, p := range req.Purchases {
		items := importItems(p.Items)
		if err := domain.ValidateItems(items); err != nil {
			return err
		}
		if _, err := domain.ResolvePurchaseTotal(items, p.TotalAmount); err != nil {
			return fmt.Errorf("purchase %d: %w", i, err)
		}
		for _, item := range items {
			key := domain.StockKeyFor("", item)
			available[key] = available[key].Add(item.Quantity)
		}
	}
	for _, u := range req.StockUsages {
		key := domain.StockKey{Name: u.Name, Unit: u.Unit, Category: u.Category}
		left := available[key].Sub(u.Quantity)
		if left.IsNegative() {
			return fmt.Errorf("%w: usage of %s exceeds imported stock", apperrors.ErrValidation, u.Name)
		}
		available[key] = left
	}
	return nil
}

// projectedExpenditure is the company money the imported history consumed.
func projectedExpenditure(req dto.BulkImportRequest) decimal.Decimal {
	total := decimal.Zero
	for _, p := range req.Purchases {
		total = total.Add(p.TotalAmount)
	}
	for _, r := range req.MachineryRentals {
		total = total.Add(r.Amount)
	}
	for _, a := range req.Attendances {
		total = total.Add(domain.PayableWage(importAttendanceEntries(a.Entries)))
	}
	for _, c := range req.ContractorTransactions {
		if domain.ContractorTxnType(c.Type).IsPayout() {
			total = total.Add(c.Amount)
		}
	}
	return total
}

func (s *bulkImportService) apply(ctx context.Context, actor domain.Actor, req dto.BulkImportRequest, records *domain.ImportedRecords, sg *saga) error {
	now := s.Now()
	audit := domain.NewAuditFields(actor.UserID, now)

	site := domain.Site{
		SiteID:        uuid.NewString(),
		Name:          req.Site.Name,
		Location:      req.Site.Location,
		SiteManagerID: req.Site.SiteManagerID,
		StartDate:     req.Site.StartDate,
		Imported:      true,
		AuditFields:   audit,
	}
	siteID := site.SiteID
	if err := s.repos.SiteRepo.SaveSite(ctx, site); err != nil {
		return fmt.Errorf("save site: %w", err)
	}
	records.SiteID = siteID
	sg.record("site", func(ctx context.Context) error { return s.repos.SiteRepo.DeleteSite(ctx, siteID) })

	sg.record("site accounts", func(ctx context.Context) error { return s.repos.LedgerRepo.DeleteAccountsBySite(ctx, siteID) })
	if err := s.accounts.OpenSiteAccounts(ctx, siteID, actor.UserID); err != nil {
		return err
	}
	if req.Site.Budget.IsPositive() {
		if _, err := s.accounts.AdjustSiteBudget(ctx, siteID, req.Site.Budget, domain.PostingMeta{
			Description: "Imported budget",
			ActorID:     actor.UserID,
			Date:        req.Site.StartDate,
		}); err != nil {
			return err
		}
	}
	sg.record("stock", func(ctx context.Context) error { return s.repos.StockRepo.DeleteStockBySite(ctx, siteID) })

	// Debit the company before writing history so any later failure reverses it.
	if records.ProjectedExpenditure.IsPositive() {
		amount := records.ProjectedExpenditure
		meta := domain.PostingMeta{
			Description: fmt.Sprintf("Imported history of site %s", site.Name),
			SiteID:      siteID,
			RelatedID:   siteID,
			ActorID:     actor.UserID,
		}
		if _, err := s.accounts.AdjustCompanyBalance(ctx, amount.Neg(), meta); err != nil {
			return err
		}
		sg.record("company expenditure", func(ctx context.Context) error {
			meta.Description = "Reversal of " + meta.Description
			_, err := s.accounts.AdjustCompanyBalance(ctx, amount, meta)
			return err
		})
	}

	if len(req.Site.Phases) > 0 {
		phases := make([]domain.Phase, 0, len(req.Site.Phases))
		for i, p := range req.Site.Phases {
			phase := domain.Phase{
				PhaseID:     uuid.NewString(),
				SiteID:      siteID,
				Name:        p.Name,
				Position:    i,
				Status:      domain.EventStatus(p.Status),
				AuditFields: audit,
			}
			if phase.Status == domain.StatusCompleted {
				phase.CompletionDate = p.CompletionDate
				phase.ResolvedBy = actor.UserID
			}
			phases = append(phases, phase)
			records.PhaseIDs = append(records.PhaseIDs, phase.PhaseID)
		}
		sg.record("phases", func(ctx context.Context) error { return s.repos.PhaseRepo.DeletePhasesBySite(ctx, siteID) })
		if err := s.repos.PhaseRepo.SavePhases(ctx, phases); err != nil {
			return fmt.Errorf("save phases: %w", err)
		}
	}

	for i, p := range req.Purchases {
		if err := s.importPurchase(ctx, actor, siteID, p, now, records, sg); err != nil {
			return fmt.Errorf("purchase %d: %w", i, err)
		}
	}
	for i, r := range req.MachineryRentals {
		if err := s.importRental(ctx, actor, siteID, r, now, records, sg); err != nil {
			return fmt.Errorf("rental %d: %w", i, err)
		}
	}
	for i, a := range req.Attendances {
		if err := s.importAttendance(ctx, actor, siteID, a, now, records, sg); err != nil {
			return fmt.Errorf("attendance %d: %w", i, err)
		}
	}
	for i, u := range req.StockUsages {
		if err := s.importStockUsage(ctx, actor, siteID, u, now, records, sg); err != nil {
			return fmt.Errorf("stock usage %d: %w", i, err)
		}
	}
	for i, c := range req.ContractorTransactions {
		if err := s.importContractorTransaction(ctx, actor, siteID, c, now, records, sg); err != nil {
			return fmt.Errorf("contractor transaction %d: %w", i, err)
		}
	}

	return nil
}

func (s *bulkImportService) importPurchase(ctx context.Context, actor domain.Actor, siteID string, p dto.ImportPurchase, now time.Time, records *domain.ImportedRecords, sg *saga) error {
	purchaseDate := p.PurchaseDate
	purchase := domain.Purchase{
		PurchaseID:    uuid.NewString(),
		SiteID:        siteID,
		VendorID:      p.VendorID,
		Items:         importItems(p.Items),
		TotalAmount:   p.TotalAmount,
		PaymentMethod: domain.PaymentMethod(p.PaymentMethod),
		Status:        domain.StatusVerified,
		SubmittedBy:   actor.UserID,
		BillURL:       p.BillURL,
		PurchaseDate:  purchaseDate,
		VerifiedBy:    actor.UserID,
		VerifiedAt:    &now,
		IsPaid:        true,
		PaidAt:        &purchaseDate,
		AuditFields:   domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.repos.PurchaseRepo.SavePurchase(ctx, purchase); err != nil {
		return err
	}
	id := purchase.PurchaseID
	records.PurchaseIDs = append(records.PurchaseIDs, id)
	sg.record("purchase "+id, func(ctx context.Context) error { return s.repos.PurchaseRepo.DeletePurchase(ctx, id) })

	for _, item := range purchase.Items {
		if _, err := s.repos.StockRepo.AdjustStock(ctx, domain.StockKeyFor(siteID, item), item.Quantity, actor.UserID, now); err != nil {
			return err
		}
	}
	_, err := s.accounts.PostSiteExpense(ctx, siteID, purchase.TotalAmount, domain.PostingMeta{
		Type:        domain.EntryPurchase,
		Description: fmt.Sprintf("Imported purchase from vendor %s", p.VendorID),
		RelatedID:   id,
		ActorID:     actor.UserID,
		Date:        purchaseDate,
	})
	return err
}

func (s *bulkImportService) importRental(ctx context.Context, actor domain.Actor, siteID string, r dto.ImportRental, now time.Time, records *domain.ImportedRecords, sg *saga) error {
	rental := domain.MachineryRental{
		RentalID:      uuid.NewString(),
		SiteID:        siteID,
		VendorID:      r.VendorID,
		MachineName:   r.MachineName,
		Amount:        r.Amount,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Status:        domain.StatusVerified,
		SubmittedBy:   actor.UserID,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		VerifiedBy:    actor.UserID,
		VerifiedAt:    &now,
		AuditFields:   domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.repos.RentalRepo.SaveRental(ctx, rental); err != nil {
		return err
	}
	id := rental.RentalID
	records.RentalIDs = append(records.RentalIDs, id)
	sg.record("rental "+id, func(ctx context.Context) error { return s.repos.RentalRepo.DeleteRental(ctx, id) })

	_, err := s.accounts.PostSiteExpense(ctx, siteID, rental.Amount, domain.PostingMeta{
		Type:        domain.EntryRental,
		Description: fmt.Sprintf("Imported rental of %s", r.MachineName),
		RelatedID:   id,
		ActorID:     actor.UserID,
		Date:        r.StartDate,
	})
	return err
}

func (s *bulkImportService) importAttendance(ctx context.Context, actor domain.Actor, siteID string, a dto.ImportAttendance, now time.Time, records *domain.ImportedRecords, sg *saga) error {
	entries := importAttendanceEntries(a.Entries)
	attendance := domain.Attendance{
		AttendanceID: uuid.NewString(),
		SiteID:       siteID,
		Date:         a.Date,
		Entries:      entries,
		TotalWage:    domain.PayableWage(entries),
		RecordedBy:   actor.UserID,
		AuditFields:  domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.repos.AttendanceRepo.SaveAttendance(ctx, attendance); err != nil {
		return err
	}
	id := attendance.AttendanceID
	records.AttendanceIDs = append(records.AttendanceIDs, id)
	sg.record("attendance "+id, func(ctx context.Context) error { return s.repos.AttendanceRepo.DeleteAttendance(ctx, id) })

	if !attendance.TotalWage.IsPositive() {
		return nil
	}
	_, err := s.accounts.PostSiteExpense(ctx, siteID, attendance.TotalWage, domain.PostingMeta{
		Type:        domain.EntryAttendance,
		Description: fmt.Sprintf("Imported attendance for %s", a.Date.Format("2006-01-02")),
		RelatedID:   id,
		ActorID:     actor.UserID,
		Date:        a.Date,
	})
	return err
}

func (s *bulkImportService) importStockUsage(ctx context.Context, actor domain.Actor, siteID string, u dto.ImportStockUsage, now time.Time, records *domain.ImportedRecords, sg *saga) error {
	key := domain.StockKey{SiteID: siteID, Name: u.Name, Unit: u.Unit, Category: u.Category}
	usage := domain.StockUsage{
		UsageID:     uuid.NewString(),
		Key:         key,
		Quantity:    u.Quantity,
		UsageDate:   u.UsageDate,
		RecordedBy:  actor.UserID,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.repos.StockRepo.SaveStockUsage(ctx, usage); err != nil {
		return err
	}
	id := usage.UsageID
	records.StockUsageIDs = append(records.StockUsageIDs, id)
	sg.record("stock usage "+id, func(ctx context.Context) error { return s.repos.StockRepo.DeleteStockUsage(ctx, id) })

	_, err := s.repos.StockRepo.AdjustStock(ctx, key, u.Quantity.Neg(), actor.UserID, now)
	return err
}

func (s *bulkImportService) importContractorTransaction(ctx context.Context, actor domain.Actor, siteID string, c dto.ImportContractorTransaction, now time.Time, records *domain.ImportedRecords, sg *saga) error {
	txnType := domain.ContractorTxnType(c.Type)
	txn := domain.ContractorTransaction{
		TransactionID:   uuid.NewString(),
		ContractorID:    c.ContractorID,
		SiteID:          siteID,
		Type:            txnType,
		Amount:          c.Amount,
		Description:     c.Description,
		TransactionDate: c.TransactionDate,
		RecordedBy:      actor.UserID,
		AuditFields:     domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.repos.ContractorRepo.SaveContractorTransaction(ctx, txn); err != nil {
		return err
	}
	id := txn.TransactionID
	records.ContractorTransactionIDs = append(records.ContractorTransactionIDs, id)
	sg.record("contractor transaction "+id, func(ctx context.Context) error { return s.repos.ContractorRepo.DeleteContractorTransaction(ctx, id) })

	meta := domain.PostingMeta{
		Type:        txnType.EntryType(),
		Description: c.Description,
		RelatedID:   id,
		ActorID:     actor.UserID,
		Date:        c.TransactionDate,
	}
	if _, err := s.accounts.AdjustContractorBalance(ctx, c.ContractorID, siteID, txnType.BalanceDelta(c.Amount), meta); err != nil {
		return err
	}
	if !txnType.IsPayout() {
		return nil
	}
	meta.Type = domain.EntryContractorPayment
	_, err := s.accounts.PostSiteExpense(ctx, siteID, c.Amount, meta)
	return err
}

func importItems(items []dto.ImportPurchaseItem) []domain.PurchaseItem {
	out := make([]domain.PurchaseItem, len(items))
	for i, it := range items {
		out[i] = domain.PurchaseItem{Name: it.Name, Unit: it.Unit, Category: it.Category, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return out
}

func importAttendanceEntries(entries []dto.ImportAttendanceEntry) []domain.AttendanceEntry {
	out := make([]domain.AttendanceEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.AttendanceEntry{EmployeeID: e.EmployeeID, Present: e.Present, Wage: e.Wage}
	}
	return out
}
