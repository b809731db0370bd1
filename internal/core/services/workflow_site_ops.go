package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordAttendance has no pending step: the day's wages hit site expenses as soon as it is saved.
func (s *verificationWorkflow) RecordAttendance(ctx context.Context, actor domain.Actor, req dto.RecordAttendanceRequest) (*domain.Attendance, error) {
	if err := s.RequireRole(ctx, actor, "record attendance", domain.RoleAdmin, domain.RoleSiteManager); err != nil {
		return nil, err
	}
	entries := dto.ToDomainAttendanceEntries(req.Entries)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: attendance needs at least one entry", apperrors.ErrValidation)
	}
	for _, e := range entries {
		if e.Wage.IsNegative() {
			return nil, fmt.Errorf("%w: wage of %s cannot be negative", apperrors.ErrValidation, e.EmployeeID)
		}
	}
	if _, err := s.findSite(ctx, req.SiteID); err != nil {
		return nil, err
	}

	attendance := domain.Attendance{
		AttendanceID: uuid.NewString(),
		SiteID:       req.SiteID,
		Date:         req.Date,
		Entries:      entries,
		TotalWage:    domain.PayableWage(entries),
		RecordedBy:   actor.UserID,
		AuditFields:  domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := s.repos.AttendanceRepo.SaveAttendance(ctx, attendance); err != nil {
		s.LogError(ctx, err, "Failed to save attendance", slog.String("site_id", req.SiteID))
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}

	if attendance.TotalWage.IsPositive() {
		if _, err := s.accounts.PostSiteExpense(ctx, req.SiteID, attendance.TotalWage, domain.PostingMeta{
			Type:        domain.EntryAttendance,
			Description: fmt.Sprintf("Attendance for %s", req.Date.Format("2006-01-02")),
			RelatedID:   attendance.AttendanceID,
			ActorID:     actor.UserID,
			Date:        req.Date,
		}); err != nil {
			return nil, err
		}
	}
	return &attendance, nil
}

// RecordContractorTransaction moves a contractor's site balance. Advances and additional payments
// are company cash spends; expenses only draw the contractor's balance down.
func (s *verificationWorkflow) RecordContractorTransaction(ctx context.Context, actor domain.Actor, req dto.RecordContractorTransactionRequest) (*domain.ContractorTransaction, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown contractor transaction type %q", apperrors.ErrValidation, req.Type)
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.Type.IsPayout() {
		if err := s.RequireRole(ctx, actor, "pay a contractor", domain.RoleAdmin); err != nil {
			return nil, err
		}
	} else if err := s.RequireRole(ctx, actor, "record a contractor expense", domain.RoleAdmin, domain.RoleSiteManager); err != nil {
		return nil, err
	}
	if _, err := s.findSite(ctx, req.SiteID); err != nil {
		return nil, err
	}

	now := s.Now()
	txnDate := now
	if req.TransactionDate != nil {
		txnDate = *req.TransactionDate
	}
	txn := domain.ContractorTransaction{
		TransactionID:   uuid.NewString(),
		ContractorID:    req.ContractorID,
		SiteID:          req.SiteID,
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		TransactionDate: txnDate,
		RecordedBy:      actor.UserID,
		AuditFields:     domain.NewAuditFields(actor.UserID, now),
	}

	if req.Type.IsPayout() {
		if _, err := s.spend.Authorize(ctx, dto.SpendRequest{
			Requester:     actor,
			Amount:        req.Amount,
			PaymentMethod: domain.PaymentCash,
			SiteID:        req.SiteID,
			RelatedID:     txn.TransactionID,
			Description:   fmt.Sprintf("Contractor %s to %s", req.Type, req.ContractorID),
			Date:          txnDate,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.repos.ContractorRepo.SaveContractorTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save contractor transaction",
			slog.String("contractor_id", req.ContractorID),
			slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to save contractor transaction: %w", err)
	}

	meta := domain.PostingMeta{
		Type:        req.Type.EntryType(),
		Description: req.Description,
		RelatedID:   txn.TransactionID,
		ActorID:     actor.UserID,
		Date:        txnDate,
	}
	if _, err := s.accounts.AdjustContractorBalance(ctx, req.ContractorID, req.SiteID, req.Type.BalanceDelta(req.Amount), meta); err != nil {
		return nil, err
	}
	if req.Type.IsPayout() {
		meta.Type = domain.EntryContractorPayment
		if _, err := s.accounts.PostSiteExpense(ctx, req.SiteID, req.Amount, meta); err != nil {
			return nil, err
		}
	}

	s.LogInfo(ctx, "Contractor transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(req.Type)))
	return &txn, nil
}

// SettleVendorCredit pays every outstanding credit purchase of a vendor from the company account.
func (s *verificationWorkflow) SettleVendorCredit(ctx context.Context, actor domain.Actor, vendorID string) (decimal.Decimal, error) {
	if err := s.RequireRole(ctx, actor, "settle vendor credit", domain.RoleAdmin); err != nil {
		return decimal.Zero, err
	}
	total, purchases, err := s.accounts.VendorOutstandingCredit(ctx, vendorID)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.IsPositive() {
		return decimal.Zero, nil
	}

	company, err := s.accounts.GetCompanyAccount(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if !company.CanCover(total) {
		return decimal.Zero, fmt.Errorf("%w: company balance %s cannot settle %s", apperrors.ErrInsufficientFunds, company.Balance, total)
	}

	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		if p.IsOutstandingCredit() {
			ids = append(ids, p.PurchaseID)
		}
	}
	if _, err := s.accounts.AdjustCompanyBalance(ctx, total.Neg(), domain.PostingMeta{
		Description: fmt.Sprintf("Credit settlement for vendor %s", vendorID),
		RelatedID:   vendorID,
		ActorID:     actor.UserID,
	}); err != nil {
		return decimal.Zero, err
	}
	if err := s.repos.PurchaseRepo.MarkPurchasesPaid(ctx, ids, s.Now(), actor.UserID); err != nil {
		s.LogError(ctx, err, "Company debited but purchases not marked paid",
			slog.String("vendor_id", vendorID))
		return decimal.Zero, fmt.Errorf("failed to mark purchases paid: %w", err)
	}

	s.LogInfo(ctx, "Vendor credit settled",
		slog.String("vendor_id", vendorID),
		slog.String("amount", total.String()),
		slog.Int("purchases", len(ids)))
	return total, nil
}
