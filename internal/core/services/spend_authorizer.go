package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
)

type spendAuthorizer struct {
	BaseService
	accounts portssvc.AccountRegistrySvcFacade
}

// NewSpendAuthorizer creates the authorizer on top of the account registry.
func NewSpendAuthorizer(accounts portssvc.AccountRegistrySvcFacade, opts ...Option) portssvc.SpendAuthorizerSvc {
	return &spendAuthorizer{
		BaseService: newBaseService(opts),
		accounts:    accounts,
	}
}

var _ portssvc.SpendAuthorizerSvc = (*spendAuthorizer)(nil)

// Authorize posts cash debits before the spending document exists, leaving the funds in flight
// until the document is verified.
func (s *spendAuthorizer) Authorize(ctx context.Context, req dto.SpendRequest) (*domain.LedgerAccount, error) {
	if err := s.RequireRole(ctx, req.Requester, "spend", domain.RoleAdmin, domain.RoleSiteManager); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	switch req.PaymentMethod {
	case domain.PaymentCredit:
		s.LogDebug(ctx, "Credit spend accrues to vendor credit",
			slog.String("related_id", req.RelatedID),
			slog.String("amount", req.Amount.String()))
		return nil, nil
	case domain.PaymentCash:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}

	meta := domain.PostingMeta{
		Description: req.Description,
		SiteID:      req.SiteID,
		RelatedID:   req.RelatedID,
		ActorID:     req.Requester.UserID,
		Date:        req.Date,
	}

	if req.Requester.Role == domain.RoleAdmin {
		company, err := s.accounts.GetCompanyAccount(ctx)
		if err != nil {
			return nil, err
		}
		if !company.CanCover(req.Amount) {
			return nil, s.insufficient(ctx, req, company.Balance.String())
		}
		return s.accounts.AdjustCompanyBalance(ctx, req.Amount.Neg(), meta)
	}

	allowance, err := s.accounts.GetUserExpenseAccount(ctx, req.Requester.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.insufficient(ctx, req, "0")
		}
		return nil, fmt.Errorf("failed to load allowance of %s: %w", req.Requester.UserID, err)
	}
	if !allowance.CanCover(req.Amount) {
		return nil, s.insufficient(ctx, req, allowance.Balance.String())
	}
	return s.accounts.AdjustUserExpenseBalance(ctx, req.Requester.UserID, req.Amount.Neg(), meta)
}

func (s *spendAuthorizer) insufficient(ctx context.Context, req dto.SpendRequest, balance string) error {
	err := fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, balance, req.Amount)
	s.LogError(ctx, err, "Spend rejected",
		slog.String("user_id", req.Requester.UserID),
		slog.String("role", string(req.Requester.Role)),
		slog.String("amount", req.Amount.String()))
	return err
}
