package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountRegistry locates the five account shapes and posts single-account deltas.
type accountRegistry struct {
	BaseService
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	userRepo     portsrepo.UserReader
	companyKey   domain.AccountKey
}

// NewAccountRegistry creates the registry. It holds the company account key for its lifetime.
func NewAccountRegistry(ledgerRepo portsrepo.LedgerRepositoryFacade, purchaseRepo portsrepo.PurchaseRepositoryFacade, userRepo portsrepo.UserReader, opts ...Option) portssvc.AccountRegistrySvcFacade {
	return &accountRegistry{
		BaseService:  newBaseService(opts),
		ledgerRepo:   ledgerRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		companyKey:   domain.CompanyKey(),
	}
}

var _ portssvc.AccountRegistrySvcFacade = (*accountRegistry)(nil)

func (s *accountRegistry) InitializeCompany(ctx context.Context, openingBalance decimal.Decimal, description string, actor domain.Actor) (*domain.LedgerAccount, error) {
	if err := s.RequireRole(ctx, actor, "initialize the company account", domain.RoleAdmin); err != nil {
		return nil, err
	}
	if openingBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	now := s.Now()
	account := domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		Kind:        s.companyKey.Kind,
		OwnerID:     s.companyKey.OwnerID,
		Balance:     decimal.Zero,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.ledgerRepo.CreateAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create company account")
		return nil, fmt.Errorf("failed to create company account: %w", err)
	}
	s.LogInfo(ctx, "Company account created", slog.String("account_id", account.AccountID))

	if !openingBalance.IsPositive() {
		return &account, nil
	}
	if description == "" {
		description = "Opening balance"
	}
	return s.AdjustCompanyBalance(ctx, openingBalance, domain.PostingMeta{
		Description: description,
		ActorID:     actor.UserID,
	})
}

func (s *accountRegistry) GetCompanyAccount(ctx context.Context) (*domain.LedgerAccount, error) {
	account, err := s.ledgerRepo.FindAccount(ctx, s.companyKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: company account has not been initialized", apperrors.ErrInvariantViolation)
		}
		s.LogError(ctx, err, "Failed to load company account")
		return nil, fmt.Errorf("failed to load company account: %w", err)
	}
	return account, nil
}

// AdjustCompanyBalance posts delta to the company. The entry type follows the sign.
func (s *accountRegistry) AdjustCompanyBalance(ctx context.Context, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error) {
	meta.Type = directionType(delta)
	account, err := s.post(ctx, s.companyKey, delta, meta)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: company account has not been initialized", apperrors.ErrInvariantViolation)
	}
	return account, err
}

func (s *accountRegistry) AdjustSiteBudget(ctx context.Context, siteID string, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error) {
	if meta.Type == "" {
		meta.Type = directionType(delta)
	}
	meta.SiteID = siteID
	return s.post(ctx, domain.SiteBudgetKey(siteID), delta, meta)
}

func (s *accountRegistry) PostSiteExpense(ctx context.Context, siteID string, amount decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error) {
	if meta.Type == "" {
		return nil, fmt.Errorf("%w: site expense needs an entry type", apperrors.ErrValidation)
	}
	meta.SiteID = siteID
	return s.post(ctx, domain.SiteExpenseKey(siteID), amount, meta)
}

func (s *accountRegistry) AdjustUserExpenseBalance(ctx context.Context, userID string, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error) {
	key := domain.UserAllowanceKey(userID)
	if err := s.ensureAccount(ctx, key, meta.ActorID); err != nil {
		return nil, err
	}
	meta.Type = directionType(delta)
	return s.post(ctx, key, delta, meta)
}

func (s *accountRegistry) AdjustContractorBalance(ctx context.Context, contractorID, siteID string, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error) {
	key := domain.ContractorKey(contractorID, siteID)
	if err := s.ensureAccount(ctx, key, meta.ActorID); err != nil {
		return nil, err
	}
	meta.SiteID = siteID
	return s.post(ctx, key, delta, meta)
}

func (s *accountRegistry) OpenSiteAccounts(ctx context.Context, siteID string, actorID string) error {
	now := s.Now()
	for _, key := range []domain.AccountKey{domain.SiteBudgetKey(siteID), domain.SiteExpenseKey(siteID)} {
		account := domain.LedgerAccount{
			AccountID:   uuid.NewString(),
			Kind:        key.Kind,
			OwnerID:     key.OwnerID,
			SiteID:      key.SiteID,
			Balance:     decimal.Zero,
			AuditFields: domain.NewAuditFields(actorID, now),
		}
		if err := s.ledgerRepo.CreateAccount(ctx, account); err != nil {
			s.LogError(ctx, err, "Failed to open site account",
				slog.String("site_id", siteID),
				slog.String("kind", string(key.Kind)))
			return fmt.Errorf("failed to open %s account for site %s: %w", key.Kind, siteID, err)
		}
	}
	return nil
}

func (s *accountRegistry) FundUserAllowance(ctx context.Context, actor domain.Actor, userID string, amount decimal.Decimal, description string) (*domain.LedgerAccount, error) {
	if err := s.RequireRole(ctx, actor, "fund an allowance", domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	if user.Role != domain.RoleSiteManager {
		return nil, fmt.Errorf("%w: only site managers hold an allowance", apperrors.ErrValidation)
	}

	company, err := s.GetCompanyAccount(ctx)
	if err != nil {
		return nil, err
	}
	if !company.CanCover(amount) {
		return nil, fmt.Errorf("%w: company balance %s cannot cover %s", apperrors.ErrInsufficientFunds, company.Balance, amount)
	}

	transferID := uuid.NewString()
	if description == "" {
		description = fmt.Sprintf("Allowance for %s", user.Name)
	}
	meta := domain.PostingMeta{Description: description, RelatedID: transferID, ActorID: actor.UserID}

	if _, err := s.AdjustCompanyBalance(ctx, amount.Neg(), meta); err != nil {
		return nil, err
	}
	account, err := s.AdjustUserExpenseBalance(ctx, userID, amount, meta)
	if err != nil {
		s.LogError(ctx, err, "Company debited but allowance not credited",
			slog.String("transfer_id", transferID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Allowance funded",
		slog.String("user_id", userID),
		slog.String("amount", amount.String()))
	return account, nil
}

func (s *accountRegistry) GetSiteBalances(ctx context.Context, siteID string) (*domain.SiteBalances, error) {
	budget, err := s.ledgerRepo.FindAccount(ctx, domain.SiteBudgetKey(siteID))
	if err != nil {
		return nil, fmt.Errorf("failed to find budget of site %s: %w", siteID, err)
	}
	expenses, err := s.ledgerRepo.FindAccount(ctx, domain.SiteExpenseKey(siteID))
	if err != nil {
		return nil, fmt.Errorf("failed to find expenses of site %s: %w", siteID, err)
	}
	return &domain.SiteBalances{SiteID: siteID, Budget: budget.Balance, Expenses: expenses.Balance}, nil
}

func (s *accountRegistry) GetUserExpenseAccount(ctx context.Context, userID string) (*domain.LedgerAccount, error) {
	return s.ledgerRepo.FindAccount(ctx, domain.UserAllowanceKey(userID))
}

func (s *accountRegistry) GetContractorAccount(ctx context.Context, contractorID, siteID string) (*domain.LedgerAccount, error) {
	return s.ledgerRepo.FindAccount(ctx, domain.ContractorKey(contractorID, siteID))
}

func (s *accountRegistry) VendorOutstandingCredit(ctx context.Context, vendorID string) (decimal.Decimal, []domain.Purchase, error) {
	purchases, err := s.purchaseRepo.ListOutstandingCreditPurchases(ctx, vendorID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credit purchases", slog.String("vendor_id", vendorID))
		return decimal.Zero, nil, fmt.Errorf("failed to list credit purchases of vendor %s: %w", vendorID, err)
	}
	total := decimal.Zero
	for _, p := range purchases {
		if p.IsOutstandingCredit() {
			total = total.Add(p.TotalAmount)
		}
	}
	return total, purchases, nil
}

func (s *accountRegistry) ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if _, err := s.ledgerRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return s.ledgerRepo.ListEntries(ctx, accountID, limit, nextToken)
}

func (s *accountRegistry) post(ctx context.Context, key domain.AccountKey, delta decimal.Decimal, meta domain.PostingMeta) (*domain.LedgerAccount, error) {
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: posting amount cannot be zero", apperrors.ErrValidation)
	}
	entry := domain.NewEntry(delta, meta, s.Now())
	account, err := s.ledgerRepo.PostEntry(ctx, key, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to post ledger entry",
			slog.String("kind", string(key.Kind)),
			slog.String("owner_id", key.OwnerID),
			slog.String("related_id", meta.RelatedID))
		return nil, fmt.Errorf("failed to post to %s account %s: %w", key.Kind, key.OwnerID, err)
	}
	s.LogDebug(ctx, "Ledger entry posted",
		slog.String("account_id", account.AccountID),
		slog.Int64("sequence", account.Sequence),
		slog.String("type", string(meta.Type)))
	return account, nil
}

// ensureAccount opens the account at key unless it exists.
func (s *accountRegistry) ensureAccount(ctx context.Context, key domain.AccountKey, actorID string) error {
	_, err := s.ledgerRepo.FindAccount(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to find %s account %s: %w", key.Kind, key.OwnerID, err)
	}
	account := domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		Kind:        key.Kind,
		OwnerID:     key.OwnerID,
		SiteID:      key.SiteID,
		Balance:     decimal.Zero,
		AuditFields: domain.NewAuditFields(actorID, s.Now()),
	}
	if err := s.ledgerRepo.CreateAccount(ctx, account); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("failed to open %s account %s: %w", key.Kind, key.OwnerID, err)
	}
	s.LogInfo(ctx, "Account opened on first use",
		slog.String("kind", string(key.Kind)),
		slog.String("owner_id", key.OwnerID),
		slog.String("site_id", key.SiteID))
	return nil
}

func directionType(delta decimal.Decimal) domain.EntryType {
	if delta.IsNegative() {
		return domain.EntryExpenditure
	}
	return domain.EntryIncoming
}
