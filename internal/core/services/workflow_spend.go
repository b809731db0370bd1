package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/google/uuid"
)

func (s *verificationWorkflow) CreatePurchase(ctx context.Context, actor domain.Actor, req dto.CreatePurchaseRequest) (*domain.Purchase, error) {
	items := dto.ToDomainItems(req.Items)
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}

	total, err := domain.ResolvePurchaseTotal(items, req.TotalAmount)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("total amount", total); err != nil {
		return nil, err
	}
	if _, err := s.findSite(ctx, req.SiteID); err != nil {
		return nil, err
	}

	now := s.Now()
	purchaseDate := now
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}
	purchaseID := uuid.NewString()

	if _, err := s.spend.Authorize(ctx, dto.SpendRequest{
		Requester:     actor,
		Amount:        total,
		PaymentMethod: req.PaymentMethod,
		SiteID:        req.SiteID,
		RelatedID:     purchaseID,
		Description:   fmt.Sprintf("Purchase from vendor %s", req.VendorID),
		Date:          purchaseDate,
	}); err != nil {
		return nil, err
	}

	purchase := domain.Purchase{
		PurchaseID:    purchaseID,
		SiteID:        req.SiteID,
		VendorID:      req.VendorID,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.StatusPending,
		SubmittedBy:   actor.UserID,
		BillURL:       req.BillURL,
		PurchaseDate:  purchaseDate,
		AuditFields:   domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.repos.PurchaseRepo.SavePurchase(ctx, purchase); err != nil {
		s.LogError(ctx, err, "Purchase not saved after spend was authorized",
			slog.String("purchase_id", purchaseID),
			slog.String("payment_method", string(req.PaymentMethod)))
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	s.notifications.NotifyAdmins(ctx, domain.NotifyPurchaseVerification, purchaseID,
		fmt.Sprintf("Purchase of %s awaits verification", total))

	s.LogInfo(ctx, "Purchase submitted",
		slog.String("purchase_id", purchaseID),
		slog.String("site_id", req.SiteID),
		slog.String("total", total.String()))
	return &purchase, nil
}

func (s *verificationWorkflow) VerifyPurchase(ctx context.Context, actor domain.Actor, purchaseID string, req dto.ResolveRequest) (*domain.Purchase, error) {
	purchase, err := s.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	res, err := s.resolve(ctx, actor, domain.EventPurchase, purchase.Status, req)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	purchase.Status = res.to
	purchase.VerifiedBy = actor.UserID
	purchase.VerifiedAt = &now
	purchase.LastUpdatedAt = now
	purchase.LastUpdatedBy = actor.UserID
	if !res.approved {
		purchase.RejectionReason = req.Reason
	}
	if err := s.repos.PurchaseRepo.ResolvePurchase(ctx, *purchase); err != nil {
		return nil, fmt.Errorf("failed to resolve purchase %s: %w", purchaseID, err)
	}

	if res.approved {
		for _, item := range purchase.Items {
			if _, err := s.repos.StockRepo.AdjustStock(ctx, domain.StockKeyFor(purchase.SiteID, item), item.Quantity, actor.UserID, now); err != nil {
				s.LogError(ctx, err, "Failed to increment stock",
					slog.String("purchase_id", purchaseID),
					slog.String("item", item.Name))
				return nil, fmt.Errorf("failed to increment stock for %s: %w", item.Name, err)
			}
		}
		if _, err := s.accounts.PostSiteExpense(ctx, purchase.SiteID, purchase.TotalAmount, domain.PostingMeta{
			Type:        domain.EntryPurchase,
			Description: fmt.Sprintf("Purchase from vendor %s", purchase.VendorID),
			RelatedID:   purchase.PurchaseID,
			ActorID:     actor.UserID,
			Date:        purchase.PurchaseDate,
		}); err != nil {
			return nil, err
		}
	}

	outcome := domain.NotifyPurchaseRejected
	if res.approved {
		outcome = domain.NotifyPurchaseVerified
	}
	s.finish(ctx, purchaseID, domain.NotifyPurchaseVerification, purchase.SubmittedBy, outcome,
		outcomeMessage("Your purchase", res, req.Reason), res)

	s.LogInfo(ctx, "Purchase resolved",
		slog.String("purchase_id", purchaseID),
		slog.String("status", string(res.to)))
	return purchase, nil
}

func (s *verificationWorkflow) GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.repos.PurchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	return purchase, nil
}

func (s *verificationWorkflow) CreateMachineryRental(ctx context.Context, actor domain.Actor, req dto.CreateRentalRequest) (*domain.MachineryRental, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}
	if _, err := s.findSite(ctx, req.SiteID); err != nil {
		return nil, err
	}

	rentalID := uuid.NewString()
	if _, err := s.spend.Authorize(ctx, dto.SpendRequest{
		Requester:     actor,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		SiteID:        req.SiteID,
		RelatedID:     rentalID,
		Description:   fmt.Sprintf("Rental of %s", req.MachineName),
		Date:          req.StartDate,
	}); err != nil {
		return nil, err
	}

	rental := domain.MachineryRental{
		RentalID:      rentalID,
		SiteID:        req.SiteID,
		VendorID:      req.VendorID,
		MachineName:   req.MachineName,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.StatusPending,
		SubmittedBy:   actor.UserID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		BillURL:       req.BillURL,
		AuditFields:   domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := s.repos.RentalRepo.SaveRental(ctx, rental); err != nil {
		s.LogError(ctx, err, "Rental not saved after spend was authorized", slog.String("rental_id", rentalID))
		return nil, fmt.Errorf("failed to save machinery rental: %w", err)
	}

	s.notifications.NotifyAdmins(ctx, domain.NotifyRentalVerification, rentalID,
		fmt.Sprintf("Rental of %s for %s awaits verification", req.MachineName, req.Amount))
	return &rental, nil
}

func (s *verificationWorkflow) VerifyMachineryRental(ctx context.Context, actor domain.Actor, rentalID string, req dto.ResolveRequest) (*domain.MachineryRental, error) {
	rental, err := s.GetMachineryRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	res, err := s.resolve(ctx, actor, domain.EventMachineryRental, rental.Status, req)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	rental.Status = res.to
	rental.VerifiedBy = actor.UserID
	rental.VerifiedAt = &now
	rental.LastUpdatedAt = now
	rental.LastUpdatedBy = actor.UserID
	if !res.approved {
		rental.RejectionReason = req.Reason
	}
	if err := s.repos.RentalRepo.ResolveRental(ctx, *rental); err != nil {
		return nil, fmt.Errorf("failed to resolve machinery rental %s: %w", rentalID, err)
	}

	if res.approved {
		if _, err := s.accounts.PostSiteExpense(ctx, rental.SiteID, rental.Amount, domain.PostingMeta{
			Type:        domain.EntryRental,
			Description: fmt.Sprintf("Rental of %s", rental.MachineName),
			RelatedID:   rental.RentalID,
			ActorID:     actor.UserID,
			Date:        rental.StartDate,
		}); err != nil {
			return nil, err
		}
	}

	outcome := domain.NotifyRentalRejected
	if res.approved {
		outcome = domain.NotifyRentalVerified
	}
	s.finish(ctx, rentalID, domain.NotifyRentalVerification, rental.SubmittedBy, outcome,
		outcomeMessage("Your rental of "+rental.MachineName, res, req.Reason), res)
	return rental, nil
}

func (s *verificationWorkflow) GetMachineryRental(ctx context.Context, rentalID string) (*domain.MachineryRental, error) {
	rental, err := s.repos.RentalRepo.FindRentalByID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find machinery rental %s: %w", rentalID, err)
	}
	return rental, nil
}
