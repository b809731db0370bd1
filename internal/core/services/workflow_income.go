package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/google/uuid"
)

func (s *verificationWorkflow) CreateClientTransaction(ctx context.Context, actor domain.Actor, req dto.CreateClientTransactionRequest) (*domain.ClientTransaction, error) {
	if err := s.RequireRole(ctx, actor, "submit a client payment", domain.RoleClient); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if _, err := s.findSite(ctx, req.SiteID); err != nil {
		return nil, err
	}

	now := s.Now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	txn := domain.ClientTransaction{
		TransactionID: uuid.NewString(),
		SiteID:        req.SiteID,
		ClientID:      actor.UserID,
		Amount:        req.Amount,
		PaymentMode:   req.PaymentMode,
		Reference:     req.Reference,
		ReceiptURL:    req.ReceiptURL,
		Status:        domain.StatusPending,
		PaymentDate:   paymentDate,
		AuditFields:   domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.repos.ClientTransactionRepo.SaveClientTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save client payment", slog.String("site_id", req.SiteID))
		return nil, fmt.Errorf("failed to save client payment: %w", err)
	}

	s.notifications.NotifyAdmins(ctx, domain.NotifyPaymentVerification, txn.TransactionID,
		fmt.Sprintf("Client payment of %s awaits verification", req.Amount))
	return &txn, nil
}

// VerifyClientTransaction settles a client payment. Approval is the only flow that adds funds.
func (s *verificationWorkflow) VerifyClientTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.ResolveRequest) (*domain.ClientTransaction, error) {
	txn, err := s.GetClientTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	res, err := s.resolve(ctx, actor, domain.EventClientTransaction, txn.Status, req)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	txn.Status = res.to
	txn.VerifiedBy = actor.UserID
	txn.VerifiedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = actor.UserID
	if !res.approved {
		txn.RejectionReason = req.Reason
	}
	if err := s.repos.ClientTransactionRepo.ResolveClientTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to resolve client payment %s: %w", transactionID, err)
	}

	if res.approved {
		meta := domain.PostingMeta{
			Description: fmt.Sprintf("Client payment via %s", txn.PaymentMode),
			SiteID:      txn.SiteID,
			RelatedID:   txn.TransactionID,
			ActorID:     actor.UserID,
			Date:        txn.PaymentDate,
		}
		if _, err := s.accounts.AdjustCompanyBalance(ctx, txn.Amount, meta); err != nil {
			return nil, err
		}
		if _, err := s.accounts.AdjustSiteBudget(ctx, txn.SiteID, txn.Amount, meta); err != nil {
			s.LogError(ctx, err, "Company credited but site budget not",
				slog.String("transaction_id", transactionID))
			return nil, err
		}
	}

	outcome := domain.NotifyPaymentRejected
	if res.approved {
		outcome = domain.NotifyPaymentVerified
	}
	s.finish(ctx, transactionID, domain.NotifyPaymentVerification, txn.ClientID, outcome,
		outcomeMessage(fmt.Sprintf("Your payment of %s", txn.Amount), res, req.Reason), res)

	s.LogInfo(ctx, "Client payment resolved",
		slog.String("transaction_id", transactionID),
		slog.String("status", string(res.to)))
	return txn, nil
}

func (s *verificationWorkflow) GetClientTransaction(ctx context.Context, transactionID string) (*domain.ClientTransaction, error) {
	txn, err := s.repos.ClientTransactionRepo.FindClientTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client payment %s: %w", transactionID, err)
	}
	return txn, nil
}
