package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
)

// verificationWorkflow drives every pending event through the shared transition table
// and applies each variant's side effects once the status write has succeeded.
type verificationWorkflow struct {
	BaseService
	repos         portsrepo.RepositoryProvider
	accounts      portssvc.AccountRegistrySvcFacade
	spend         portssvc.SpendAuthorizerSvc
	notifications portssvc.NotificationDispatcherSvc
}

// NewVerificationWorkflow creates the workflow service.
func NewVerificationWorkflow(
	repos portsrepo.RepositoryProvider,
	accounts portssvc.AccountRegistrySvcFacade,
	spend portssvc.SpendAuthorizerSvc,
	notifications portssvc.NotificationDispatcherSvc,
	opts ...Option,
) portssvc.VerificationWorkflowSvcFacade {
	return &verificationWorkflow{
		BaseService:   newBaseService(opts),
		repos:         repos,
		accounts:      accounts,
		spend:         spend,
		notifications: notifications,
	}
}

var _ portssvc.VerificationWorkflowSvcFacade = (*verificationWorkflow)(nil)

// resolution is the outcome of applying a verify/reject action to a pending event.
type resolution struct {
	to       domain.EventStatus
	approved bool
	status   domain.NotificationStatus
}

func (s *verificationWorkflow) resolve(ctx context.Context, actor domain.Actor, kind domain.EventKind, from domain.EventStatus, req dto.ResolveRequest) (resolution, error) {
	if err := s.RequireRole(ctx, actor, "resolve "+string(kind), domain.RoleAdmin); err != nil {
		return resolution{}, err
	}
	to, err := domain.Transition(kind, from, domain.ResolveAction(req.Approve))
	if err != nil {
		return resolution{}, err
	}
	return resolution{
		to:       to,
		approved: req.Approve,
		status:   domain.NotificationStatusFor(to),
	}, nil
}

// finish bulk-resolves the admins' notifications and tells the submitter the outcome.
func (s *verificationWorkflow) finish(ctx context.Context, relatedID string, adminType domain.NotificationType, submitterID string, outcomeType domain.NotificationType, message string, res resolution) {
	s.notifications.Resolve(ctx, relatedID, adminType, res.status)
	if submitterID == "" {
		return
	}
	s.notifications.NotifyUser(ctx, submitterID, outcomeType, relatedID, message, res.status)
}

func (s *verificationWorkflow) findSite(ctx context.Context, siteID string) (*domain.Site, error) {
	site, err := s.repos.SiteRepo.FindSiteByID(ctx, siteID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find site", slog.String("site_id", siteID))
		return nil, fmt.Errorf("failed to find site %s: %w", siteID, err)
	}
	return site, nil
}

func outcomeMessage(subject string, res resolution, reason string) string {
	if res.approved {
		return fmt.Sprintf("%s was approved", subject)
	}
	if reason == "" {
		return fmt.Sprintf("%s was rejected", subject)
	}
	return fmt.Sprintf("%s was rejected: %s", subject, reason)
}

func requirePositive(field string, amount interface{ IsPositive() bool }) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", apperrors.ErrValidation, field)
	}
	return nil
}
