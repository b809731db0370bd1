package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/dto"
)

func (s *verificationWorkflow) RequestPhaseCompletion(ctx context.Context, actor domain.Actor, phaseID string) (*domain.Phase, error) {
	if err := s.RequireRole(ctx, actor, "request phase completion", domain.RoleSiteManager); err != nil {
		return nil, err
	}
	phase, err := s.repos.PhaseRepo.FindPhaseByID(ctx, phaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find phase %s: %w", phaseID, err)
	}
	site, err := s.findSite(ctx, phase.SiteID)
	if err != nil {
		return nil, err
	}
	if site.SiteManagerID != "" && site.SiteManagerID != actor.UserID {
		return nil, fmt.Errorf("%w: site %s is managed by another user", apperrors.ErrForbidden, site.SiteID)
	}

	from := phase.Status
	to, err := domain.Transition(domain.EventPhase, from, domain.ActionRequest)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	phase.Status = to
	phase.RequestedBy = actor.UserID
	phase.RequestedAt = &now
	phase.LastUpdatedAt = now
	phase.LastUpdatedBy = actor.UserID
	if err := s.repos.PhaseRepo.UpdatePhaseStatus(ctx, *phase, from); err != nil {
		return nil, fmt.Errorf("failed to request completion of phase %s: %w", phaseID, err)
	}

	s.notifications.NotifyAdmins(ctx, domain.NotifyPhaseApproval, phaseID,
		fmt.Sprintf("%s phase of %s is ready for approval", phase.Name, site.Name))
	return phase, nil
}

func (s *verificationWorkflow) ResolvePhase(ctx context.Context, actor domain.Actor, phaseID string, req dto.ResolveRequest) (*domain.Phase, error) {
	phase, err := s.repos.PhaseRepo.FindPhaseByID(ctx, phaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find phase %s: %w", phaseID, err)
	}
	from := phase.Status
	res, err := s.resolve(ctx, actor, domain.EventPhase, from, req)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	phase.Status = res.to
	phase.ResolvedBy = actor.UserID
	phase.LastUpdatedAt = now
	phase.LastUpdatedBy = actor.UserID
	if res.to == domain.StatusCompleted {
		phase.CompletionDate = &now
	} else {
		phase.RequestedAt = nil
	}
	if err := s.repos.PhaseRepo.UpdatePhaseStatus(ctx, *phase, from); err != nil {
		return nil, fmt.Errorf("failed to resolve phase %s: %w", phaseID, err)
	}

	outcome := domain.NotifyPhaseRejected
	if res.approved {
		outcome = domain.NotifyPhaseApproved
	}
	s.finish(ctx, phaseID, domain.NotifyPhaseApproval, phase.RequestedBy, outcome,
		outcomeMessage(phase.Name+" phase", res, req.Reason), res)

	s.LogInfo(ctx, "Phase resolved",
		slog.String("phase_id", phaseID),
		slog.String("status", string(res.to)))
	return phase, nil
}
