package repositories

import (
	"context"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
)

// SiteRepositoryFacade defines persistence for sites
type SiteRepositoryFacade interface {
	// SaveSite persists a new site.
	SaveSite(ctx context.Context, site domain.Site) error

	// FindSiteByID retrieves a site by its ID.
	FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error)

	// DeleteSite removes a site.
	DeleteSite(ctx context.Context, siteID string) error
}

// PhaseRepositoryFacade defines persistence for site phases
type PhaseRepositoryFacade interface {
	// SavePhases persists the phases of a site.
	SavePhases(ctx context.Context, phases []domain.Phase) error

	// FindPhaseByID retrieves a phase by its ID.
	FindPhaseByID(ctx context.Context, phaseID string) (*domain.Phase, error)

	// UpdatePhaseStatus writes phase only if its stored status still equals from.
	// Returns apperrors.ErrAlreadyResolved when another writer moved it first.
	UpdatePhaseStatus(ctx context.Context, phase domain.Phase, from domain.EventStatus) error

	// DeletePhasesBySite removes every phase of a site.
	DeletePhasesBySite(ctx context.Context, siteID string) error
}
