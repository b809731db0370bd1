package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSiteRepository stores sites and their phases.
type PgxSiteRepository struct {
	BaseRepository
}

func newPgxSiteRepository(pool *pgxpool.Pool) *PgxSiteRepository {
	return &PgxSiteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.SiteRepositoryFacade  = (*PgxSiteRepository)(nil)
	_ portsrepo.PhaseRepositoryFacade = (*PgxSiteRepository)(nil)
)

func (r *PgxSiteRepository) SaveSite(ctx context.Context, site domain.Site) error {
	query := `
		INSERT INTO sites (site_id, name, location, site_manager_id, start_date, imported, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		site.SiteID,
		site.Name,
		site.Location,
		site.SiteManagerID,
		site.StartDate,
		site.Imported,
		site.CreatedAt,
		site.CreatedBy,
		site.LastUpdatedAt,
		site.LastUpdatedBy,
	)
	return mapError(err, "site "+site.SiteID)
}

func (r *PgxSiteRepository) FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error) {
	query := `
		SELECT site_id, name, location, site_manager_id, start_date, imported, created_at, created_by, last_updated_at, last_updated_by
		FROM sites
		WHERE site_id = $1;
	`
	var site domain.Site
	err := r.Pool.QueryRow(ctx, query, siteID).Scan(
		&site.SiteID,
		&site.Name,
		&site.Location,
		&site.SiteManagerID,
		&site.StartDate,
		&site.Imported,
		&site.CreatedAt,
		&site.CreatedBy,
		&site.LastUpdatedAt,
		&site.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "site "+siteID)
	}
	return &site, nil
}

func (r *PgxSiteRepository) DeleteSite(ctx context.Context, siteID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM sites WHERE site_id = $1;`, siteID)
	return mapError(err, "delete site "+siteID)
}

// SavePhases inserts the batch in one round trip.
func (r *PgxSiteRepository) SavePhases(ctx context.Context, phases []domain.Phase) error {
	if len(phases) == 0 {
		return nil
	}
	query := `
		INSERT INTO phases (phase_id, site_id, name, position, status, requested_by, requested_at, resolved_by, completion_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, p := range phases {
		batch.Queue(query,
			p.PhaseID, p.SiteID, p.Name, p.Position, string(p.Status),
			p.RequestedBy, p.RequestedAt, p.ResolvedBy, p.CompletionDate,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
		)
	}
	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return mapError(err, "save phases")
	}
	return nil
}

func (r *PgxSiteRepository) FindPhaseByID(ctx context.Context, phaseID string) (*domain.Phase, error) {
	query := `
		SELECT phase_id, site_id, name, position, status, requested_by, requested_at, resolved_by, completion_date, created_at, created_by, last_updated_at, last_updated_by
		FROM phases
		WHERE phase_id = $1;
	`
	var p domain.Phase
	var status string
	err := r.Pool.QueryRow(ctx, query, phaseID).Scan(
		&p.PhaseID, &p.SiteID, &p.Name, &p.Position, &status,
		&p.RequestedBy, &p.RequestedAt, &p.ResolvedBy, &p.CompletionDate,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "phase "+phaseID)
	}
	p.Status = domain.EventStatus(status)
	return &p, nil
}

func (r *PgxSiteRepository) UpdatePhaseStatus(ctx context.Context, phase domain.Phase, from domain.EventStatus) error {
	query := `
		UPDATE phases
		SET status = $2, requested_by = $3, requested_at = $4, resolved_by = $5, completion_date = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE phase_id = $1 AND status = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		phase.PhaseID, string(phase.Status), phase.RequestedBy, phase.RequestedAt, phase.ResolvedBy, phase.CompletionDate,
		phase.LastUpdatedAt, phase.LastUpdatedBy, string(from),
	)
	if err != nil {
		return mapError(err, "update phase "+phase.PhaseID)
	}
	return r.resolveOutcome(ctx, tag, `SELECT EXISTS (SELECT 1 FROM phases WHERE phase_id = $1);`, phase.PhaseID,
		fmt.Sprintf("phase %s", phase.PhaseID))
}

func (r *PgxSiteRepository) DeletePhasesBySite(ctx context.Context, siteID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM phases WHERE site_id = $1;`, siteID)
	return mapError(err, "delete phases of site "+siteID)
}
