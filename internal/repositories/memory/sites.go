package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
)

func (s *Store) SaveSite(ctx context.Context, site domain.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sites[site.SiteID]; exists {
		return fmt.Errorf("site %s: %w", site.SiteID, apperrors.ErrDuplicate)
	}
	s.sites[site.SiteID] = site
	return nil
}

func (s *Store) FindSiteByID(ctx context.Context, siteID string) (*domain.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	site, ok := s.sites[siteID]
	if !ok {
		return nil, fmt.Errorf("site %s: %w", siteID, apperrors.ErrNotFound)
	}
	return &site, nil
}

func (s *Store) DeleteSite(ctx context.Context, siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sites, siteID)
	return nil
}

func (s *Store) SavePhases(ctx context.Context, phases []domain.Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range phases {
		s.phases[p.PhaseID] = p
	}
	return nil
}

func (s *Store) FindPhaseByID(ctx context.Context, phaseID string) (*domain.Phase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	phase, ok := s.phases[phaseID]
	if !ok {
		return nil, fmt.Errorf("phase %s: %w", phaseID, apperrors.ErrNotFound)
	}
	return &phase, nil
}

func (s *Store) UpdatePhaseStatus(ctx context.Context, phase domain.Phase, from domain.EventStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.phases[phase.PhaseID]
	if !ok {
		return fmt.Errorf("phase %s: %w", phase.PhaseID, apperrors.ErrNotFound)
	}
	if stored.Status != from {
		return fmt.Errorf("phase %s is %s: %w", phase.PhaseID, stored.Status, apperrors.ErrAlreadyResolved)
	}
	s.phases[phase.PhaseID] = phase
	return nil
}

func (s *Store) DeletePhasesBySite(ctx context.Context, siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.phases {
		if p.SiteID == siteID {
			delete(s.phases, id)
		}
	}
	return nil
}

// PhasesBySite returns a site's phases in build order.
func (s *Store) PhasesBySite(siteID string) []domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Phase
	for _, p := range s.phases {
		if p.SiteID == siteID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrDuplicate)
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok || user.DeletedAt != nil {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return &user, nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return s.listUsers(func(u domain.User) bool { return u.Role == role }), nil
}

func (s *Store) ListSalariedUsers(ctx context.Context) ([]domain.User, error) {
	return s.listUsers(func(u domain.User) bool { return u.IsSalaried }), nil
}

func (s *Store) listUsers(match func(domain.User) bool) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.User
	for _, u := range s.users {
		if u.DeletedAt == nil && match(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
