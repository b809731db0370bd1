package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/google/uuid"
)

type salaryScheduler struct {
	BaseService
	userRepo   portsrepo.UserReader
	salaryRepo portsrepo.SalaryRepositoryFacade
}

// NewSalaryScheduler creates the monthly salary job.
func NewSalaryScheduler(userRepo portsrepo.UserReader, salaryRepo portsrepo.SalaryRepositoryFacade, opts ...Option) portssvc.SalarySchedulerSvc {
	return &salaryScheduler{
		BaseService: newBaseService(opts),
		userRepo:    userRepo,
		salaryRepo:  salaryRepo,
	}
}

var _ portssvc.SalarySchedulerSvc = (*salaryScheduler)(nil)

// RunMonthlySalaryAssignment holds no lock. A user who already has an assignment for the
// month is skipped, either by the lookup or by the store's per-month uniqueness.
func (s *salaryScheduler) RunMonthlySalaryAssignment(ctx context.Context, now time.Time) (int, error) {
	users, err := s.userRepo.ListSalariedUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list salaried users")
		return 0, fmt.Errorf("failed to list salaried users: %w", err)
	}

	month := domain.SalaryMonth(now)
	created := 0
	var errs []error
	for _, user := range users {
		if !user.MonthlySalary.IsPositive() {
			continue
		}
		if _, err := s.salaryRepo.FindSalaryAssignment(ctx, user.UserID, month); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			errs = append(errs, fmt.Errorf("user %s: %w", user.UserID, err))
			continue
		}

		assignment := domain.SalaryAssignment{
			AssignmentID: uuid.NewString(),
			UserID:       user.UserID,
			Month:        month,
			Amount:       user.MonthlySalary,
			Status:       domain.StatusPending,
			CreatedAt:    now,
		}
		if err := s.salaryRepo.SaveSalaryAssignment(ctx, assignment); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			errs = append(errs, fmt.Errorf("user %s: %w", user.UserID, err))
			continue
		}
		created++
	}

	s.LogInfo(ctx, "Monthly salary assignment finished",
		slog.String("month", month),
		slog.Int("created", created),
		slog.Int("failed", len(errs)))
	return created, errors.Join(errs...)
}

// Start runs the job once and then on every tick in a background goroutine.
func (s *salaryScheduler) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		s.runOnce(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

func (s *salaryScheduler) runOnce(ctx context.Context) {
	if _, err := s.RunMonthlySalaryAssignment(ctx, s.Now()); err != nil {
		s.LogError(ctx, err, "Monthly salary assignment failed")
	}
}
