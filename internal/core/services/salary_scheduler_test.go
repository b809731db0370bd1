package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/core/services"
	"github.com/SscSPs/site_ledger_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySalaryAssignmentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveUser(ctx, domain.User{UserID: "u1", Role: domain.RoleEmployee, IsSalaried: true, MonthlySalary: d(25000)}))
	require.NoError(t, store.SaveUser(ctx, domain.User{UserID: "u2", Role: domain.RoleSiteManager, IsSalaried: true, MonthlySalary: d(40000)}))
	require.NoError(t, store.SaveUser(ctx, domain.User{UserID: "u3", Role: domain.RoleEmployee}))

	scheduler := services.NewSalaryScheduler(store, store)

	created, err := scheduler.RunMonthlySalaryAssignment(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = scheduler.RunMonthlySalaryAssignment(ctx, fixedNow.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, created, "second run in the same month skips everyone")

	assignment, err := store.FindSalaryAssignment(ctx, "u2", "2025-03")
	require.NoError(t, err)
	assert.True(t, d(40000).Equal(assignment.Amount))

	created, err = scheduler.RunMonthlySalaryAssignment(ctx, fixedNow.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestSalarySchedulerStopsWithContext(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.SaveUser(context.Background(), domain.User{UserID: "u1", IsSalaried: true, MonthlySalary: d(100)}))
	scheduler := services.NewSalaryScheduler(store, store, services.WithClock(func() time.Time { return fixedNow }))

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, err := store.FindSalaryAssignment(context.Background(), "u1", "2025-03")
		return err == nil
	}, time.Second, 5*time.Millisecond)
	cancel()
}
