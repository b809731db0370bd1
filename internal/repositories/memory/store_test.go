package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestPostEntrySequencesConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	key := domain.CompanyKey()
	require.NoError(t, store.CreateAccount(ctx, domain.LedgerAccount{AccountID: "acc-1", Kind: key.Kind, OwnerID: key.OwnerID}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.PostEntry(ctx, key, domain.LedgerEntry{Amount: decimal.NewFromInt(2), CreatedAt: now})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	account, err := store.FindAccount(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(50), account.Sequence)
	assert.True(t, decimal.NewFromInt(100).Equal(account.Balance))

	entries, _, err := store.ListEntries(ctx, "acc-1", 100, nil)
	require.NoError(t, err)
	require.Len(t, entries, 50)
	for i, e := range entries {
		assert.Equal(t, int64(50-i), e.Sequence)
		assert.True(t, decimal.NewFromInt(2*(50-int64(i))).Equal(e.BalanceAfter))
	}
}

func TestCreateAccountRejectsDuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	key := domain.SiteBudgetKey("site-1")
	require.NoError(t, store.CreateAccount(ctx, domain.LedgerAccount{AccountID: "a", Kind: key.Kind, OwnerID: key.OwnerID, SiteID: key.SiteID}))

	err := store.CreateAccount(ctx, domain.LedgerAccount{AccountID: "b", Kind: key.Kind, OwnerID: key.OwnerID, SiteID: key.SiteID})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = store.PostEntry(ctx, domain.SiteExpenseKey("site-1"), domain.LedgerEntry{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListEntriesRejectsBadToken(t *testing.T) {
	bad := "%%%"
	_, _, err := NewStore().ListEntries(context.Background(), "acc", 10, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteAccountsBySiteKeepsOtherSites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	for _, key := range []domain.AccountKey{
		domain.SiteBudgetKey("s1"),
		domain.SiteExpenseKey("s1"),
		domain.ContractorKey("c1", "s1"),
		domain.SiteBudgetKey("s2"),
		domain.CompanyKey(),
	} {
		require.NoError(t, store.CreateAccount(ctx, domain.LedgerAccount{
			AccountID: fmt.Sprintf("%s-%s-%s", key.Kind, key.OwnerID, key.SiteID),
			Kind:      key.Kind, OwnerID: key.OwnerID, SiteID: key.SiteID,
		}))
	}

	require.NoError(t, store.DeleteAccountsBySite(ctx, "s1"))
	assert.Equal(t, 2, store.Counts().Accounts)
	_, err := store.FindAccount(ctx, domain.ContractorKey("c1", "s1"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = store.FindAccount(ctx, domain.SiteBudgetKey("s2"))
	assert.NoError(t, err)
}

func TestResolvePurchaseIsConditional(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.SavePurchase(ctx, domain.Purchase{PurchaseID: "p1", Status: domain.StatusPending}))

	require.NoError(t, store.ResolvePurchase(ctx, domain.Purchase{PurchaseID: "p1", Status: domain.StatusVerified, VerifiedBy: "a1"}))
	err := store.ResolvePurchase(ctx, domain.Purchase{PurchaseID: "p1", Status: domain.StatusRejected})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyResolved)

	stored, err := store.FindPurchaseByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, stored.Status)
	assert.Equal(t, "a1", stored.VerifiedBy)

	assert.ErrorIs(t, store.ResolvePurchase(ctx, domain.Purchase{PurchaseID: "nope"}), apperrors.ErrNotFound)
}

func TestNotificationsPageNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	var batch []domain.Notification
	for i := 0; i < 5; i++ {
		batch = append(batch, domain.Notification{
			NotificationID: fmt.Sprintf("n%d", i),
			UserID:         "u1",
			CreatedAt:      now.Add(time.Duration(i) * time.Minute),
		})
	}
	batch = append(batch, domain.Notification{NotificationID: "other", UserID: "u2", CreatedAt: now})
	require.NoError(t, store.SaveNotifications(ctx, batch))

	var ids []string
	var token *string
	for {
		page, next, err := store.ListNotificationsByUser(ctx, "u1", 2, token)
		require.NoError(t, err)
		for _, n := range page {
			ids = append(ids, n.NotificationID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, []string{"n4", "n3", "n2", "n1", "n0"}, ids)
}

func TestUpdateStatusByRelatedMatchesType(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.SaveNotifications(ctx, []domain.Notification{
		{NotificationID: "1", RelatedID: "p1", Type: domain.NotifyPurchaseVerification, Status: domain.NotificationPending},
		{NotificationID: "2", RelatedID: "p1", Type: domain.NotifyPurchaseVerification, Status: domain.NotificationPending},
		{NotificationID: "3", RelatedID: "p1", Type: domain.NotifyPurchaseVerified, Status: domain.NotificationApproved},
	}))

	updated, err := store.UpdateStatusByRelated(ctx, "p1", domain.NotifyPurchaseVerification, domain.NotificationRejected, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	for _, n := range store.NotificationsByRelated("p1") {
		if n.Type == domain.NotifyPurchaseVerified {
			assert.Equal(t, domain.NotificationApproved, n.Status)
		} else {
			assert.Equal(t, domain.NotificationRejected, n.Status)
		}
	}
}

func TestAdjustStockCreatesLine(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	key := domain.StockKey{SiteID: "s1", Name: "Cement", Unit: "bag", Category: "binder"}

	stock, err := store.AdjustStock(ctx, key, decimal.NewFromInt(10), "u1", now)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(stock.Quantity))

	stock, err = store.AdjustStock(ctx, key, decimal.NewFromInt(-4), "u1", now)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(stock.Quantity))
}

func TestSalaryAssignmentUniquePerMonth(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := domain.SalaryAssignment{AssignmentID: "s1", UserID: "u1", Month: "2025-03"}
	require.NoError(t, store.SaveSalaryAssignment(ctx, a))
	a.AssignmentID = "s2"
	assert.ErrorIs(t, store.SaveSalaryAssignment(ctx, a), apperrors.ErrDuplicate)

	_, err := store.FindSalaryAssignment(ctx, "u1", "2025-04")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
