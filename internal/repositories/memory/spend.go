package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *Store) SavePurchase(ctx context.Context, purchase domain.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.purchases[purchase.PurchaseID]; exists {
		return fmt.Errorf("purchase %s: %w", purchase.PurchaseID, apperrors.ErrDuplicate)
	}
	purchase.Items = append([]domain.PurchaseItem(nil), purchase.Items...)
	s.purchases[purchase.PurchaseID] = purchase
	return nil
}

func (s *Store) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchase, ok := s.purchases[purchaseID]
	if !ok {
		return nil, fmt.Errorf("purchase %s: %w", purchaseID, apperrors.ErrNotFound)
	}
	purchase.Items = append([]domain.PurchaseItem(nil), purchase.Items...)
	return &purchase, nil
}

func (s *Store) ResolvePurchase(ctx context.Context, purchase domain.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.purchases[purchase.PurchaseID]
	if !ok {
		return fmt.Errorf("purchase %s: %w", purchase.PurchaseID, apperrors.ErrNotFound)
	}
	if stored.Status != domain.StatusPending {
		return fmt.Errorf("purchase %s is %s: %w", purchase.PurchaseID, stored.Status, apperrors.ErrAlreadyResolved)
	}
	stored.Status = purchase.Status
	stored.VerifiedBy = purchase.VerifiedBy
	stored.VerifiedAt = purchase.VerifiedAt
	stored.RejectionReason = purchase.RejectionReason
	stored.LastUpdatedAt = purchase.LastUpdatedAt
	stored.LastUpdatedBy = purchase.LastUpdatedBy
	s.purchases[purchase.PurchaseID] = stored
	return nil
}

func (s *Store) ListOutstandingCreditPurchases(ctx context.Context, vendorID string) ([]domain.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Purchase
	for _, p := range s.purchases {
		if p.VendorID == vendorID && p.IsOutstandingCredit() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseDate.Before(out[j].PurchaseDate) })
	return out, nil
}

func (s *Store) MarkPurchasesPaid(ctx context.Context, purchaseIDs []string, paidAt time.Time, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range purchaseIDs {
		p, ok := s.purchases[id]
		if !ok {
			return fmt.Errorf("purchase %s: %w", id, apperrors.ErrNotFound)
		}
		p.IsPaid = true
		p.PaidAt = &paidAt
		p.LastUpdatedAt = paidAt
		p.LastUpdatedBy = userID
		s.purchases[id] = p
	}
	return nil
}

func (s *Store) DeletePurchase(ctx context.Context, purchaseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.purchases, purchaseID)
	return nil
}

func (s *Store) SaveRental(ctx context.Context, rental domain.MachineryRental) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rentals[rental.RentalID]; exists {
		return fmt.Errorf("rental %s: %w", rental.RentalID, apperrors.ErrDuplicate)
	}
	s.rentals[rental.RentalID] = rental
	return nil
}

func (s *Store) FindRentalByID(ctx context.Context, rentalID string) (*domain.MachineryRental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rental, ok := s.rentals[rentalID]
	if !ok {
		return nil, fmt.Errorf("rental %s: %w", rentalID, apperrors.ErrNotFound)
	}
	return &rental, nil
}

func (s *Store) ResolveRental(ctx context.Context, rental domain.MachineryRental) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rentals[rental.RentalID]
	if !ok {
		return fmt.Errorf("rental %s: %w", rental.RentalID, apperrors.ErrNotFound)
	}
	if stored.Status != domain.StatusPending {
		return fmt.Errorf("rental %s is %s: %w", rental.RentalID, stored.Status, apperrors.ErrAlreadyResolved)
	}
	s.rentals[rental.RentalID] = rental
	return nil
}

func (s *Store) DeleteRental(ctx context.Context, rentalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rentals, rentalID)
	return nil
}

func (s *Store) SaveClientTransaction(ctx context.Context, txn domain.ClientTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clientTxns[txn.TransactionID]; exists {
		return fmt.Errorf("client transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
	}
	s.clientTxns[txn.TransactionID] = txn
	return nil
}

func (s *Store) FindClientTransactionByID(ctx context.Context, transactionID string) (*domain.ClientTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.clientTxns[transactionID]
	if !ok {
		return nil, fmt.Errorf("client transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return &txn, nil
}

func (s *Store) ResolveClientTransaction(ctx context.Context, txn domain.ClientTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.clientTxns[txn.TransactionID]
	if !ok {
		return fmt.Errorf("client transaction %s: %w", txn.TransactionID, apperrors.ErrNotFound)
	}
	if stored.Status != domain.StatusPending {
		return fmt.Errorf("client transaction %s is %s: %w", txn.TransactionID, stored.Status, apperrors.ErrAlreadyResolved)
	}
	s.clientTxns[txn.TransactionID] = txn
	return nil
}

func (s *Store) SaveAttendance(ctx context.Context, attendance domain.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attendance.Entries = append([]domain.AttendanceEntry(nil), attendance.Entries...)
	s.attendances[attendance.AttendanceID] = attendance
	return nil
}

func (s *Store) DeleteAttendance(ctx context.Context, attendanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attendances, attendanceID)
	return nil
}

func (s *Store) AdjustStock(ctx context.Context, key domain.StockKey, delta decimal.Decimal, userID string, now time.Time) (*domain.Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock, ok := s.stocks[key]
	if !ok {
		stock = &domain.Stock{
			StockID:     uuid.NewString(),
			Key:         key,
			Quantity:    decimal.Zero,
			AuditFields: domain.NewAuditFields(userID, now),
		}
		s.stocks[key] = stock
	}
	stock.Quantity = stock.Quantity.Add(delta)
	stock.LastUpdatedAt = now
	stock.LastUpdatedBy = userID

	stockCopy := *stock
	return &stockCopy, nil
}

func (s *Store) FindStock(ctx context.Context, key domain.StockKey) (*domain.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stock, ok := s.stocks[key]
	if !ok {
		return nil, fmt.Errorf("stock %s on site %s: %w", key.Name, key.SiteID, apperrors.ErrNotFound)
	}
	stockCopy := *stock
	return &stockCopy, nil
}

func (s *Store) ListStockBySite(ctx context.Context, siteID string) ([]domain.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Stock
	for key, stock := range s.stocks {
		if key.SiteID == siteID {
			out = append(out, *stock)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Name < out[j].Key.Name })
	return out, nil
}

func (s *Store) DeleteStockBySite(ctx context.Context, siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.stocks {
		if key.SiteID == siteID {
			delete(s.stocks, key)
		}
	}
	return nil
}

func (s *Store) SaveStockUsage(ctx context.Context, usage domain.StockUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockUsages[usage.UsageID] = usage
	return nil
}

func (s *Store) DeleteStockUsage(ctx context.Context, usageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stockUsages, usageID)
	return nil
}

func (s *Store) SaveContractorTransaction(ctx context.Context, txn domain.ContractorTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contractorTxs[txn.TransactionID] = txn
	return nil
}

func (s *Store) DeleteContractorTransaction(ctx context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contractorTxs, transactionID)
	return nil
}

func (s *Store) ListContractorTransactions(ctx context.Context, contractorID, siteID string) ([]domain.ContractorTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ContractorTransaction
	for _, t := range s.contractorTxs {
		if t.ContractorID == contractorID && t.SiteID == siteID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionDate.Before(out[j].TransactionDate) })
	return out, nil
}
