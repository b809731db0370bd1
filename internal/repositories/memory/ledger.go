package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/utils/pagination"
)

func (s *Store) FindAccount(ctx context.Context, key domain.AccountKey) (*domain.LedgerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountByKey[key]
	if !ok {
		return nil, fmt.Errorf("%s account %s: %w", key.Kind, key.OwnerID, apperrors.ErrNotFound)
	}
	account := *s.accounts[id]
	return &account, nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	accountCopy := *account
	return &accountCopy, nil
}

func (s *Store) ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	before := int64(-1)
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		before = seq
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.entries[accountID]
	result := make([]domain.LedgerEntry, 0, limit)
	for i := len(all) - 1; i >= 0; i-- {
		if before >= 0 && all[i].Sequence >= before {
			continue
		}
		if len(result) == limit {
			token := pagination.EncodeSequenceToken(result[len(result)-1].Sequence)
			return result, &token, nil
		}
		result = append(result, all[i])
	}
	return result, nil, nil
}

func (s *Store) CreateAccount(ctx context.Context, account domain.LedgerAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := account.Key()
	if _, exists := s.accountByKey[key]; exists {
		return fmt.Errorf("%s account %s: %w", key.Kind, key.OwnerID, apperrors.ErrDuplicate)
	}
	accountCopy := account
	s.accounts[account.AccountID] = &accountCopy
	s.accountByKey[key] = account.AccountID
	return nil
}

func (s *Store) PostEntry(ctx context.Context, key domain.AccountKey, entry domain.LedgerEntry) (*domain.LedgerAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.accountByKey[key]
	if !ok {
		return nil, fmt.Errorf("%s account %s: %w", key.Kind, key.OwnerID, apperrors.ErrNotFound)
	}
	account := s.accounts[id]
	account.Sequence++
	account.Balance = account.Balance.Add(entry.Amount)
	account.LastUpdatedAt = entry.CreatedAt
	account.LastUpdatedBy = entry.ActorID

	entry.AccountID = id
	entry.Sequence = account.Sequence
	entry.BalanceAfter = account.Balance
	s.entries[id] = append(s.entries[id], entry)

	accountCopy := *account
	return &accountCopy, nil
}

func (s *Store) DeleteAccountsBySite(ctx context.Context, siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, id := range s.accountByKey {
		if key.SiteID != siteID {
			continue
		}
		delete(s.accountByKey, key)
		delete(s.accounts, id)
		delete(s.entries, id)
	}
	return nil
}
