package services_test

import (
	"testing"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type AccountRegistryTestSuite struct {
	ledgerSuite
}

func TestAccountRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(AccountRegistryTestSuite))
}

func (s *AccountRegistryTestSuite) TestCompanyMustBeInitialized() {
	_, err := s.svc.Accounts.GetCompanyAccount(s.ctx)
	s.ErrorIs(err, apperrors.ErrInvariantViolation)

	_, err = s.svc.Accounts.AdjustCompanyBalance(s.ctx, d(10), domain.PostingMeta{})
	s.ErrorIs(err, apperrors.ErrInvariantViolation)
}

func (s *AccountRegistryTestSuite) TestInitializeCompanyOnce() {
	company, err := s.svc.Accounts.InitializeCompany(s.ctx, d(5000), "", admin)
	s.Require().NoError(err)
	s.True(d(5000).Equal(company.Balance))
	s.Equal(int64(1), company.Sequence)

	_, err = s.svc.Accounts.InitializeCompany(s.ctx, d(100), "", admin)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.True(d(5000).Equal(s.companyBalance()))

	_, err = s.svc.Accounts.InitializeCompany(s.ctx, d(100), "", manager)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *AccountRegistryTestSuite) TestEntriesCarryRunningBalance() {
	s.initCompany(1000)
	_, err := s.svc.Accounts.AdjustCompanyBalance(s.ctx, d(-300), domain.PostingMeta{Description: "cash"})
	s.Require().NoError(err)
	company, err := s.svc.Accounts.AdjustCompanyBalance(s.ctx, d(50), domain.PostingMeta{Description: "refund"})
	s.Require().NoError(err)
	s.Equal(int64(3), company.Sequence)

	entries, next, err := s.svc.Accounts.ListEntries(s.ctx, company.AccountID, 2, nil)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Require().NotNil(next)
	s.Equal(int64(3), entries[0].Sequence)
	s.Equal(domain.EntryIncoming, entries[0].Type)
	s.True(d(750).Equal(entries[0].BalanceAfter))
	s.Equal(domain.EntryExpenditure, entries[1].Type)
	s.True(d(700).Equal(entries[1].BalanceAfter))

	rest, next, err := s.svc.Accounts.ListEntries(s.ctx, company.AccountID, 2, next)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Nil(next)
	s.True(d(1000).Equal(rest[0].BalanceAfter))
}

func (s *AccountRegistryTestSuite) TestZeroPostingRejected() {
	s.initCompany(1000)
	_, err := s.svc.Accounts.AdjustCompanyBalance(s.ctx, d(0), domain.PostingMeta{})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountRegistryTestSuite) TestSiteExpenseNeedsType() {
	_, err := s.svc.Accounts.PostSiteExpense(s.ctx, s.siteID, d(10), domain.PostingMeta{})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountRegistryTestSuite) TestListEntriesOfUnknownAccount() {
	_, _, err := s.svc.Accounts.ListEntries(s.ctx, "missing", 10, nil)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountRegistryTestSuite) TestFundUserAllowance() {
	s.initCompany(1000)

	allowance, err := s.svc.Accounts.FundUserAllowance(s.ctx, admin, manager.UserID, d(400), "")
	s.Require().NoError(err)
	s.True(d(400).Equal(allowance.Balance))
	s.True(d(600).Equal(s.companyBalance()))

	_, err = s.svc.Accounts.FundUserAllowance(s.ctx, admin, manager.UserID, d(601), "")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	_, err = s.svc.Accounts.FundUserAllowance(s.ctx, admin, client.UserID, d(10), "")
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Accounts.FundUserAllowance(s.ctx, manager, manager.UserID, d(10), "")
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.Accounts.FundUserAllowance(s.ctx, admin, "nobody", d(10), "")
	s.ErrorIs(err, apperrors.ErrNotFound)
}
