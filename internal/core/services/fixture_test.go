package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/core/services"
	"github.com/SscSPs/site_ledger_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

var (
	admin   = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	admin2  = domain.Actor{UserID: "admin-2", Role: domain.RoleAdmin}
	manager = domain.Actor{UserID: "manager-1", Role: domain.RoleSiteManager}
	client  = domain.Actor{UserID: "client-1", Role: domain.RoleClient}
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// ledgerSuite wires every service over a fresh in-memory store with one site.
type ledgerSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	repos  portsrepo.RepositoryProvider
	svc    *portssvc.ServiceContainer
	siteID string
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.repos = memory.NewRepositoryProvider(s.store)
	s.svc = services.NewServiceContainer(s.repos, nil, services.WithClock(func() time.Time { return fixedNow }))

	for _, u := range []domain.User{
		{UserID: admin.UserID, Name: "Asha", Role: domain.RoleAdmin},
		{UserID: admin2.UserID, Name: "Bala", Role: domain.RoleAdmin},
		{UserID: manager.UserID, Name: "Chitra", Role: domain.RoleSiteManager, IsSalaried: true, MonthlySalary: d(30000)},
		{UserID: client.UserID, Name: "Dev", Role: domain.RoleClient},
	} {
		s.Require().NoError(s.store.SaveUser(s.ctx, u))
	}

	s.siteID = "site-1"
	s.Require().NoError(s.store.SaveSite(s.ctx, domain.Site{
		SiteID:        s.siteID,
		Name:          "Lakeview",
		Location:      "Pune",
		SiteManagerID: manager.UserID,
		StartDate:     fixedNow,
	}))
	s.Require().NoError(s.svc.Accounts.OpenSiteAccounts(s.ctx, s.siteID, admin.UserID))
}

func (s *ledgerSuite) initCompany(balance int64) {
	_, err := s.svc.Accounts.InitializeCompany(s.ctx, d(balance), "", admin)
	s.Require().NoError(err)
}

func (s *ledgerSuite) companyBalance() decimal.Decimal {
	company, err := s.svc.Accounts.GetCompanyAccount(s.ctx)
	s.Require().NoError(err)
	return company.Balance
}

func (s *ledgerSuite) siteBalances() *domain.SiteBalances {
	balances, err := s.svc.Accounts.GetSiteBalances(s.ctx, s.siteID)
	s.Require().NoError(err)
	return balances
}

func (s *ledgerSuite) stockOf(name, unit, category string) decimal.Decimal {
	stock, err := s.store.FindStock(s.ctx, domain.StockKey{SiteID: s.siteID, Name: name, Unit: unit, Category: category})
	s.Require().NoError(err)
	return stock.Quantity
}

func (s *ledgerSuite) notificationsOfType(relatedID string, t domain.NotificationType) []domain.Notification {
	var out []domain.Notification
	for _, n := range s.store.NotificationsByRelated(relatedID) {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}
