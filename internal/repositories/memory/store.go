// Package memory holds in-memory implementations of every repository port.
// They are safe for concurrent use. Data is lost on restart; use the pgsql
// repositories for persistence.
package memory

import (
	"sync"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
)

// Store keeps every collection behind one lock.
type Store struct {
	mu sync.RWMutex

	accounts      map[string]*domain.LedgerAccount
	accountByKey  map[domain.AccountKey]string
	entries       map[string][]domain.LedgerEntry
	sites         map[string]domain.Site
	phases        map[string]domain.Phase
	users         map[string]domain.User
	purchases     map[string]domain.Purchase
	rentals       map[string]domain.MachineryRental
	clientTxns    map[string]domain.ClientTransaction
	attendances   map[string]domain.Attendance
	stocks        map[domain.StockKey]*domain.Stock
	stockUsages   map[string]domain.StockUsage
	contractorTxs map[string]domain.ContractorTransaction
	notifications []domain.Notification
	salaries      map[string]domain.SalaryAssignment
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]*domain.LedgerAccount),
		accountByKey:  make(map[domain.AccountKey]string),
		entries:       make(map[string][]domain.LedgerEntry),
		sites:         make(map[string]domain.Site),
		phases:        make(map[string]domain.Phase),
		users:         make(map[string]domain.User),
		purchases:     make(map[string]domain.Purchase),
		rentals:       make(map[string]domain.MachineryRental),
		clientTxns:    make(map[string]domain.ClientTransaction),
		attendances:   make(map[string]domain.Attendance),
		stocks:        make(map[domain.StockKey]*domain.Stock),
		stockUsages:   make(map[string]domain.StockUsage),
		contractorTxs: make(map[string]domain.ContractorTransaction),
		salaries:      make(map[string]domain.SalaryAssignment),
	}
}

// NewRepositoryProvider wires one store into every repository slot.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:            store,
		SiteRepo:              store,
		PhaseRepo:             store,
		UserRepo:              store,
		PurchaseRepo:          store,
		RentalRepo:            store,
		ClientTransactionRepo: store,
		AttendanceRepo:        store,
		StockRepo:             store,
		ContractorRepo:        store,
		NotificationRepo:      store,
		SalaryRepo:            store,
	}
}

var (
	_ portsrepo.LedgerRepositoryFacade            = (*Store)(nil)
	_ portsrepo.SiteRepositoryFacade              = (*Store)(nil)
	_ portsrepo.PhaseRepositoryFacade             = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade              = (*Store)(nil)
	_ portsrepo.PurchaseRepositoryFacade          = (*Store)(nil)
	_ portsrepo.RentalRepositoryFacade            = (*Store)(nil)
	_ portsrepo.ClientTransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.AttendanceRepositoryFacade        = (*Store)(nil)
	_ portsrepo.StockRepositoryFacade             = (*Store)(nil)
	_ portsrepo.ContractorRepositoryFacade        = (*Store)(nil)
	_ portsrepo.NotificationRepositoryFacade      = (*Store)(nil)
	_ portsrepo.SalaryRepositoryFacade            = (*Store)(nil)
)
