package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LedgerRepo            LedgerRepositoryFacade
	SiteRepo              SiteRepositoryFacade
	PhaseRepo             PhaseRepositoryFacade
	UserRepo              UserRepositoryFacade
	PurchaseRepo          PurchaseRepositoryFacade
	RentalRepo            RentalRepositoryFacade
	ClientTransactionRepo ClientTransactionRepositoryFacade
	AttendanceRepo        AttendanceRepositoryFacade
	StockRepo             StockRepositoryFacade
	ContractorRepo        ContractorRepositoryFacade
	NotificationRepo      NotificationRepositoryFacade
	SalaryRepo            SalaryRepositoryFacade
}
