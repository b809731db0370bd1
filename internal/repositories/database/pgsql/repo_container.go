package pgsql

import (
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	siteRepo := newPgxSiteRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	spendRepo := newPgxSpendRepository(dbPool)
	siteOpsRepo := newPgxSiteOpsRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LedgerRepo:            ledgerRepo,
		SiteRepo:              siteRepo,
		PhaseRepo:             siteRepo,
		UserRepo:              userRepo,
		PurchaseRepo:          spendRepo,
		RentalRepo:            spendRepo,
		ClientTransactionRepo: spendRepo,
		AttendanceRepo:        siteOpsRepo,
		StockRepo:             siteOpsRepo,
		ContractorRepo:        siteOpsRepo,
		NotificationRepo:      notificationRepo,
		SalaryRepo:            notificationRepo,
	}
}
