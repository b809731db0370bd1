package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxSiteOpsRepository stores attendance, stock and contractor transactions.
type PgxSiteOpsRepository struct {
	BaseRepository
}

func newPgxSiteOpsRepository(pool *pgxpool.Pool) *PgxSiteOpsRepository {
	return &PgxSiteOpsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.AttendanceRepositoryFacade = (*PgxSiteOpsRepository)(nil)
	_ portsrepo.StockRepositoryFacade      = (*PgxSiteOpsRepository)(nil)
	_ portsrepo.ContractorRepositoryFacade = (*PgxSiteOpsRepository)(nil)
)

func (r *PgxSiteOpsRepository) SaveAttendance(ctx context.Context, a domain.Attendance) error {
	query := `
		INSERT INTO attendances (attendance_id, site_id, date, entries, total_wage, recorded_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		a.AttendanceID, a.SiteID, a.Date, a.Entries, a.TotalWage, a.RecordedBy,
		a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
	)
	return mapError(err, "attendance "+a.AttendanceID)
}

func (r *PgxSiteOpsRepository) DeleteAttendance(ctx context.Context, attendanceID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM attendances WHERE attendance_id = $1;`, attendanceID)
	return mapError(err, "delete attendance "+attendanceID)
}

const stockColumns = `stock_id, site_id, name, unit, category, quantity, created_at, created_by, last_updated_at, last_updated_by`

func scanStock(row pgx.Row) (*domain.Stock, error) {
	var s domain.Stock
	err := row.Scan(
		&s.StockID, &s.Key.SiteID, &s.Key.Name, &s.Key.Unit, &s.Key.Category, &s.Quantity,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AdjustStock upserts the stock line and applies delta atomically.
func (r *PgxSiteOpsRepository) AdjustStock(ctx context.Context, key domain.StockKey, delta decimal.Decimal, userID string, now time.Time) (*domain.Stock, error) {
	query := `
		INSERT INTO stocks (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $7, $8)
		ON CONFLICT (site_id, name, unit, category)
		DO UPDATE SET quantity = stocks.quantity + EXCLUDED.quantity,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + stockColumns + `;
	`
	stock, err := scanStock(r.Pool.QueryRow(ctx, query,
		uuid.NewString(), key.SiteID, key.Name, key.Unit, key.Category, delta, now, userID))
	if err != nil {
		return nil, mapError(err, "adjust stock "+key.Name)
	}
	return stock, nil
}

func (r *PgxSiteOpsRepository) FindStock(ctx context.Context, key domain.StockKey) (*domain.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE site_id = $1 AND name = $2 AND unit = $3 AND category = $4;`
	stock, err := scanStock(r.Pool.QueryRow(ctx, query, key.SiteID, key.Name, key.Unit, key.Category))
	if err != nil {
		return nil, mapError(err, "stock "+key.Name)
	}
	return stock, nil
}

func (r *PgxSiteOpsRepository) ListStockBySite(ctx context.Context, siteID string) ([]domain.Stock, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+stockColumns+` FROM stocks WHERE site_id = $1 ORDER BY name;`, siteID)
	if err != nil {
		return nil, mapError(err, "list stock")
	}
	defer rows.Close()

	var stocks []domain.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, mapError(err, "scan stock")
		}
		stocks = append(stocks, *s)
	}
	return stocks, rows.Err()
}

func (r *PgxSiteOpsRepository) DeleteStockBySite(ctx context.Context, siteID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM stocks WHERE site_id = $1;`, siteID)
	return mapError(err, "delete stock of site "+siteID)
}

func (r *PgxSiteOpsRepository) SaveStockUsage(ctx context.Context, u domain.StockUsage) error {
	query := `
		INSERT INTO stock_usages (usage_id, site_id, name, unit, category, quantity, usage_date, recorded_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		u.UsageID, u.Key.SiteID, u.Key.Name, u.Key.Unit, u.Key.Category, u.Quantity, u.UsageDate, u.RecordedBy,
		u.CreatedAt, u.CreatedBy, u.LastUpdatedAt, u.LastUpdatedBy,
	)
	return mapError(err, "stock usage "+u.UsageID)
}

func (r *PgxSiteOpsRepository) DeleteStockUsage(ctx context.Context, usageID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM stock_usages WHERE usage_id = $1;`, usageID)
	return mapError(err, "delete stock usage "+usageID)
}

const contractorTxnColumns = `transaction_id, contractor_id, site_id, type, amount, description, transaction_date, recorded_by,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxSiteOpsRepository) SaveContractorTransaction(ctx context.Context, t domain.ContractorTransaction) error {
	query := `INSERT INTO contractor_transactions (` + contractorTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := r.Pool.Exec(ctx, query,
		t.TransactionID, t.ContractorID, t.SiteID, string(t.Type), t.Amount, t.Description, t.TransactionDate, t.RecordedBy,
		t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy,
	)
	return mapError(err, "contractor transaction "+t.TransactionID)
}

func (r *PgxSiteOpsRepository) DeleteContractorTransaction(ctx context.Context, transactionID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM contractor_transactions WHERE transaction_id = $1;`, transactionID)
	return mapError(err, "delete contractor transaction "+transactionID)
}

func (r *PgxSiteOpsRepository) ListContractorTransactions(ctx context.Context, contractorID, siteID string) ([]domain.ContractorTransaction, error) {
	query := `SELECT ` + contractorTxnColumns + ` FROM contractor_transactions
		WHERE contractor_id = $1 AND site_id = $2 ORDER BY transaction_date;`
	rows, err := r.Pool.Query(ctx, query, contractorID, siteID)
	if err != nil {
		return nil, mapError(err, "list contractor transactions")
	}
	defer rows.Close()

	var txns []domain.ContractorTransaction
	for rows.Next() {
		var t domain.ContractorTransaction
		var txnType string
		if err := rows.Scan(
			&t.TransactionID, &t.ContractorID, &t.SiteID, &txnType, &t.Amount, &t.Description, &t.TransactionDate, &t.RecordedBy,
			&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		); err != nil {
			return nil, mapError(err, "scan contractor transaction")
		}
		t.Type = domain.ContractorTxnType(txnType)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
