package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSpendRepository stores purchases, machinery rentals and client payments.
// Purchase items are kept as a JSONB column.
type PgxSpendRepository struct {
	BaseRepository
}

func newPgxSpendRepository(pool *pgxpool.Pool) *PgxSpendRepository {
	return &PgxSpendRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.PurchaseRepositoryFacade          = (*PgxSpendRepository)(nil)
	_ portsrepo.RentalRepositoryFacade            = (*PgxSpendRepository)(nil)
	_ portsrepo.ClientTransactionRepositoryFacade = (*PgxSpendRepository)(nil)
)

const purchaseColumns = `purchase_id, site_id, vendor_id, items, total_amount, payment_method, status, submitted_by, bill_url, purchase_date,
	verified_by, verified_at, rejection_reason, is_paid, paid_at, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxSpendRepository) SavePurchase(ctx context.Context, p domain.Purchase) error {
	query := `INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`
	_, err := r.Pool.Exec(ctx, query,
		p.PurchaseID, p.SiteID, p.VendorID, p.Items, p.TotalAmount, string(p.PaymentMethod), string(p.Status),
		p.SubmittedBy, p.BillURL, p.PurchaseDate, p.VerifiedBy, p.VerifiedAt, p.RejectionReason,
		p.IsPaid, p.PaidAt, p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	return mapError(err, "purchase "+p.PurchaseID)
}

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var p domain.Purchase
	var method, status string
	err := row.Scan(
		&p.PurchaseID, &p.SiteID, &p.VendorID, &p.Items, &p.TotalAmount, &method, &status,
		&p.SubmittedBy, &p.BillURL, &p.PurchaseDate, &p.VerifiedBy, &p.VerifiedAt, &p.RejectionReason,
		&p.IsPaid, &p.PaidAt, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	p.PaymentMethod = domain.PaymentMethod(method)
	p.Status = domain.EventStatus(status)
	return &p, nil
}

func (r *PgxSpendRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	p, err := scanPurchase(r.Pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE purchase_id = $1;`, purchaseID))
	if err != nil {
		return nil, mapError(err, "purchase "+purchaseID)
	}
	return p, nil
}

func (r *PgxSpendRepository) ResolvePurchase(ctx context.Context, p domain.Purchase) error {
	query := `
		UPDATE purchases
		SET status = $2, verified_by = $3, verified_at = $4, rejection_reason = $5, last_updated_at = $6, last_updated_by = $7
		WHERE purchase_id = $1 AND status = 'pending';
	`
	tag, err := r.Pool.Exec(ctx, query,
		p.PurchaseID, string(p.Status), p.VerifiedBy, p.VerifiedAt, p.RejectionReason, p.LastUpdatedAt, p.LastUpdatedBy)
	if err != nil {
		return mapError(err, "resolve purchase "+p.PurchaseID)
	}
	return r.resolveOutcome(ctx, tag, `SELECT EXISTS (SELECT 1 FROM purchases WHERE purchase_id = $1);`, p.PurchaseID,
		"purchase "+p.PurchaseID)
}

func (r *PgxSpendRepository) ListOutstandingCreditPurchases(ctx context.Context, vendorID string) ([]domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases
		WHERE vendor_id = $1 AND payment_method = 'credit' AND is_paid = FALSE AND status <> 'rejected'
		ORDER BY purchase_date;`
	rows, err := r.Pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, mapError(err, "list credit purchases")
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

func (r *PgxSpendRepository) MarkPurchasesPaid(ctx context.Context, purchaseIDs []string, paidAt time.Time, userID string) error {
	if len(purchaseIDs) == 0 {
		return nil
	}
	query := `
		UPDATE purchases
		SET is_paid = TRUE, paid_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE purchase_id = ANY($1);
	`
	_, err := r.Pool.Exec(ctx, query, purchaseIDs, paidAt, userID)
	return mapError(err, "mark purchases paid")
}

func (r *PgxSpendRepository) DeletePurchase(ctx context.Context, purchaseID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1;`, purchaseID)
	return mapError(err, "delete purchase "+purchaseID)
}

const rentalColumns = `rental_id, site_id, vendor_id, machine_name, amount, payment_method, status, submitted_by, start_date, end_date,
	bill_url, verified_by, verified_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxSpendRepository) SaveRental(ctx context.Context, m domain.MachineryRental) error {
	query := `INSERT INTO machinery_rentals (` + rentalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`
	_, err := r.Pool.Exec(ctx, query,
		m.RentalID, m.SiteID, m.VendorID, m.MachineName, m.Amount, string(m.PaymentMethod), string(m.Status),
		m.SubmittedBy, m.StartDate, m.EndDate, m.BillURL, m.VerifiedBy, m.VerifiedAt, m.RejectionReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "rental "+m.RentalID)
}

func (r *PgxSpendRepository) FindRentalByID(ctx context.Context, rentalID string) (*domain.MachineryRental, error) {
	var m domain.MachineryRental
	var method, status string
	err := r.Pool.QueryRow(ctx, `SELECT `+rentalColumns+` FROM machinery_rentals WHERE rental_id = $1;`, rentalID).Scan(
		&m.RentalID, &m.SiteID, &m.VendorID, &m.MachineName, &m.Amount, &method, &status,
		&m.SubmittedBy, &m.StartDate, &m.EndDate, &m.BillURL, &m.VerifiedBy, &m.VerifiedAt, &m.RejectionReason,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "rental "+rentalID)
	}
	m.PaymentMethod = domain.PaymentMethod(method)
	m.Status = domain.EventStatus(status)
	return &m, nil
}

func (r *PgxSpendRepository) ResolveRental(ctx context.Context, m domain.MachineryRental) error {
	query := `
		UPDATE machinery_rentals
		SET status = $2, verified_by = $3, verified_at = $4, rejection_reason = $5, last_updated_at = $6, last_updated_by = $7
		WHERE rental_id = $1 AND status = 'pending';
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RentalID, string(m.Status), m.VerifiedBy, m.VerifiedAt, m.RejectionReason, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError(err, "resolve rental "+m.RentalID)
	}
	return r.resolveOutcome(ctx, tag, `SELECT EXISTS (SELECT 1 FROM machinery_rentals WHERE rental_id = $1);`, m.RentalID,
		"rental "+m.RentalID)
}

func (r *PgxSpendRepository) DeleteRental(ctx context.Context, rentalID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM machinery_rentals WHERE rental_id = $1;`, rentalID)
	return mapError(err, "delete rental "+rentalID)
}

const clientTxnColumns = `transaction_id, site_id, client_id, amount, payment_mode, reference, receipt_url, status, payment_date,
	verified_by, verified_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxSpendRepository) SaveClientTransaction(ctx context.Context, t domain.ClientTransaction) error {
	query := `INSERT INTO client_transactions (` + clientTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`
	_, err := r.Pool.Exec(ctx, query,
		t.TransactionID, t.SiteID, t.ClientID, t.Amount, t.PaymentMode, t.Reference, t.ReceiptURL, string(t.Status),
		t.PaymentDate, t.VerifiedBy, t.VerifiedAt, t.RejectionReason, t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy,
	)
	return mapError(err, "client transaction "+t.TransactionID)
}

func (r *PgxSpendRepository) FindClientTransactionByID(ctx context.Context, transactionID string) (*domain.ClientTransaction, error) {
	var t domain.ClientTransaction
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT `+clientTxnColumns+` FROM client_transactions WHERE transaction_id = $1;`, transactionID).Scan(
		&t.TransactionID, &t.SiteID, &t.ClientID, &t.Amount, &t.PaymentMode, &t.Reference, &t.ReceiptURL, &status,
		&t.PaymentDate, &t.VerifiedBy, &t.VerifiedAt, &t.RejectionReason, &t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "client transaction "+transactionID)
	}
	t.Status = domain.EventStatus(status)
	return &t, nil
}

func (r *PgxSpendRepository) ResolveClientTransaction(ctx context.Context, t domain.ClientTransaction) error {
	query := `
		UPDATE client_transactions
		SET status = $2, verified_by = $3, verified_at = $4, rejection_reason = $5, last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1 AND status = 'pending';
	`
	tag, err := r.Pool.Exec(ctx, query,
		t.TransactionID, string(t.Status), t.VerifiedBy, t.VerifiedAt, t.RejectionReason, t.LastUpdatedAt, t.LastUpdatedBy)
	if err != nil {
		return mapError(err, "resolve client transaction "+t.TransactionID)
	}
	return r.resolveOutcome(ctx, tag, `SELECT EXISTS (SELECT 1 FROM client_transactions WHERE transaction_id = $1);`, t.TransactionID,
		"client transaction "+t.TransactionID)
}
