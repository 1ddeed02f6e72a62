package bill

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/db"
)

var (
	ErrNotFound = apperr.NotFound("bill not found")
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Bill, error)
	GetByOrder(ctx context.Context, orderID string) (*Bill, error)
	// CreateIfAbsent inserts b unless the order already has a bill, and returns
	// the stored bill either way. created is false when another bill won.
	CreateIfAbsent(ctx context.Context, b *Bill) (stored *Bill, created bool, err error)
	List(ctx context.Context, f Filter) ([]Bill, int64, error)
	// MarkPaid flags the bill and its order paid in one transaction.
	MarkPaid(ctx context.Context, id string, method PaymentMethod, at time.Time) (*Bill, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const billSelect = `
    SELECT b.id, b.bill_number, b.order_id, b.user_id, COALESCE(o.table_number, 0),
           b.subtotal::text, b.tax::text, b.total::text, b.payment_method, b.paid, b.paid_at,
           b.status, b.requested_by, b.call_waiter, b.created_at, b.updated_at
    FROM bills b LEFT JOIN orders o ON o.id = b.order_id`

func scanBill(row pgx.Row) (*Bill, error) {
	var (
		b                    Bill
		subtotal, tax, total string
	)
	err := row.Scan(&b.ID, &b.BillNumber, &b.OrderID, &b.UserID, &b.TableNumber,
		&subtotal, &tax, &total, &b.PaymentMethod, &b.Paid, &b.PaidAt,
		&b.Status, &b.RequestedBy, &b.CallWaiter, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Subtotal, b.Tax, b.Total = db.Dec(subtotal), db.Dec(tax), db.Dec(total)
	return &b, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Bill, error) {
	if !db.ValidID(id) {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return scanBill(r.db.QueryRow(ctx, billSelect+` WHERE b.id=$1`, id))
}

func (r *PGRepo) GetByOrder(ctx context.Context, orderID string) (*Bill, error) {
	if !db.ValidID(orderID) {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return scanBill(r.db.QueryRow(ctx, billSelect+` WHERE b.order_id=$1`, orderID))
}

func (r *PGRepo) CreateIfAbsent(ctx context.Context, b *Bill) (*Bill, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    INSERT INTO bills (id, bill_number, order_id, user_id, subtotal, tax, total, payment_method,
                       paid, status, requested_by, call_waiter, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,FALSE,$9,$10,$11,NOW(),NOW())
    ON CONFLICT (order_id) DO NOTHING
  `, b.ID, b.BillNumber, b.OrderID, b.UserID, b.Subtotal.String(), b.Tax.String(), b.Total.String(),
		b.PaymentMethod, b.Status, b.RequestedBy, b.CallWaiter)
	if err != nil {
		return nil, false, err
	}
	stored, err := scanBill(r.db.QueryRow(ctx, billSelect+` WHERE b.order_id=$1`, b.OrderID))
	if err != nil {
		return nil, false, err
	}
	return stored, tag.RowsAffected() == 1, nil
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Bill, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	const where = `
    WHERE ($1 = '' OR b.user_id::text = $1)
      AND ($2 = '' OR b.status = $2)
      AND ($3::boolean IS NULL OR b.paid = $3)`
	args := []any{f.UserID, string(f.Status), f.Paid}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bills b`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, billSelect+where+`
    ORDER BY b.created_at DESC LIMIT $4 OFFSET $5
  `, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *b)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) MarkPaid(ctx context.Context, id string, method PaymentMethod, at time.Time) (*Bill, error) {
	if !db.ValidID(id) {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var orderID string
	err = tx.QueryRow(ctx, `
    UPDATE bills
    SET paid = TRUE, paid_at = $2, payment_method = $3, status = 'paid', updated_at = NOW()
    WHERE id = $1
    RETURNING order_id
  `, id, at, method).Scan(&orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE orders SET paid = TRUE, updated_at = NOW() WHERE id = $1`, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return scanBill(r.db.QueryRow(ctx, billSelect+` WHERE b.id=$1`, id))
}
