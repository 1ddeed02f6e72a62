package order

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
	ErrNotFound = apperr.NotFound("order not found")
)

type Repository interface {
	// Create stores the order with its items and empties the owner's cart.
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f Filter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	// FindReviewable returns the id of an order of userID containing productID
	// whose status is served or completed.
	FindReviewable(ctx context.Context, userID, productID string) (string, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
    INSERT INTO orders (id, user_id, table_number, notes, status, subtotal, tax, total, paid, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW(),NOW())
    RETURNING created_at, updated_at
  `, o.ID, o.UserID, o.TableNumber, o.Notes, o.Status, o.Subtotal.String(), o.Tax.String(), o.Total.String(), o.Paid).
		Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, name, price, quantity, image)
      VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, it.ID, o.ID, it.ProductID, it.Name, it.Price.String(), it.Quantity, it.Image); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
    DELETE FROM cart_items WHERE cart_id = (SELECT id FROM carts WHERE user_id=$1)
  `, o.UserID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const orderSelect = `
    SELECT o.id, o.user_id, COALESCE(u.name, ''), o.table_number, o.notes, o.status,
           o.subtotal::text, o.tax::text, o.total::text, o.paid, o.created_at, o.updated_at
    FROM orders o LEFT JOIN users u ON u.id = o.user_id`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o                    Order
		subtotal, tax, total string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.TableNumber, &o.Notes, &o.Status,
		&subtotal, &tax, &total, &o.Paid, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Subtotal, o.Tax, o.Total = db.Dec(subtotal), db.Dec(tax), db.Dec(total)
	o.Items = []Item{}
	return &o, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	if !db.ValidID(id) {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, orderSelect+` WHERE o.id=$1`, id))
	if err != nil {
		return nil, err
	}
	items, err := r.items(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, items[o.ID]...)
	return o, nil
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	const where = `
    WHERE ($1 = '' OR o.user_id::text = $1)
      AND ($2 = '' OR o.status = $2)
      AND ($3::boolean IS NULL OR o.paid = $3)
      AND ($4 = 0 OR o.table_number = $4)`
	args := []any{f.UserID, string(f.Status), f.Paid, f.Table}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders o`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, orderSelect+where+`
    ORDER BY o.created_at DESC LIMIT $5 OFFSET $6
  `, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Order{}
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return out, total, nil
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Items = append(out[i].Items, items[out[i].ID]...)
	}
	return out, total, nil
}

func (r *PGRepo) items(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, name, price::text, quantity, image
    FROM order_items WHERE order_id = ANY($1::uuid[])
  `, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Item, len(orderIDs))
	for rows.Next() {
		var (
			it      Item
			orderID string
			price   string
		)
		if err := rows.Scan(&it.ID, &orderID, &it.ProductID, &it.Name, &price, &it.Quantity, &it.Image); err != nil {
			return nil, err
		}
		it.Price = db.Dec(price)
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !db.ValidID(id) {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status = $2, updated_at = NOW()
    WHERE id = $1
  `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) FindReviewable(ctx context.Context, userID, productID string) (string, error) {
	if !db.ValidID(productID) {
		return "", ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var id string
	err := r.db.QueryRow(ctx, `
    SELECT o.id FROM orders o
    WHERE o.user_id = $1
      AND o.status IN ('served', 'completed')
      AND EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id AND i.product_id = $2)
    ORDER BY o.created_at DESC
    LIMIT 1
  `, userID, productID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}
