package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/db"
)

var ErrItemNotFound = apperr.NotFound("item not found in cart")

type Repository interface {
	// Get returns the user's cart, creating an empty one on first access.
	Get(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID, productID string, qty int) error
	SetItem(ctx context.Context, userID, productID string, qty int) (bool, error)
	RemoveItem(ctx context.Context, userID, productID string) (bool, error)
	Clear(ctx context.Context, userID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ensure(ctx context.Context, userID string) (string, time.Time, error) {
	var (
		id      string
		updated time.Time
	)
	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (id, user_id, updated_at) VALUES ($1,$2,NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.NewString(), userID)
	if err != nil {
		return "", updated, err
	}
	err = r.db.QueryRow(ctx, `SELECT id, updated_at FROM carts WHERE user_id=$1`, userID).Scan(&id, &updated)
	return id, updated, err
}

func (r *PGRepo) Get(ctx context.Context, userID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, updated, err := r.ensure(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT ci.product_id, ci.quantity, p.name, p.price::text, p.image, p.available
		FROM cart_items ci JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id=$1
		ORDER BY ci.added_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &Cart{ID: id, UserID: userID, Items: []Item{}, UpdatedAt: updated}
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Name, &price, &it.Image, &it.Available); err != nil {
			return nil, err
		}
		it.Price = db.Dec(price)
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

func (r *PGRepo) AddItem(ctx context.Context, userID, productID string, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, _, err := r.ensure(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity, added_at) VALUES ($1,$2,$3,NOW())
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, id, productID, qty); err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE id=$1`, id)
	return err
}

func (r *PGRepo) SetItem(ctx context.Context, userID, productID string, qty int) (bool, error) {
	if !db.ValidID(productID) {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items SET quantity=$3
		WHERE cart_id = (SELECT id FROM carts WHERE user_id=$1) AND product_id=$2
	`, userID, productID, qty)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGRepo) RemoveItem(ctx context.Context, userID, productID string) (bool, error) {
	if !db.ValidID(productID) {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = (SELECT id FROM carts WHERE user_id=$1) AND product_id=$2
	`, userID, productID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGRepo) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		DELETE FROM cart_items WHERE cart_id = (SELECT id FROM carts WHERE user_id=$1)
	`, userID)
	return err
}
