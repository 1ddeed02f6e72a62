package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/db"
)

var (
	ErrNotFound = apperr.NotFound("review not found")
	// ErrConflict is returned by Create when the (user, product) pair already has a review.
	ErrConflict = apperr.Conflict("review already exists")
)

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	GetByUserProduct(ctx context.Context, userID, productID string) (*Review, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]Review, int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Review, int64, error)
	Update(ctx context.Context, rv *Review) error
	Delete(ctx context.Context, id string) (bool, error)
	// Aggregate returns the mean rating (two decimals) and count of a product's reviews.
	Aggregate(ctx context.Context, productID string) (decimal.Decimal, int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const reviewSelect = `
	SELECT r.id, r.user_id, COALESCE(u.name, ''), r.product_id, r.order_id, r.rating, r.comment,
	       r.created_at, r.updated_at
	FROM reviews r LEFT JOIN users u ON u.id = r.user_id`

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.ProductID, &rv.OrderID, &rv.Rating, &rv.Comment,
		&rv.CreatedAt, &rv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *PGRepo) Create(ctx context.Context, rv *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO reviews (id, user_id, product_id, order_id, rating, comment, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
		RETURNING created_at, updated_at
	`, rv.ID, rv.UserID, rv.ProductID, rv.OrderID, rv.Rating, rv.Comment).Scan(&rv.CreatedAt, &rv.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	if !db.ValidID(id) {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id=$1`, id))
}

func (r *PGRepo) GetByUserProduct(ctx context.Context, userID, productID string) (*Review, error) {
	if !db.ValidID(productID) {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.user_id=$1 AND r.product_id=$2`, userID, productID))
}

func (r *PGRepo) list(ctx context.Context, column, value string, limit, offset int) ([]Review, int64, error) {
	if !db.ValidID(value) {
		return []Review{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews r WHERE r.`+column+`=$1`, value).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, reviewSelect+` WHERE r.`+column+`=$1
		ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`, value, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *rv)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]Review, int64, error) {
	return r.list(ctx, "product_id", productID, limit, offset)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Review, int64, error) {
	return r.list(ctx, "user_id", userID, limit, offset)
}

func (r *PGRepo) Update(ctx context.Context, rv *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE reviews SET rating=$2, comment=$3, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at
	`, rv.ID, rv.Rating, rv.Comment).Scan(&rv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !db.ValidID(id) {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Aggregate(ctx context.Context, productID string) (decimal.Decimal, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		avg   string
		count int
	)
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)::text, COUNT(*)
		FROM reviews WHERE product_id=$1
	`, productID).Scan(&avg, &count)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return db.Dec(avg), count, nil
}
