// Package product provides the repository interface and PostgreSQL implementation for managing menu products.
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/db"
)

var (
	ErrNotFound        = apperr.NotFound("product not found")
	ErrUnknownCategory = apperr.Validation("category does not exist")
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, int64, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) (bool, error)
	UpdateRating(ctx context.Context, id string, rating decimal.Decimal, numReviews int) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const productSelect = `
	SELECT p.id, p.name, p.description, p.price::text, p.category_id, COALESCE(c.name, ''),
	       p.image, p.available, p.rating::text, p.num_reviews, p.created_at, p.updated_at
	FROM products p LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p             Product
		price, rating string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.CategoryID, &p.CategoryName,
		&p.Image, &p.Available, &rating, &p.NumReviews, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Price, p.Rating = db.Dec(price), db.Dec(rating)
	return &p, nil
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	if p.CategoryID != nil && !db.ValidID(*p.CategoryID) {
		return ErrUnknownCategory
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, category_id, image, available, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Description, p.Price.String(), p.CategoryID, p.Image, p.Available).Scan(&p.CreatedAt, &p.UpdatedAt)
	if db.IsForeignKeyViolation(err) {
		return ErrUnknownCategory
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	if !db.ValidID(id) {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id=$1`, id))
}

func orderBy(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "p.price ASC, p.created_at DESC"
	case SortPriceDesc:
		return "p.price DESC, p.created_at DESC"
	case SortRating:
		return "p.rating DESC, p.num_reviews DESC"
	default:
		return "p.created_at DESC"
	}
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	search := strings.TrimSpace(q.Search)

	const where = `
		WHERE ($1 = '' OR p.name ILIKE '%'||$1||'%' OR p.description ILIKE '%'||$1||'%')
		  AND ($2 = '' OR p.category_id::text = $2)
		  AND ($3::boolean IS NULL OR p.available = $3)`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where,
		search, q.CategoryID, q.Available).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, productSelect+where+`
		ORDER BY `+orderBy(q.Sort)+`
		LIMIT $4 OFFSET $5
	`, search, q.CategoryID, q.Available, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	if p.CategoryID != nil && !db.ValidID(*p.CategoryID) {
		return ErrUnknownCategory
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4, category_id=$5, image=$6, available=$7, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at
	`, p.ID, p.Name, p.Description, p.Price.String(), p.CategoryID, p.Image, p.Available).Scan(&p.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case db.IsForeignKeyViolation(err):
		return ErrUnknownCategory
	}
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !db.ValidID(id) {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) UpdateRating(ctx context.Context, id string, rating decimal.Decimal, numReviews int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET rating=$2, num_reviews=$3, updated_at=NOW() WHERE id=$1
	`, id, rating.StringFixed(2), numReviews)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
