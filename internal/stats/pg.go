package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foody-app/foody-api/internal/db"
)

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

const paidOrders = `o.paid AND o.status <> 'cancelled'`

func (s *PGStore) Totals(ctx context.Context) (Totals, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		t       Totals
		revenue string
	)
	err := s.db.QueryRow(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM users),
		  (SELECT COUNT(*) FROM products),
		  (SELECT COUNT(*) FROM orders),
		  (SELECT COUNT(*) FROM orders WHERE status = 'pending'),
		  (SELECT COUNT(*) FROM bills WHERE status = 'requested' AND NOT paid),
		  (SELECT COALESCE(SUM(o.total), 0)::text FROM orders o WHERE `+paidOrders+`)
	`).Scan(&t.Users, &t.Products, &t.Orders, &t.PendingOrders, &t.PendingBills, &revenue)
	if err != nil {
		return Totals{}, err
	}
	t.Revenue = db.Dec(revenue)
	return t, nil
}

func (s *PGStore) OrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (StatusCount, error) {
		var c StatusCount
		err := row.Scan(&c.Status, &c.Count)
		return c, err
	})
}

func (s *PGStore) RevenueByDay(ctx context.Context, since time.Time) ([]DayPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT to_char(o.created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
		       COUNT(*),
		       COALESCE(SUM(o.total) FILTER (WHERE `+paidOrders+`), 0)::text
		FROM orders o
		WHERE o.created_at >= $1
		GROUP BY day ORDER BY day
	`, since)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (DayPoint, error) {
		var (
			p       DayPoint
			revenue string
		)
		err := row.Scan(&p.Day, &p.Orders, &revenue)
		p.Revenue = db.Dec(revenue)
		return p, err
	})
}

func (s *PGStore) SalesByCategory(ctx context.Context) ([]CategorySales, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT COALESCE(c.name, 'Uncategorized'), SUM(i.quantity), SUM(i.price * i.quantity)::text
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		LEFT JOIN products p ON p.id = i.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE o.status <> 'cancelled'
		GROUP BY 1 ORDER BY SUM(i.price * i.quantity) DESC
	`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (CategorySales, error) {
		var (
			c       CategorySales
			revenue string
		)
		err := row.Scan(&c.Category, &c.Quantity, &revenue)
		c.Revenue = db.Dec(revenue)
		return c, err
	})
}

func (s *PGStore) PaymentMethods(ctx context.Context) ([]MethodStat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total), 0)::text
		FROM bills WHERE paid
		GROUP BY payment_method ORDER BY payment_method
	`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (MethodStat, error) {
		var (
			m      MethodStat
			amount string
		)
		err := row.Scan(&m.Method, &m.Count, &amount)
		m.Amount = db.Dec(amount)
		return m, err
	})
}

func (s *PGStore) OrdersByHour(ctx context.Context, since time.Time) ([]HourPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT EXTRACT(HOUR FROM created_at AT TIME ZONE 'UTC')::int AS hour, COUNT(*)
		FROM orders WHERE created_at >= $1
		GROUP BY hour ORDER BY hour
	`, since)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (HourPoint, error) {
		var h HourPoint
		err := row.Scan(&h.Hour, &h.Count)
		return h, err
	})
}

func (s *PGStore) TopProducts(ctx context.Context, n int) ([]TopProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT i.product_id, MAX(i.name), SUM(i.quantity), SUM(i.price * i.quantity)::text
		FROM order_items i JOIN orders o ON o.id = i.order_id
		WHERE o.status <> 'cancelled'
		GROUP BY i.product_id
		ORDER BY SUM(i.quantity) DESC, MAX(i.name)
		LIMIT $1
	`, n)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.Row) (TopProduct, error) {
		var (
			p       TopProduct
			revenue string
		)
		err := row.Scan(&p.ProductID, &p.Name, &p.Quantity, &revenue)
		p.Revenue = db.Dec(revenue)
		return p, err
	})
}

func (s *PGStore) Period(ctx context.Context, from, to time.Time) (Period, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		p       Period
		revenue string
	)
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(o.total) FILTER (WHERE `+paidOrders+`), 0)::text
		FROM orders o WHERE o.created_at >= $1 AND o.created_at < $2
	`, from, to).Scan(&p.Orders, &revenue)
	if err != nil {
		return Period{}, err
	}
	p.Revenue = db.Dec(revenue)
	return p, nil
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
