// Package stats assembles the admin dashboard from a fixed set of aggregate queries.
package stats

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	trendDays   = 7
	topProducts = 5
)

// Store runs the individual aggregate queries. Revenue always means the total
// of paid, non-cancelled orders.
type Store interface {
	Totals(ctx context.Context) (Totals, error)
	OrdersByStatus(ctx context.Context) ([]StatusCount, error)
	RevenueByDay(ctx context.Context, since time.Time) ([]DayPoint, error)
	SalesByCategory(ctx context.Context) ([]CategorySales, error)
	PaymentMethods(ctx context.Context) ([]MethodStat, error)
	OrdersByHour(ctx context.Context, since time.Time) ([]HourPoint, error)
	TopProducts(ctx context.Context, n int) ([]TopProduct, error)
	Period(ctx context.Context, from, to time.Time) (Period, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service { return &Service{store: store, now: time.Now} }

// GrowthPercent returns (this-last)/last*100 rounded to two decimals, or nil when last is zero.
func GrowthPercent(this, last decimal.Decimal) *float64 {
	if last.IsZero() {
		return nil
	}
	f, _ := this.Sub(last).Div(last).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return &f
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Dashboard runs every query concurrently and fails if any of them fails.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now().UTC()
	thisStart := monthStart(now)
	lastStart := thisStart.AddDate(0, -1, 0)
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(trendDays - 1))

	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.Totals, err = s.store.Totals(ctx); return })
	g.Go(func() (err error) { d.OrdersByStatus, err = s.store.OrdersByStatus(ctx); return })
	g.Go(func() (err error) { d.RevenueByDay, err = s.store.RevenueByDay(ctx, since); return })
	g.Go(func() (err error) { d.SalesByCategory, err = s.store.SalesByCategory(ctx); return })
	g.Go(func() (err error) { d.PaymentMethods, err = s.store.PaymentMethods(ctx); return })
	g.Go(func() (err error) { d.OrdersByHour, err = s.store.OrdersByHour(ctx, since); return })
	g.Go(func() (err error) { d.TopProducts, err = s.store.TopProducts(ctx, topProducts); return })
	g.Go(func() (err error) { d.ThisMonth, err = s.store.Period(ctx, thisStart, now); return })
	g.Go(func() (err error) { d.LastMonth, err = s.store.Period(ctx, lastStart, thisStart); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.RevenueByDay = fillDays(d.RevenueByDay, since, trendDays)
	d.Growth = Growth{
		Orders:  GrowthPercent(decimal.NewFromInt(d.ThisMonth.Orders), decimal.NewFromInt(d.LastMonth.Orders)),
		Revenue: GrowthPercent(d.ThisMonth.Revenue, d.LastMonth.Revenue),
	}
	return &d, nil
}

// fillDays returns one point per day starting at since, zero where the store had no rows.
func fillDays(points []DayPoint, since time.Time, days int) []DayPoint {
	byDay := make(map[string]DayPoint, len(points))
	for _, p := range points {
		byDay[p.Day] = p
	}
	out := make([]DayPoint, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		p, ok := byDay[day]
		if !ok {
			p = DayPoint{Day: day, Revenue: decimal.Zero}
		}
		out = append(out, p)
	}
	return out
}
