package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeStore struct {
	this    Period
	last    Period
	days    []DayPoint
	failTop bool
}

func (f *fakeStore) Totals(context.Context) (Totals, error) {
	return Totals{Orders: 3, Revenue: decimal.NewFromInt(630)}, nil
}

func (f *fakeStore) OrdersByStatus(context.Context) ([]StatusCount, error) {
	return []StatusCount{{Status: "pending", Count: 3}}, nil
}

func (f *fakeStore) RevenueByDay(context.Context, time.Time) ([]DayPoint, error) {
	return f.days, nil
}

func (f *fakeStore) SalesByCategory(context.Context) ([]CategorySales, error) {
	return nil, nil
}

func (f *fakeStore) PaymentMethods(context.Context) ([]MethodStat, error) {
	return nil, nil
}

func (f *fakeStore) OrdersByHour(context.Context, time.Time) ([]HourPoint, error) {
	return []HourPoint{{Hour: 12, Count: 3}}, nil
}

func (f *fakeStore) TopProducts(_ context.Context, n int) ([]TopProduct, error) {
	if f.failTop {
		return nil, errors.New("boom")
	}
	return []TopProduct{{ProductID: "p1", Name: "Momo", Quantity: int64(n)}}, nil
}

func (f *fakeStore) Period(_ context.Context, from, _ time.Time) (Period, error) {
	if from.Month() == time.March {
		return f.this, nil
	}
	return f.last, nil
}

func fixedNow() time.Time { return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC) }

func TestGrowthPercent(t *testing.T) {
	if g := GrowthPercent(decimal.NewFromInt(10), decimal.Zero); g != nil {
		t.Fatalf("want nil, got %v", *g)
	}
	g := GrowthPercent(decimal.NewFromInt(150), decimal.NewFromInt(100))
	if g == nil || *g != 50 {
		t.Fatalf("got %v", g)
	}
	g = GrowthPercent(decimal.NewFromInt(1), decimal.NewFromInt(3))
	if g == nil || *g != -66.67 {
		t.Fatalf("got %v", g)
	}
}

func TestDashboard(t *testing.T) {
	store := &fakeStore{
		this: Period{Orders: 4, Revenue: decimal.NewFromInt(1200)},
		last: Period{Orders: 2, Revenue: decimal.Zero},
		days: []DayPoint{{Day: "2024-03-14", Orders: 2, Revenue: decimal.NewFromInt(630)}},
	}
	svc := NewService(store)
	svc.now = fixedNow

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if d.Growth.Orders == nil || *d.Growth.Orders != 100 {
		t.Fatalf("orders growth=%v", d.Growth.Orders)
	}
	if d.Growth.Revenue != nil {
		t.Fatalf("revenue growth must be nil when last month is zero")
	}
	if len(d.RevenueByDay) != trendDays || d.RevenueByDay[0].Day != "2024-03-09" || d.RevenueByDay[6].Day != "2024-03-15" {
		t.Fatalf("days=%+v", d.RevenueByDay)
	}
	if d.RevenueByDay[5].Orders != 2 {
		t.Fatalf("day 14=%+v", d.RevenueByDay[5])
	}
	if len(d.TopProducts) != 1 || d.TopProducts[0].Quantity != topProducts {
		t.Fatalf("top=%+v", d.TopProducts)
	}
}

func TestDashboard_QueryFailure(t *testing.T) {
	svc := NewService(&fakeStore{failTop: true})
	svc.now = fixedNow
	if _, err := svc.Dashboard(context.Background()); err == nil {
		t.Fatalf("want error")
	}
}
