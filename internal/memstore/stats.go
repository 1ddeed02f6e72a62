package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/bill"
	"github.com/foody-app/foody-api/internal/order"
	"github.com/foody-app/foody-api/internal/stats"
)

// Stats implements stats.Store over the in-memory tables.
type Stats struct{ s *Store }

func earning(o *order.Order) bool { return o.Paid && o.Status != order.StatusCancelled }

func (r *Stats) Totals(context.Context) (stats.Totals, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := stats.Totals{
		Users:    int64(len(s.users)),
		Products: int64(len(s.products)),
		Orders:   int64(len(s.orders)),
		Revenue:  decimal.Zero,
	}
	for _, o := range s.orders {
		if o.Status == order.StatusPending {
			t.PendingOrders++
		}
		if earning(o) {
			t.Revenue = t.Revenue.Add(o.Total)
		}
	}
	for _, b := range s.bills {
		if b.Status == bill.StatusRequested && !b.Paid {
			t.PendingBills++
		}
	}
	return t, nil
}

func (r *Stats) OrdersByStatus(context.Context) ([]stats.StatusCount, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int64{}
	for _, o := range s.orders {
		counts[string(o.Status)]++
	}
	out := []stats.StatusCount{}
	for k, v := range counts {
		out = append(out, stats.StatusCount{Status: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r *Stats) RevenueByDay(_ context.Context, since time.Time) ([]stats.DayPoint, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	byDay := map[string]*stats.DayPoint{}
	for _, o := range s.orders {
		if o.CreatedAt.Before(since) {
			continue
		}
		day := o.CreatedAt.UTC().Format("2006-01-02")
		p, ok := byDay[day]
		if !ok {
			p = &stats.DayPoint{Day: day, Revenue: decimal.Zero}
			byDay[day] = p
		}
		p.Orders++
		if earning(o) {
			p.Revenue = p.Revenue.Add(o.Total)
		}
	}
	out := []stats.DayPoint{}
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (r *Stats) SalesByCategory(context.Context) ([]stats.CategorySales, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	byCat := map[string]*stats.CategorySales{}
	for _, o := range s.orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		for _, it := range o.Items {
			name := "Uncategorized"
			if p, ok := s.products[it.ProductID]; ok && p.CategoryID != nil {
				if c, ok := s.categories[*p.CategoryID]; ok {
					name = c.Name
				}
			}
			cs, ok := byCat[name]
			if !ok {
				cs = &stats.CategorySales{Category: name, Revenue: decimal.Zero}
				byCat[name] = cs
			}
			cs.Quantity += int64(it.Quantity)
			cs.Revenue = cs.Revenue.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	out := []stats.CategorySales{}
	for _, cs := range byCat {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out, nil
}

func (r *Stats) PaymentMethods(context.Context) ([]stats.MethodStat, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	byMethod := map[string]*stats.MethodStat{}
	for _, b := range s.bills {
		if !b.Paid {
			continue
		}
		m, ok := byMethod[string(b.PaymentMethod)]
		if !ok {
			m = &stats.MethodStat{Method: string(b.PaymentMethod), Amount: decimal.Zero}
			byMethod[m.Method] = m
		}
		m.Count++
		m.Amount = m.Amount.Add(b.Total)
	}
	out := []stats.MethodStat{}
	for _, m := range byMethod {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out, nil
}

func (r *Stats) OrdersByHour(_ context.Context, since time.Time) ([]stats.HourPoint, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	byHour := map[int]int64{}
	for _, o := range s.orders {
		if !o.CreatedAt.Before(since) {
			byHour[o.CreatedAt.UTC().Hour()]++
		}
	}
	out := []stats.HourPoint{}
	for h, n := range byHour {
		out = append(out, stats.HourPoint{Hour: h, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out, nil
}

func (r *Stats) TopProducts(_ context.Context, n int) ([]stats.TopProduct, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	byProduct := map[string]*stats.TopProduct{}
	for _, o := range s.orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		for _, it := range o.Items {
			tp, ok := byProduct[it.ProductID]
			if !ok {
				tp = &stats.TopProduct{ProductID: it.ProductID, Name: it.Name, Revenue: decimal.Zero}
				byProduct[it.ProductID] = tp
			}
			tp.Quantity += int64(it.Quantity)
			tp.Revenue = tp.Revenue.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	out := []stats.TopProduct{}
	for _, tp := range byProduct {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return page(out, n, 0), nil
}

func (r *Stats) Period(_ context.Context, from, to time.Time) (stats.Period, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := stats.Period{Revenue: decimal.Zero}
	for _, o := range s.orders {
		if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		p.Orders++
		if earning(o) {
			p.Revenue = p.Revenue.Add(o.Total)
		}
	}
	return p, nil
}
