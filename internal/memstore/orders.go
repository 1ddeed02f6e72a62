package memstore

import (
	"context"
	"time"

	"github.com/foody-app/foody-api/internal/bill"
	"github.com/foody-app/foody-api/internal/order"
)

// Orders implements order.Repository.
type Orders struct{ s *Store }

// view deep-copies o and fills the customer name. Callers hold the lock.
func (r *Orders) view(o *order.Order) order.Order {
	cp := *o
	cp.Items = append([]order.Item{}, o.Items...)
	cp.CustomerName = ""
	if u, ok := r.s.users[o.UserID]; ok {
		cp.CustomerName = u.Name
	}
	return cp
}

func (r *Orders) Create(_ context.Context, o *order.Order) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	o.CreatedAt, o.UpdatedAt = now, now
	cp := *o
	cp.Items = append([]order.Item{}, o.Items...)
	s.orders[o.ID] = &cp
	s.orderIDs = append(s.orderIDs, o.ID)

	if c, ok := s.carts[o.UserID]; ok {
		c.lines = nil
		c.updated = now
	}
	return nil
}

func (r *Orders) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	v := r.view(o)
	return &v, nil
}

func (r *Orders) List(_ context.Context, f order.Filter) ([]order.Order, int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []order.Order{}
	for i := len(s.orderIDs) - 1; i >= 0; i-- {
		o := s.orders[s.orderIDs[i]]
		switch {
		case f.UserID != "" && o.UserID != f.UserID,
			f.Status != "" && o.Status != f.Status,
			f.Paid != nil && o.Paid != *f.Paid,
			f.Table != 0 && o.TableNumber != f.Table:
			continue
		}
		out = append(out, r.view(o))
	}
	return page(out, clampLimit(f.Limit), f.Offset), int64(len(out)), nil
}

func (r *Orders) UpdateStatus(_ context.Context, id string, status order.Status) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status, o.UpdatedAt = status, s.now()
	return nil
}

func (r *Orders) FindReviewable(_ context.Context, userID, productID string) (string, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.orderIDs) - 1; i >= 0; i-- {
		o := s.orders[s.orderIDs[i]]
		if o.UserID != userID || (o.Status != order.StatusServed && o.Status != order.StatusCompleted) {
			continue
		}
		for _, it := range o.Items {
			if it.ProductID == productID {
				return o.ID, nil
			}
		}
	}
	return "", order.ErrNotFound
}

// Bills implements bill.Repository.
type Bills struct{ s *Store }

func (r *Bills) view(b *bill.Bill) bill.Bill {
	cp := *b
	if o, ok := r.s.orders[b.OrderID]; ok {
		cp.TableNumber = o.TableNumber
	}
	return cp
}

func (r *Bills) byOrder(orderID string) *bill.Bill {
	for _, b := range r.s.bills {
		if b.OrderID == orderID {
			return b
		}
	}
	return nil
}

func (r *Bills) GetByID(_ context.Context, id string) (*bill.Bill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bills[id]
	if !ok {
		return nil, bill.ErrNotFound
	}
	v := r.view(b)
	return &v, nil
}

func (r *Bills) GetByOrder(_ context.Context, orderID string) (*bill.Bill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b := r.byOrder(orderID)
	if b == nil {
		return nil, bill.ErrNotFound
	}
	v := r.view(b)
	return &v, nil
}

func (r *Bills) CreateIfAbsent(_ context.Context, b *bill.Bill) (*bill.Bill, bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := r.byOrder(b.OrderID); existing != nil {
		v := r.view(existing)
		return &v, false, nil
	}
	if _, ok := s.orders[b.OrderID]; !ok {
		return nil, false, order.ErrNotFound
	}
	now := s.now()
	cp := *b
	cp.Paid, cp.PaidAt = false, nil
	cp.CreatedAt, cp.UpdatedAt = now, now
	s.bills[b.ID] = &cp
	s.billIDs = append(s.billIDs, b.ID)
	v := r.view(&cp)
	return &v, true, nil
}

func (r *Bills) List(_ context.Context, f bill.Filter) ([]bill.Bill, int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []bill.Bill{}
	for i := len(s.billIDs) - 1; i >= 0; i-- {
		b := s.bills[s.billIDs[i]]
		switch {
		case f.UserID != "" && b.UserID != f.UserID,
			f.Status != "" && b.Status != f.Status,
			f.Paid != nil && b.Paid != *f.Paid:
			continue
		}
		out = append(out, r.view(b))
	}
	return page(out, clampLimit(f.Limit), f.Offset), int64(len(out)), nil
}

func (r *Bills) MarkPaid(_ context.Context, id string, method bill.PaymentMethod, at time.Time) (*bill.Bill, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bills[id]
	if !ok {
		return nil, bill.ErrNotFound
	}
	paidAt := at
	b.Paid, b.PaidAt, b.PaymentMethod, b.Status, b.UpdatedAt = true, &paidAt, method, bill.StatusPaid, s.now()
	if o, ok := s.orders[b.OrderID]; ok {
		o.Paid, o.UpdatedAt = true, s.now()
	}
	v := r.view(b)
	return &v, nil
}
