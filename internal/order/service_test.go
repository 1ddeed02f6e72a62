package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/cart"
	"github.com/foody-app/foody-api/internal/events"
)

type stubRepo struct {
	mu     sync.Mutex
	orders map[string]*Order
}

func newStubRepo() *stubRepo { return &stubRepo{orders: map[string]*Order{}} }

func (r *stubRepo) Create(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubRepo) List(_ context.Context, f Filter) ([]Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Order{}
	for _, o := range r.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubRepo) UpdateStatus(_ context.Context, id string, st Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = st
	return nil
}

func (r *stubRepo) FindReviewable(_ context.Context, userID, productID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.UserID != userID || (o.Status != StatusServed && o.Status != StatusCompleted) {
			continue
		}
		for _, it := range o.Items {
			if it.ProductID == productID {
				return o.ID, nil
			}
		}
	}
	return "", ErrNotFound
}

type stubCarts map[string]*cart.Cart

func (s stubCarts) Get(_ context.Context, userID string) (*cart.Cart, error) {
	if c, ok := s[userID]; ok {
		return c, nil
	}
	return &cart.Cart{UserID: userID}, nil
}

type recorder struct{ got []events.Event }

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.got = append(r.got, e)
	return nil
}

func TestTotals(t *testing.T) {
	items := []Item{
		{Price: decimal.NewFromInt(300), Quantity: 2},
	}
	sub, tax, total := Totals(items)
	if !sub.Equal(decimal.NewFromInt(600)) || !tax.Equal(decimal.NewFromInt(30)) || !total.Equal(decimal.NewFromInt(630)) {
		t.Fatalf("totals=%s/%s/%s", sub, tax, total)
	}

	// 5% of 250.50 is 12.525, rounded to a whole unit.
	sub, tax, total = Totals([]Item{{Price: decimal.RequireFromString("125.25"), Quantity: 2}})
	if !tax.Equal(decimal.NewFromInt(13)) || !total.Equal(sub.Add(tax)) {
		t.Fatalf("tax=%s total=%s", tax, total)
	}
}

func TestCreate_SnapshotsCart(t *testing.T) {
	repo := newStubRepo()
	rec := &recorder{}
	carts := stubCarts{"u1": {UserID: "u1", Items: []cart.Item{
		{ProductID: "p1", Name: "Momo", Price: decimal.NewFromInt(300), Quantity: 2},
	}}}
	svc := NewService(repo, carts, rec)

	o, err := svc.Create(context.Background(), "u1", CreateOrderRequest{TableNumber: 4, Notes: "  no onion "})
	if err != nil {
		t.Fatalf("create err=%v", err)
	}
	if o.Status != StatusPending || o.Paid {
		t.Fatalf("status=%s paid=%v", o.Status, o.Paid)
	}
	if !o.Total.Equal(decimal.NewFromInt(630)) || o.Notes != "no onion" {
		t.Fatalf("order=%+v", o)
	}
	if len(o.Items) != 1 || o.Items[0].Name != "Momo" || o.Items[0].ID == "" {
		t.Fatalf("items=%+v", o.Items)
	}
	if len(rec.got) != 1 || rec.got[0].Type != events.OrderCreated || rec.got[0].Total != "630" {
		t.Fatalf("events=%+v", rec.got)
	}

	// Later price edits on the cart do not touch the stored order.
	carts["u1"].Items[0].Price = decimal.NewFromInt(999)
	got, _ := repo.GetByID(context.Background(), o.ID)
	if !got.Items[0].Price.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("price=%s", got.Items[0].Price)
	}
}

func TestCreate_EmptyCart(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, stubCarts{}, nil)

	_, err := svc.Create(context.Background(), "u1", CreateOrderRequest{TableNumber: 1})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err=%v", err)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("orders=%d", len(repo.orders))
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newStubRepo()
	rec := &recorder{}
	svc := NewService(repo, stubCarts{}, rec)
	_ = repo.Create(context.Background(), &Order{ID: "o1", UserID: "u1", Status: StatusCompleted})

	if _, err := svc.UpdateStatus(context.Background(), "o1", "flying"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err=%v", err)
	}
	if o, _ := repo.GetByID(context.Background(), "o1"); o.Status != StatusCompleted {
		t.Fatalf("status changed to %s", o.Status)
	}

	// Any member of the set is accepted, including a backward move.
	o, err := svc.UpdateStatus(context.Background(), "o1", "pending")
	if err != nil || o.Status != StatusPending {
		t.Fatalf("o=%+v err=%v", o, err)
	}
	if len(rec.got) != 1 || rec.got[0].Type != events.OrderStatusChanged {
		t.Fatalf("events=%+v", rec.got)
	}

	if _, err := svc.UpdateStatus(context.Background(), "missing", "served"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestGet_Ownership(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, stubCarts{}, nil)
	_ = repo.Create(context.Background(), &Order{ID: "o1", UserID: "u1"})

	if _, err := svc.Get(context.Background(), auth.Actor{UserID: "u1", Role: auth.RoleCustomer}, "o1"); err != nil {
		t.Fatalf("owner err=%v", err)
	}
	if _, err := svc.Get(context.Background(), auth.Actor{UserID: "u2", Role: auth.RoleStaff}, "o1"); err != nil {
		t.Fatalf("staff err=%v", err)
	}
	if _, err := svc.Get(context.Background(), auth.Actor{UserID: "u2", Role: auth.RoleCustomer}, "o1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err=%v", err)
	}
}

func TestHasReviewable(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, stubCarts{}, nil)
	_ = repo.Create(context.Background(), &Order{ID: "o1", UserID: "u1", Status: StatusPreparing,
		Items: []Item{{ProductID: "p1"}}})

	if _, ok, _ := svc.HasReviewable(context.Background(), "u1", "p1"); ok {
		t.Fatalf("preparing order must not qualify")
	}
	_ = repo.UpdateStatus(context.Background(), "o1", StatusServed)
	id, ok, err := svc.HasReviewable(context.Background(), "u1", "p1")
	if err != nil || !ok || id != "o1" {
		t.Fatalf("id=%q ok=%v err=%v", id, ok, err)
	}
}
