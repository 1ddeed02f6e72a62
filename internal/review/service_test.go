package review_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/cart"
	"github.com/foody-app/foody-api/internal/memstore"
	"github.com/foody-app/foody-api/internal/order"
	"github.com/foody-app/foody-api/internal/product"
	"github.com/foody-app/foody-api/internal/review"
)

type fixture struct {
	st     *memstore.Store
	svc    *review.Service
	orders *order.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()
	p := &product.Product{ID: "p1", Name: "Momo", Price: decimal.NewFromInt(300), Available: true}
	if err := st.Products().Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	orders := order.NewService(st.Orders(), cart.NewService(st.Carts(), st.Products()), nil)
	return &fixture{
		st:     st,
		orders: orders,
		svc:    review.NewService(st.Reviews(), orders, st.Products()),
	}
}

// placeOrder checks out p1 for userID and moves the order to status.
func (f *fixture) placeOrder(t *testing.T, userID string, status order.Status) {
	t.Helper()
	ctx := context.Background()
	if err := f.st.Carts().AddItem(ctx, userID, "p1", 1); err != nil {
		t.Fatal(err)
	}
	o, err := f.orders.Create(ctx, userID, order.CreateOrderRequest{TableNumber: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.orders.UpdateStatus(ctx, o.ID, string(status)); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) rating(t *testing.T) (decimal.Decimal, int) {
	t.Helper()
	p, err := f.st.Products().GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	return p.Rating, p.NumReviews
}

func TestCreate_RequiresEligibleOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, "u1", review.CreateReviewRequest{ProductID: "p1", Rating: 5}); !errors.Is(err, review.ErrNotEligible) {
		t.Fatalf("no order: err=%v", err)
	}

	f.placeOrder(t, "u1", order.StatusPreparing)
	if _, err := f.svc.Create(ctx, "u1", review.CreateReviewRequest{ProductID: "p1", Rating: 5}); !errors.Is(err, review.ErrNotEligible) {
		t.Fatalf("preparing: err=%v", err)
	}

	if _, err := f.svc.Create(ctx, "u1", review.CreateReviewRequest{ProductID: "nope", Rating: 5}); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("unknown product: err=%v", err)
	}
}

func TestCreate_OncePerProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.placeOrder(t, "u1", order.StatusServed)

	rv, err := f.svc.Create(ctx, "u1", review.CreateReviewRequest{ProductID: "p1", Rating: 4, Comment: " tasty "})
	if err != nil {
		t.Fatalf("create err=%v", err)
	}
	if rv.OrderID == "" || rv.Comment != "tasty" {
		t.Fatalf("review=%+v", rv)
	}
	if _, err := f.svc.Create(ctx, "u1", review.CreateReviewRequest{ProductID: "p1", Rating: 1}); !errors.Is(err, review.ErrDuplicate) {
		t.Fatalf("duplicate err=%v", err)
	}
	if r, n := f.rating(t); !r.Equal(decimal.NewFromInt(4)) || n != 1 {
		t.Fatalf("rating=%s n=%d", r, n)
	}
}

func TestAggregateRecompute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.placeOrder(t, "u1", order.StatusCompleted)
	f.placeOrder(t, "u2", order.StatusServed)
	f.placeOrder(t, "u3", order.StatusServed)

	r1, _ := f.svc.Create(ctx, "u1", review.CreateReviewRequest{ProductID: "p1", Rating: 5})
	_, _ = f.svc.Create(ctx, "u2", review.CreateReviewRequest{ProductID: "p1", Rating: 4})
	r3, _ := f.svc.Create(ctx, "u3", review.CreateReviewRequest{ProductID: "p1", Rating: 4})
	if r, n := f.rating(t); !r.Equal(decimal.RequireFromString("4.33")) || n != 3 {
		t.Fatalf("after create rating=%s n=%d", r, n)
	}

	two := 2
	if _, err := f.svc.Update(ctx, auth.Actor{UserID: "u3"}, r3.ID, review.UpdateReviewRequest{Rating: &two}); err != nil {
		t.Fatalf("update err=%v", err)
	}
	if r, n := f.rating(t); !r.Equal(decimal.RequireFromString("3.67")) || n != 3 {
		t.Fatalf("after update rating=%s n=%d", r, n)
	}

	if err := f.svc.Delete(ctx, auth.Actor{UserID: "u2"}, r1.ID); !errors.Is(err, review.ErrNotOwner) {
		t.Fatalf("foreign delete err=%v", err)
	}
	if err := f.svc.Delete(ctx, auth.Actor{UserID: "admin", Role: auth.RoleAdmin}, r1.ID); err != nil {
		t.Fatalf("admin delete err=%v", err)
	}
	if r, n := f.rating(t); !r.Equal(decimal.NewFromInt(3)) || n != 2 {
		t.Fatalf("after delete rating=%s n=%d", r, n)
	}

	list, total, err := f.svc.ListByProduct(ctx, "p1", 10, 0)
	if err != nil || total != 2 || len(list) != 2 {
		t.Fatalf("list=%d total=%d err=%v", len(list), total, err)
	}
}
