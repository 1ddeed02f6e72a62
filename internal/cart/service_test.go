package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/cart"
	"github.com/foody-app/foody-api/internal/memstore"
	"github.com/foody-app/foody-api/internal/product"
)

func newService(t *testing.T) *cart.Service {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()
	for _, p := range []*product.Product{
		{ID: "p1", Name: "Momo", Price: decimal.NewFromInt(300), Available: true},
		{ID: "p2", Name: "Thukpa", Price: decimal.RequireFromString("250.50"), Available: true},
		{ID: "p3", Name: "Sekuwa", Price: decimal.NewFromInt(400), Available: false},
	} {
		if err := st.Products().Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	return cart.NewService(st.Carts(), st.Products())
}

func TestGet_LazilyCreated(t *testing.T) {
	svc := newService(t)
	c, err := svc.Get(context.Background(), "u1")
	if err != nil || c.ID == "" || len(c.Items) != 0 {
		t.Fatalf("cart=%+v err=%v", c, err)
	}
	again, _ := svc.Get(context.Background(), "u1")
	if again.ID != c.ID {
		t.Fatalf("second access created a new cart")
	}
}

func TestAdd_IncrementsQuantity(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", cart.AddItemRequest{ProductID: "p1"}); err != nil {
		t.Fatal(err)
	}
	c, err := svc.Add(ctx, "u1", cart.AddItemRequest{ProductID: "p1", Quantity: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 1 || c.Items[0].Quantity != 3 {
		t.Fatalf("items=%+v", c.Items)
	}
	c, _ = svc.Add(ctx, "u1", cart.AddItemRequest{ProductID: "p2", Quantity: 2})
	v := c.View()
	if !v.Subtotal.Equal(decimal.RequireFromString("1401")) || v.ItemCount != 5 {
		t.Fatalf("view=%+v", v)
	}
}

func TestAdd_Rejects(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", cart.AddItemRequest{ProductID: "p3"}); !errors.Is(err, cart.ErrUnavailable) {
		t.Fatalf("unavailable err=%v", err)
	}
	if _, err := svc.Add(ctx, "u1", cart.AddItemRequest{ProductID: "nope"}); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("unknown err=%v", err)
	}
}

func TestSetRemoveClear(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, _ = svc.Add(ctx, "u1", cart.AddItemRequest{ProductID: "p1"})
	_, _ = svc.Add(ctx, "u1", cart.AddItemRequest{ProductID: "p2"})

	c, err := svc.SetQuantity(ctx, "u1", "p1", 4)
	if err != nil || c.Items[0].Quantity != 4 {
		t.Fatalf("set items=%+v err=%v", c, err)
	}
	if _, err := svc.SetQuantity(ctx, "u1", "p3", 1); !errors.Is(err, cart.ErrItemNotFound) {
		t.Fatalf("set missing err=%v", err)
	}
	c, err = svc.Remove(ctx, "u1", "p1")
	if err != nil || len(c.Items) != 1 || c.Items[0].ProductID != "p2" {
		t.Fatalf("remove items=%+v err=%v", c, err)
	}
	c, err = svc.Clear(ctx, "u1")
	if err != nil || len(c.Items) != 0 {
		t.Fatalf("clear items=%+v err=%v", c, err)
	}
}
