package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/category"
	"github.com/foody-app/foody-api/internal/memstore"
	"github.com/foody-app/foody-api/internal/product"
)

func seed(t *testing.T) (*product.Service, string) {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()
	cat, err := category.NewService(st.Categories()).Create(ctx, category.CreateCategoryRequest{Name: "Momo"}, "")
	if err != nil {
		t.Fatal(err)
	}
	svc := product.NewService(st.Products())
	for _, in := range []product.CreateProductRequest{
		{Name: "Chicken Momo", Price: "300", CategoryID: cat.ID},
		{Name: "Veg Momo", Price: "220.5", CategoryID: cat.ID},
		{Name: "Thukpa", Price: "250", Description: "noodle soup"},
	} {
		if _, err := svc.Create(ctx, in, ""); err != nil {
			t.Fatal(err)
		}
	}
	return svc, cat.ID
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := seed(t)
	ctx := context.Background()

	for _, price := range []string{"-1", "abc", ""} {
		if _, err := svc.Create(ctx, product.CreateProductRequest{Name: "X", Price: price}, ""); !errors.Is(err, product.ErrInvalidPrice) {
			t.Fatalf("price %q: err=%v", price, err)
		}
	}
	if _, err := svc.Create(ctx, product.CreateProductRequest{Name: "X", Price: "10", CategoryID: "nope"}, ""); !errors.Is(err, product.ErrUnknownCategory) {
		t.Fatalf("category: err=%v", err)
	}

	p, err := svc.Create(ctx, product.CreateProductRequest{Name: "Lassi", Price: "99.999"}, "/uploads/lassi.png")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Available || !p.Price.Equal(decimal.NewFromInt(100)) || p.Image != "/uploads/lassi.png" {
		t.Fatalf("product=%+v", p)
	}
}

func TestList_FilterAndSort(t *testing.T) {
	svc, catID := seed(t)
	ctx := context.Background()

	items, total, err := svc.List(ctx, product.Query{CategoryID: catID, Sort: product.SortPriceAsc})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || items[0].Name != "Veg Momo" || items[0].CategoryName != "Momo" {
		t.Fatalf("total=%d items=%+v", total, items)
	}

	items, _, _ = svc.List(ctx, product.Query{Search: "NOODLE"})
	if len(items) != 1 || items[0].Name != "Thukpa" {
		t.Fatalf("search=%+v", items)
	}

	items, _, _ = svc.List(ctx, product.Query{Sort: product.SortPriceDesc, Limit: 2})
	if len(items) != 2 || items[0].Name != "Chicken Momo" {
		t.Fatalf("desc=%+v", items)
	}
}

func TestAvailability(t *testing.T) {
	svc, _ := seed(t)
	ctx := context.Background()
	items, _, _ := svc.List(ctx, product.Query{Search: "Thukpa"})
	id := items[0].ID

	if _, err := svc.SetAvailability(ctx, id, false); err != nil {
		t.Fatal(err)
	}
	on := true
	avail, total, _ := svc.List(ctx, product.Query{Available: &on})
	if total != 2 {
		t.Fatalf("available=%d %+v", total, avail)
	}
	if _, err := svc.SetAvailability(ctx, "missing", true); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("missing: err=%v", err)
	}
}
