package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/foody-app/foody-api/internal/category"
	"github.com/foody-app/foody-api/internal/memstore"
	"github.com/foody-app/foody-api/internal/product"
)

func TestList_HidesInactiveUnlessAll(t *testing.T) {
	st := memstore.New()
	svc := category.NewService(st.Categories())
	ctx := context.Background()

	off := false
	if _, err := svc.Create(ctx, category.CreateCategoryRequest{Name: " Momo "}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, category.CreateCategoryRequest{Name: "Drinks", Active: &off}, ""); err != nil {
		t.Fatal(err)
	}

	public, _ := svc.List(ctx, false)
	if len(public) != 1 || public[0].Name != "Momo" {
		t.Fatalf("public=%+v", public)
	}
	all, _ := svc.List(ctx, true)
	if len(all) != 2 {
		t.Fatalf("all=%d", len(all))
	}

	if _, err := svc.Create(ctx, category.CreateCategoryRequest{Name: "Momo"}, ""); !errors.Is(err, category.ErrAlreadyExist) {
		t.Fatalf("duplicate: err=%v", err)
	}
}

func TestUpdate_KeepsImageWhenNoneUploaded(t *testing.T) {
	st := memstore.New()
	svc := category.NewService(st.Categories())
	ctx := context.Background()

	c, _ := svc.Create(ctx, category.CreateCategoryRequest{Name: "Momo"}, "/uploads/momo.png")
	desc := "steamed dumplings"
	got, err := svc.Update(ctx, c.ID, category.UpdateCategoryRequest{Description: &desc}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Image != "/uploads/momo.png" || got.Description != desc || got.Name != "Momo" {
		t.Fatalf("category=%+v", got)
	}
	if _, err := svc.Update(ctx, "missing", category.UpdateCategoryRequest{}, ""); !errors.Is(err, category.ErrNotFound) {
		t.Fatalf("missing: err=%v", err)
	}
}

func TestDelete_InUse(t *testing.T) {
	st := memstore.New()
	svc := category.NewService(st.Categories())
	products := product.NewService(st.Products())
	ctx := context.Background()

	c, _ := svc.Create(ctx, category.CreateCategoryRequest{Name: "Momo"}, "")
	p, err := products.Create(ctx, product.CreateProductRequest{Name: "Chicken Momo", Price: "300", CategoryID: c.ID}, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, c.ID); !errors.Is(err, category.ErrInUse) {
		t.Fatalf("in use: err=%v", err)
	}
	if err := products.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, c.ID); !errors.Is(err, category.ErrNotFound) {
		t.Fatalf("second delete: err=%v", err)
	}
}
