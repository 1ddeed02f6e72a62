package memstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/foody-app/foody-api/internal/cart"
	"github.com/foody-app/foody-api/internal/product"
)

// Carts implements cart.Repository.
type Carts struct{ s *Store }

// ensure returns the user's cart record, creating it. Callers hold the write lock.
func (r *Carts) ensure(userID string) *cartRec {
	c, ok := r.s.carts[userID]
	if !ok {
		c = &cartRec{id: uuid.NewString(), updated: r.s.now()}
		r.s.carts[userID] = c
	}
	return c
}

func (r *Carts) Get(_ context.Context, userID string) (*cart.Cart, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := r.ensure(userID)
	out := &cart.Cart{ID: rec.id, UserID: userID, Items: []cart.Item{}, UpdatedAt: rec.updated}
	for _, l := range rec.lines {
		p, ok := s.products[l.productID]
		if !ok {
			continue
		}
		out.Items = append(out.Items, cart.Item{
			ProductID: p.ID,
			Quantity:  l.qty,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Available: p.Available,
		})
	}
	return out, nil
}

func (r *Carts) AddItem(_ context.Context, userID, productID string, qty int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return product.ErrNotFound
	}
	rec := r.ensure(userID)
	rec.updated = s.now()
	for i := range rec.lines {
		if rec.lines[i].productID == productID {
			rec.lines[i].qty += qty
			return nil
		}
	}
	rec.lines = append(rec.lines, cartLine{productID: productID, qty: qty})
	return nil
}

func (r *Carts) SetItem(_ context.Context, userID, productID string, qty int) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := r.ensure(userID)
	for i := range rec.lines {
		if rec.lines[i].productID == productID {
			rec.lines[i].qty = qty
			rec.updated = s.now()
			return true, nil
		}
	}
	return false, nil
}

func (r *Carts) RemoveItem(_ context.Context, userID, productID string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := r.ensure(userID)
	for i := range rec.lines {
		if rec.lines[i].productID == productID {
			rec.lines = append(rec.lines[:i], rec.lines[i+1:]...)
			rec.updated = s.now()
			return true, nil
		}
	}
	return false, nil
}

func (r *Carts) Clear(_ context.Context, userID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := r.ensure(userID)
	rec.lines = nil
	rec.updated = s.now()
	return nil
}
