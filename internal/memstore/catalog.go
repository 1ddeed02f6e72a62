package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/category"
	"github.com/foody-app/foody-api/internal/product"
)

// Categories implements category.Repository.
type Categories struct{ s *Store }

func (r *Categories) nameTaken(name, exceptID string) bool {
	for _, c := range r.s.categories {
		if c.Name == name && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *Categories) Create(_ context.Context, c *category.Category) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.nameTaken(c.Name, "") {
		return category.ErrAlreadyExist
	}
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (r *Categories) GetByID(_ context.Context, id string) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *Categories) List(_ context.Context, onlyActive bool) ([]category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []category.Category{}
	for _, c := range r.s.categories {
		if onlyActive && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Categories) Update(_ context.Context, c *category.Category) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return category.ErrNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return category.ErrAlreadyExist
	}
	c.UpdatedAt = s.now()
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (r *Categories) Delete(_ context.Context, id string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	for _, p := range s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			return false, category.ErrInUse
		}
	}
	delete(s.categories, id)
	return true, nil
}

// Products implements product.Repository.
type Products struct{ s *Store }

// view copies p and fills the joined category name. Callers hold the lock.
func (r *Products) view(p *product.Product) product.Product {
	cp := *p
	cp.CategoryName = ""
	if p.CategoryID != nil {
		if c, ok := r.s.categories[*p.CategoryID]; ok {
			cp.CategoryName = c.Name
		}
	}
	return cp
}

func (r *Products) checkCategory(p *product.Product) error {
	if p.CategoryID == nil {
		return nil
	}
	if _, ok := r.s.categories[*p.CategoryID]; !ok {
		return product.ErrUnknownCategory
	}
	return nil
}

func (r *Products) Create(_ context.Context, p *product.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := r.checkCategory(p); err != nil {
		return err
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	s.products[p.ID] = &cp
	s.productIDs = append(s.productIDs, p.ID)
	return nil
}

func (r *Products) GetByID(_ context.Context, id string) (*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	v := r.view(p)
	return &v, nil
}

func (r *Products) List(_ context.Context, q product.Query) ([]product.Product, int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := []product.Product{}
	for i := len(s.productIDs) - 1; i >= 0; i-- {
		p := s.products[s.productIDs[i]]
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if q.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != q.CategoryID) {
			continue
		}
		if q.Available != nil && p.Available != *q.Available {
			continue
		}
		out = append(out, r.view(p))
	}

	switch q.Sort {
	case product.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case product.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case product.SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].Rating.Equal(out[j].Rating) {
				return out[i].Rating.GreaterThan(out[j].Rating)
			}
			return out[i].NumReviews > out[j].NumReviews
		})
	}
	return page(out, clampLimit(q.Limit), q.Offset), int64(len(out)), nil
}

func (r *Products) Update(_ context.Context, p *product.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.products[p.ID]
	if !ok {
		return product.ErrNotFound
	}
	if err := r.checkCategory(p); err != nil {
		return err
	}
	p.UpdatedAt = s.now()
	cp := *p
	cp.Rating, cp.NumReviews = cur.Rating, cur.NumReviews
	s.products[p.ID] = &cp
	return nil
}

func (r *Products) Delete(_ context.Context, id string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	s.productIDs = remove(s.productIDs, id)
	for _, c := range s.carts {
		kept := c.lines[:0]
		for _, l := range c.lines {
			if l.productID != id {
				kept = append(kept, l)
			}
		}
		c.lines = kept
	}
	for rid, rv := range s.reviews {
		if rv.ProductID == id {
			delete(s.reviews, rid)
			s.reviewIDs = remove(s.reviewIDs, rid)
		}
	}
	return true, nil
}

func (r *Products) UpdateRating(_ context.Context, id string, rating decimal.Decimal, numReviews int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return product.ErrNotFound
	}
	p.Rating, p.NumReviews, p.UpdatedAt = rating.Round(2), numReviews, s.now()
	return nil
}
