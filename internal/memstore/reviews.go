package memstore

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/review"
)

// Reviews implements review.Repository.
type Reviews struct{ s *Store }

func (r *Reviews) view(rv *review.Review) review.Review {
	cp := *rv
	cp.UserName = ""
	if u, ok := r.s.users[rv.UserID]; ok {
		cp.UserName = u.Name
	}
	return cp
}

func (r *Reviews) Create(_ context.Context, rv *review.Review) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.reviews {
		if v.UserID == rv.UserID && v.ProductID == rv.ProductID {
			return review.ErrConflict
		}
	}
	now := s.now()
	rv.CreatedAt, rv.UpdatedAt = now, now
	cp := *rv
	s.reviews[rv.ID] = &cp
	s.reviewIDs = append(s.reviewIDs, rv.ID)
	return nil
}

func (r *Reviews) GetByID(_ context.Context, id string) (*review.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, review.ErrNotFound
	}
	v := r.view(rv)
	return &v, nil
}

func (r *Reviews) GetByUserProduct(_ context.Context, userID, productID string) (*review.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rv := range r.s.reviews {
		if rv.UserID == userID && rv.ProductID == productID {
			v := r.view(rv)
			return &v, nil
		}
	}
	return nil, review.ErrNotFound
}

func (r *Reviews) list(match func(*review.Review) bool, limit, offset int) ([]review.Review, int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []review.Review{}
	for i := len(s.reviewIDs) - 1; i >= 0; i-- {
		if rv := s.reviews[s.reviewIDs[i]]; match(rv) {
			out = append(out, r.view(rv))
		}
	}
	return page(out, limit, offset), int64(len(out)), nil
}

func (r *Reviews) ListByProduct(_ context.Context, productID string, limit, offset int) ([]review.Review, int64, error) {
	return r.list(func(rv *review.Review) bool { return rv.ProductID == productID }, limit, offset)
}

func (r *Reviews) ListByUser(_ context.Context, userID string, limit, offset int) ([]review.Review, int64, error) {
	return r.list(func(rv *review.Review) bool { return rv.UserID == userID }, limit, offset)
}

func (r *Reviews) Update(_ context.Context, rv *review.Review) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.reviews[rv.ID]
	if !ok {
		return review.ErrNotFound
	}
	cur.Rating, cur.Comment, cur.UpdatedAt = rv.Rating, rv.Comment, s.now()
	rv.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *Reviews) Delete(_ context.Context, id string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return false, nil
	}
	delete(s.reviews, id)
	s.reviewIDs = remove(s.reviewIDs, id)
	return true, nil
}

func (r *Reviews) Aggregate(_ context.Context, productID string) (decimal.Decimal, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum, n := 0, 0
	for _, rv := range r.s.reviews {
		if rv.ProductID == productID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, 0, nil
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(n))).Round(2), n, nil
}
