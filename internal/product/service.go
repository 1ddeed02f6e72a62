package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/apperr"
)

var ErrInvalidPrice = apperr.Validation("price must be a non-negative number")

type Service struct{ repo Repository }

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d.Round(2), nil
}

func optionalID(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func (s *Service) Create(ctx context.Context, in CreateProductRequest, image string) (*Product, error) {
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	p := &Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		CategoryID:  optionalID(in.CategoryID),
		Image:       image,
		Available:   in.Available == nil || *in.Available,
		Rating:      decimal.Zero,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q Query) ([]Product, int64, error) {
	return s.repo.List(ctx, q)
}

// Update applies a partial update; the image is replaced only when non-empty.
// Past orders are unaffected because they carry their own line-item snapshot.
func (s *Service) Update(ctx context.Context, id string, in UpdateProductRequest, image string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if strings.TrimSpace(in.Price) != "" {
		if p.Price, err = parsePrice(in.Price); err != nil {
			return nil, err
		}
	}
	if in.CategoryID != nil {
		p.CategoryID = optionalID(*in.CategoryID)
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	if image != "" {
		p.Image = image
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) SetAvailability(ctx context.Context, id string, available bool) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Available = available
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
