package cart

import (
	"context"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/product"
)

var ErrUnavailable = apperr.Validation("product is currently unavailable")

// Products is the slice of the product repository the cart needs.
type Products interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

type Service struct {
	repo     Repository
	products Products
}

func NewService(repo Repository, products Products) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	return s.repo.Get(ctx, userID)
}

// Add puts a product in the cart, increasing the quantity if it is already there.
func (s *Service) Add(ctx context.Context, userID string, in AddItemRequest) (*Cart, error) {
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.Available {
		return nil, ErrUnavailable
	}
	if err := s.repo.AddItem(ctx, userID, p.ID, qty); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *Service) SetQuantity(ctx context.Context, userID, productID string, qty int) (*Cart, error) {
	ok, err := s.repo.SetItem(ctx, userID, productID, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}
	return s.repo.Get(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) (*Cart, error) {
	ok, err := s.repo.RemoveItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}
	return s.repo.Get(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID string) (*Cart, error) {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}
