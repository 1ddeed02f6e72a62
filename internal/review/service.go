package review

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/product"
)

var (
	ErrNotEligible = apperr.Validation("you can only review products from your served or completed orders")
	ErrDuplicate   = apperr.Validation("you have already reviewed this product")
	ErrNotOwner    = apperr.Forbidden("not authorized to modify this review")
)

// Orders answers the eligibility question from order history.
type Orders interface {
	HasReviewable(ctx context.Context, userID, productID string) (orderID string, ok bool, err error)
}

// Products persists a product's aggregate rating.
type Products interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
	UpdateRating(ctx context.Context, id string, rating decimal.Decimal, numReviews int) error
}

type Service struct {
	repo     Repository
	orders   Orders
	products Products
}

func NewService(repo Repository, orders Orders, products Products) *Service {
	return &Service{repo: repo, orders: orders, products: products}
}

func (s *Service) Create(ctx context.Context, userID string, in CreateReviewRequest) (*Review, error) {
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	orderID, ok, err := s.orders.HasReviewable(ctx, userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEligible
	}
	if _, err := s.repo.GetByUserProduct(ctx, userID, in.ProductID); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rv := &Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: in.ProductID,
		OrderID:   orderID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	if err := s.recompute(ctx, rv.ProductID); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, in UpdateReviewRequest) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID != actor.UserID {
		return nil, ErrNotOwner
	}
	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = strings.TrimSpace(*in.Comment)
	}
	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	if err := s.recompute(ctx, rv.ProductID); err != nil {
		return nil, err
	}
	return rv, nil
}

// Delete removes a review; owners may delete their own, admins any.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv.UserID != actor.UserID && actor.Role != auth.RoleAdmin {
		return ErrNotOwner
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.recompute(ctx, rv.ProductID)
}

// recompute rebuilds the product's rating and review count from every stored review.
func (s *Service) recompute(ctx context.Context, productID string) error {
	avg, count, err := s.repo.Aggregate(ctx, productID)
	if err != nil {
		return err
	}
	err = s.products.UpdateRating(ctx, productID, avg, count)
	if errors.Is(err, product.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]Review, int64, error) {
	return s.repo.ListByProduct(ctx, productID, limit, offset)
}

func (s *Service) ListMine(ctx context.Context, userID string, limit, offset int) ([]Review, int64, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
