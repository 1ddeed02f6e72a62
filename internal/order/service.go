package order

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/cart"
	"github.com/foody-app/foody-api/internal/events"
)

var (
	ErrEmptyCart     = apperr.Validation("cart is empty")
	ErrInvalidStatus = apperr.Validation("status must be one of: pending confirmed preparing served completed cancelled")
	ErrForbidden     = apperr.Forbidden("not authorized to view this order")
)

// Carts loads the caller's populated cart.
type Carts interface {
	Get(ctx context.Context, userID string) (*cart.Cart, error)
}

type Service struct {
	repo   Repository
	carts  Carts
	events events.Publisher
}

func NewService(repo Repository, carts Carts, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{repo: repo, carts: carts, events: pub}
}

// Create places an order from the caller's cart and empties the cart.
func (s *Service) Create(ctx context.Context, userID string, in CreateOrderRequest) (*Order, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil || len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, 0, len(c.Items))
	for _, ci := range c.Items {
		items = append(items, Item{
			ID:        uuid.NewString(),
			ProductID: ci.ProductID,
			Name:      ci.Name,
			Price:     ci.Price,
			Quantity:  ci.Quantity,
			Image:     ci.Image,
		})
	}
	subtotal, tax, total := Totals(items)

	o := &Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Items:       items,
		TableNumber: in.TableNumber,
		Notes:       strings.TrimSpace(in.Notes),
		Status:      StatusPending,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       total,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.Event{
		Type:        events.OrderCreated,
		OrderID:     o.ID,
		UserID:      o.UserID,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		Total:       o.Total.String(),
	})
	return o, nil
}

// UpdateStatus sets any status of the closed set, regardless of the current one.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	st := Status(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.Event{
		Type:        events.OrderStatusChanged,
		OrderID:     o.ID,
		UserID:      o.UserID,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
	})
	return o, nil
}

// Get returns the order to its owner or to staff.
func (s *Service) Get(ctx context.Context, actor auth.Actor, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.UserID && !actor.IsStaff() {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *Service) ListMine(ctx context.Context, userID string, limit, offset int) ([]Order, int64, error) {
	return s.repo.List(ctx, Filter{UserID: userID, Limit: limit, Offset: offset})
}

func (s *Service) List(ctx context.Context, f Filter) ([]Order, int64, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, f)
}

// HasReviewable reports whether userID has a served or completed order containing productID,
// returning that order's id.
func (s *Service) HasReviewable(ctx context.Context, userID, productID string) (string, bool, error) {
	id, err := s.repo.FindReviewable(ctx, userID, productID)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}
