package bill

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/events"
	"github.com/foody-app/foody-api/internal/order"
)

var (
	ErrNotYourOrder  = apperr.Forbidden("not authorized to request a bill for this order")
	ErrNotBillable   = apperr.Validation("bill can only be requested once the order is served or completed")
	ErrForbidden     = apperr.Forbidden("not authorized to view this bill")
	ErrInvalidMethod = apperr.Validation("payment_method must be one of: cash esewa khalti bank")
)

// Orders is the slice of the order repository billing reads from.
type Orders interface {
	GetByID(ctx context.Context, id string) (*order.Order, error)
}

type Service struct {
	repo   Repository
	orders Orders
	events events.Publisher
	now    func() time.Time
}

func NewService(repo Repository, orders Orders, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{repo: repo, orders: orders, events: pub, now: time.Now}
}

func parseMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return MethodCash, nil
	}
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", ErrInvalidMethod
	}
	return m, nil
}

func fromOrder(o *order.Order, at time.Time) *Bill {
	return &Bill{
		ID:          uuid.NewString(),
		BillNumber:  NewNumber(at),
		OrderID:     o.ID,
		UserID:      o.UserID,
		TableNumber: o.TableNumber,
		Subtotal:    o.Subtotal,
		Tax:         o.Tax,
		Total:       o.Total,
	}
}

// Generate creates the bill of an order on behalf of staff. An order that
// already has a bill gets that bill back. created reports whether a new bill was stored.
func (s *Service) Generate(ctx context.Context, actor auth.Actor, in GenerateRequest) (b *Bill, created bool, err error) {
	method, err := parseMethod(in.PaymentMethod)
	if err != nil {
		return nil, false, err
	}
	o, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, false, err
	}
	if existing, err := s.existing(ctx, o.ID); existing != nil || err != nil {
		return existing, false, err
	}

	nb := fromOrder(o, s.now())
	nb.PaymentMethod = method
	nb.Status = StatusGenerated
	nb.RequestedBy = string(actor.Role)

	b, created, err = s.repo.CreateIfAbsent(ctx, nb)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.emit(ctx, events.BillGenerated, b)
	}
	return b, created, nil
}

// Request lets a customer ask for the bill of their own served or completed order.
func (s *Service) Request(ctx context.Context, actor auth.Actor, in RequestBillRequest) (b *Bill, created bool, err error) {
	o, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, false, err
	}
	if o.UserID != actor.UserID {
		return nil, false, ErrNotYourOrder
	}
	if !o.Status.Billable() {
		return nil, false, ErrNotBillable
	}
	if existing, err := s.existing(ctx, o.ID); existing != nil || err != nil {
		return existing, false, err
	}

	nb := fromOrder(o, s.now())
	nb.PaymentMethod = MethodCash
	nb.Status = StatusRequested
	nb.RequestedBy = string(auth.RoleCustomer)
	nb.CallWaiter = in.CallWaiter

	b, created, err = s.repo.CreateIfAbsent(ctx, nb)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.emit(ctx, events.BillRequested, b)
	}
	return b, created, nil
}

func (s *Service) existing(ctx context.Context, orderID string) (*Bill, error) {
	b, err := s.repo.GetByOrder(ctx, orderID)
	if apperr.IsKind(err, apperr.KindNotFound) {
		return nil, nil
	}
	return b, err
}

// Pay marks the bill paid and flags its order paid.
func (s *Service) Pay(ctx context.Context, id string, in PayRequest) (*Bill, error) {
	method, err := parseMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.MarkPaid(ctx, id, method, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.BillPaid, b)
	return b, nil
}

func (s *Service) emit(ctx context.Context, typ string, b *Bill) {
	events.Emit(ctx, s.events, events.Event{
		Type:        typ,
		OrderID:     b.OrderID,
		BillID:      b.ID,
		UserID:      b.UserID,
		TableNumber: b.TableNumber,
		Status:      string(b.Status),
		Total:       b.Total.String(),
		CallWaiter:  b.CallWaiter,
	})
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id string) (*Bill, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != actor.UserID && !actor.IsStaff() {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) GetByOrder(ctx context.Context, actor auth.Actor, orderID string) (*Bill, error) {
	b, err := s.repo.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if b.UserID != actor.UserID && !actor.IsStaff() {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Bill, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) ListMine(ctx context.Context, userID string, limit, offset int) ([]Bill, int64, error) {
	return s.repo.List(ctx, Filter{UserID: userID, Limit: limit, Offset: offset})
}

// ListPending returns customer bill requests not yet paid, for the waiter screen.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]Bill, int64, error) {
	unpaid := false
	return s.repo.List(ctx, Filter{Status: StatusRequested, Paid: &unpaid, Limit: limit, Offset: offset})
}
