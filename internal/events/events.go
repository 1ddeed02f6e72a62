// Package events carries order and bill lifecycle notifications to the kitchen,
// the floor staff and any downstream consumers.
package events

import (
	"context"
	"errors"
	"log"
	"time"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	BillGenerated      = "bill.generated"
	BillRequested      = "bill.requested"
	BillPaid           = "bill.paid"
)

type Event struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	BillID      string    `json:"bill_id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	TableNumber int       `json:"table_number,omitempty"`
	Status      string    `json:"status,omitempty"`
	Total       string    `json:"total,omitempty"`
	CallWaiter  bool      `json:"call_waiter,omitempty"`
	At          time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Emit publishes e and logs a failure instead of returning it; lifecycle
// writes have already committed when events go out.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if err := p.Publish(ctx, e); err != nil {
		log.Printf("[events] publish failed type=%s order=%s err=%v", e.Type, e.OrderID, err)
	}
}
