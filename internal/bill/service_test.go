package bill_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/bill"
	"github.com/foody-app/foody-api/internal/events"
	"github.com/foody-app/foody-api/internal/memstore"
	"github.com/foody-app/foody-api/internal/order"
)

var (
	customer = auth.Actor{UserID: "u1", Role: auth.RoleCustomer}
	stranger = auth.Actor{UserID: "u2", Role: auth.RoleCustomer}
	staff    = auth.Actor{UserID: "s1", Role: auth.RoleStaff}
)

type recorder struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, e := range r.got {
		out = append(out, e.Type)
	}
	return out
}

func setup(t *testing.T, status order.Status) (*bill.Service, *memstore.Store, *recorder, string) {
	t.Helper()
	st := memstore.New()
	o := &order.Order{
		ID: "o1", UserID: customer.UserID, TableNumber: 5, Status: status,
		Items:    []order.Item{{ID: "i1", ProductID: "p1", Name: "Momo", Price: decimal.NewFromInt(300), Quantity: 2}},
		Subtotal: decimal.NewFromInt(600), Tax: decimal.NewFromInt(30), Total: decimal.NewFromInt(630),
	}
	if err := st.Orders().Create(context.Background(), o); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	return bill.NewService(st.Bills(), st.Orders(), rec), st, rec, o.ID
}

func TestGenerate_Idempotent(t *testing.T) {
	svc, _, rec, orderID := setup(t, order.StatusPreparing)
	ctx := context.Background()

	b1, created, err := svc.Generate(ctx, staff, bill.GenerateRequest{OrderID: orderID})
	if err != nil || !created {
		t.Fatalf("first generate created=%v err=%v", created, err)
	}
	if !regexp.MustCompile(`^BILL-\d{8}-[0-9A-F]{6}$`).MatchString(b1.BillNumber) {
		t.Fatalf("bill number=%q", b1.BillNumber)
	}
	if !b1.Total.Equal(decimal.NewFromInt(630)) || b1.PaymentMethod != bill.MethodCash || b1.Status != bill.StatusGenerated {
		t.Fatalf("bill=%+v", b1)
	}
	if b1.RequestedBy != "staff" || b1.TableNumber != 5 {
		t.Fatalf("bill=%+v", b1)
	}

	b2, created, err := svc.Generate(ctx, staff, bill.GenerateRequest{OrderID: orderID, PaymentMethod: "esewa"})
	if err != nil || created {
		t.Fatalf("second generate created=%v err=%v", created, err)
	}
	if b2.ID != b1.ID {
		t.Fatalf("ids differ: %s vs %s", b1.ID, b2.ID)
	}
	if got := rec.types(); len(got) != 1 || got[0] != events.BillGenerated {
		t.Fatalf("events=%v", got)
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	svc, st, _, orderID := setup(t, order.StatusServed)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, _, err := svc.Generate(ctx, staff, bill.GenerateRequest{OrderID: orderID})
			if err == nil {
				ids[i] = b.ID
			}
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		if id == "" || id != ids[0] {
			t.Fatalf("ids=%v", ids)
		}
	}
	all, total, _ := st.Bills().List(ctx, bill.Filter{})
	if total != 1 || len(all) != 1 {
		t.Fatalf("bills=%d", total)
	}
}

func TestGenerate_Errors(t *testing.T) {
	svc, _, _, _ := setup(t, order.StatusServed)
	ctx := context.Background()

	if _, _, err := svc.Generate(ctx, staff, bill.GenerateRequest{OrderID: "missing"}); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
	if _, _, err := svc.Generate(ctx, staff, bill.GenerateRequest{OrderID: "o1", PaymentMethod: "card"}); !errors.Is(err, bill.ErrInvalidMethod) {
		t.Fatalf("err=%v", err)
	}
}

func TestRequest_Eligibility(t *testing.T) {
	svc, st, rec, orderID := setup(t, order.StatusPreparing)
	ctx := context.Background()

	if _, _, err := svc.Request(ctx, customer, bill.RequestBillRequest{OrderID: orderID}); !errors.Is(err, bill.ErrNotBillable) {
		t.Fatalf("preparing: err=%v", err)
	}

	if err := st.Orders().UpdateStatus(ctx, orderID, order.StatusServed); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Request(ctx, stranger, bill.RequestBillRequest{OrderID: orderID}); !errors.Is(err, bill.ErrNotYourOrder) {
		t.Fatalf("stranger: err=%v", err)
	}

	b1, created, err := svc.Request(ctx, customer, bill.RequestBillRequest{OrderID: orderID, CallWaiter: true})
	if err != nil || !created {
		t.Fatalf("request created=%v err=%v", created, err)
	}
	if b1.Status != bill.StatusRequested || b1.RequestedBy != "customer" || !b1.CallWaiter {
		t.Fatalf("bill=%+v", b1)
	}

	b2, created, err := svc.Request(ctx, customer, bill.RequestBillRequest{OrderID: orderID})
	if err != nil || created || b2.ID != b1.ID {
		t.Fatalf("second request b2=%+v created=%v err=%v", b2, created, err)
	}
	if got := rec.types(); len(got) != 1 || got[0] != events.BillRequested {
		t.Fatalf("events=%v", got)
	}

	pending, total, err := svc.ListPending(ctx, 10, 0)
	if err != nil || total != 1 || pending[0].ID != b1.ID {
		t.Fatalf("pending=%+v err=%v", pending, err)
	}
}

func TestPay_PropagatesToOrder(t *testing.T) {
	svc, st, rec, orderID := setup(t, order.StatusCompleted)
	ctx := context.Background()

	b, _, err := svc.Request(ctx, customer, bill.RequestBillRequest{OrderID: orderID})
	if err != nil {
		t.Fatal(err)
	}
	paid, err := svc.Pay(ctx, b.ID, bill.PayRequest{})
	if err != nil {
		t.Fatalf("pay err=%v", err)
	}
	if !paid.Paid || paid.PaidAt == nil || paid.PaymentMethod != bill.MethodCash || paid.Status != bill.StatusPaid {
		t.Fatalf("bill=%+v", paid)
	}

	o, err := st.Orders().GetByID(ctx, orderID)
	if err != nil || !o.Paid {
		t.Fatalf("order paid=%v err=%v", o != nil && o.Paid, err)
	}
	if got := rec.types(); len(got) != 2 || got[1] != events.BillPaid {
		t.Fatalf("events=%v", got)
	}

	pending, _, _ := svc.ListPending(ctx, 10, 0)
	if len(pending) != 0 {
		t.Fatalf("paid bill still pending: %+v", pending)
	}

	if _, err := svc.Pay(ctx, "missing", bill.PayRequest{PaymentMethod: "khalti"}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestGet_Ownership(t *testing.T) {
	svc, _, _, orderID := setup(t, order.StatusServed)
	ctx := context.Background()
	b, _, _ := svc.Generate(ctx, staff, bill.GenerateRequest{OrderID: orderID})

	if _, err := svc.Get(ctx, customer, b.ID); err != nil {
		t.Fatalf("owner err=%v", err)
	}
	if _, err := svc.Get(ctx, stranger, b.ID); !errors.Is(err, bill.ErrForbidden) {
		t.Fatalf("stranger err=%v", err)
	}
	if got, err := svc.GetByOrder(ctx, staff, orderID); err != nil || got.ID != b.ID {
		t.Fatalf("by order got=%+v err=%v", got, err)
	}
}
