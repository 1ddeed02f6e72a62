package events

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
)

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.got = append(r.got, e)
	return r.err
}

func TestMultiPublishesToAllAndJoinsErrors(t *testing.T) {
	ok := &recorder{}
	bad := &recorder{err: errors.New("broker down")}
	m := Multi{bad, ok}

	err := m.Publish(context.Background(), Event{Type: OrderCreated, OrderID: "o1"})
	if err == nil || !errors.Is(err, bad.err) {
		t.Fatalf("err=%v", err)
	}
	if len(ok.got) != 1 || len(bad.got) != 1 {
		t.Fatalf("ok=%d bad=%d", len(ok.got), len(bad.got))
	}
}

func TestEmitStampsTimeAndSwallowsErrors(t *testing.T) {
	r := &recorder{err: errors.New("nope")}
	Emit(context.Background(), r, Event{Type: BillPaid, OrderID: "o1"})
	if len(r.got) != 1 || r.got[0].At.IsZero() {
		t.Fatalf("got=%+v", r.got)
	}
	Emit(context.Background(), nil, Event{Type: BillPaid})
}

func init() {
	log.SetOutput(io.Discard)
}
