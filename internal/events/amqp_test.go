package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeSession struct {
	mu        sync.Mutex
	published []string
	closed    chan *amqp.Error
	shut      bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{closed: make(chan *amqp.Error, 1)}
}

func (s *fakeSession) Publish(_ context.Context, _, key string, _ amqp.Publishing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, key)
	return nil
}

func (s *fakeSession) Closed() <-chan *amqp.Error { return s.closed }

func (s *fakeSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shut = true
}

func (s *fakeSession) isShut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shut
}

func (s *fakeSession) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

// dialer hands out sessions in order; failures are returned for the first failN redials.
type dialer struct {
	mu       sync.Mutex
	sessions []*fakeSession
	calls    int
	failN    int
}

func (d *dialer) dial(string) (session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.calls > 1 && d.failN > 0 {
		d.failN--
		return nil, errors.New("connection refused")
	}
	s := newFakeSession()
	d.sessions = append(d.sessions, s)
	return s, nil
}

func (d *dialer) session(i int) *fakeSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i >= len(d.sessions) {
		return nil
	}
	return d.sessions[i]
}

func (d *dialer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAMQPPublisher_RedialsAfterDrop(t *testing.T) {
	d := &dialer{failN: 2}
	p, err := newPublisher("amqp://test", d.dial, time.Millisecond)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer p.Close()

	ctx := context.Background()
	if err := p.Publish(ctx, Event{Type: OrderCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	d.session(0).closed <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker restart"}

	eventually(t, "redial", func() bool { return d.session(1) != nil })
	eventually(t, "publish after redial", func() bool {
		return p.Publish(ctx, Event{Type: BillPaid}) == nil
	})
	if got := d.callCount(); got != 4 {
		t.Fatalf("dial calls=%d, want 4", got)
	}
	if d.session(0).count() != 1 || d.session(1).count() != 1 {
		t.Fatalf("published first=%d second=%d", d.session(0).count(), d.session(1).count())
	}
}

func TestAMQPPublisher_NotConnectedWhileDown(t *testing.T) {
	d := &dialer{failN: 1 << 30}
	p, err := newPublisher("amqp://test", d.dial, time.Millisecond)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	d.session(0).closed <- &amqp.Error{Reason: "gone"}

	eventually(t, "disconnect", func() bool {
		return errors.Is(p.Publish(context.Background(), Event{Type: OrderCreated}), ErrNotConnected)
	})

	p.Close()
	calls := d.callCount()
	time.Sleep(50 * time.Millisecond)
	if d.callCount() > calls+1 {
		t.Fatalf("redial kept running after Close: %d -> %d", calls, d.callCount())
	}
}

func TestAMQPPublisher_CloseDoesNotRedial(t *testing.T) {
	d := &dialer{}
	p, err := newPublisher("amqp://test", d.dial, time.Millisecond)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	first := d.session(0)
	p.Close()
	close(first.closed)

	time.Sleep(20 * time.Millisecond)
	if d.callCount() != 1 {
		t.Fatalf("dial calls=%d after Close", d.callCount())
	}
	if !first.isShut() {
		t.Fatalf("session not closed")
	}
	if err := p.Publish(context.Background(), Event{Type: OrderCreated}); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err=%v", err)
	}
	p.Close()
}
