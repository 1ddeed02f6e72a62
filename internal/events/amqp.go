package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange is the topic exchange lifecycle events are published to; the
// routing key is the event type (order.created, bill.paid, ...).
const Exchange = "foody.orders"

const (
	redialDelay    = 2 * time.Second
	maxRedialDelay = 30 * time.Second
)

// ErrNotConnected is returned by Publish while the broker link is being redialed.
var ErrNotConnected = errors.New("amqp: not connected")

// session is one live connection plus the channel events are published on.
type session interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
	// Closed yields once when the connection or the channel goes away.
	Closed() <-chan *amqp.Error
	Close()
}

type amqpSession struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func dialSession(url string) (session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &amqpSession{conn: conn, ch: ch}, nil
}

func (s *amqpSession) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	return s.ch.PublishWithContext(ctx,
		exchange, // exchange
		key,      // routing key
		false,    // mandatory
		false,    // immediate
		msg)
}

func (s *amqpSession) Closed() <-chan *amqp.Error {
	connClosed := s.conn.NotifyClose(make(chan *amqp.Error, 1))
	chClosed := s.ch.NotifyClose(make(chan *amqp.Error, 1))
	out := make(chan *amqp.Error, 1)
	go func() {
		select {
		case err := <-connClosed:
			out <- err
		case err := <-chClosed:
			out <- err
		}
	}()
	return out
}

func (s *amqpSession) Close() {
	s.ch.Close()
	s.conn.Close()
}

// AMQPPublisher publishes events to Exchange. A dropped connection is redialed
// in the background with a doubling delay; Publish fails fast until it is back.
type AMQPPublisher struct {
	url      string
	exchange string
	dial     func(url string) (session, error)
	delay    time.Duration

	mu     sync.Mutex
	sess   session
	closed bool
	done   chan struct{}
}

func DialAMQP(url string) (*AMQPPublisher, error) {
	return newPublisher(url, dialSession, redialDelay)
}

func newPublisher(url string, dial func(string) (session, error), delay time.Duration) (*AMQPPublisher, error) {
	s, err := dial(url)
	if err != nil {
		return nil, err
	}
	p := &AMQPPublisher{
		url:      url,
		exchange: Exchange,
		dial:     dial,
		delay:    delay,
		sess:     s,
		done:     make(chan struct{}),
	}
	go p.watch(s)
	log.Printf("[events] amqp connected exchange=%s", Exchange)
	return p, nil
}

func (p *AMQPPublisher) watch(s session) {
	for s != nil {
		closed := s.Closed()
		select {
		case <-p.done:
			return
		case err := <-closed:
			select {
			case <-p.done:
				return
			default:
			}
			p.mu.Lock()
			if p.sess == s {
				p.sess = nil
			}
			p.mu.Unlock()
			log.Printf("[events] amqp connection lost: %v", err)
			s = p.redial()
		}
	}
}

// redial retries until a session is up or the publisher is closed, in which case it returns nil.
func (p *AMQPPublisher) redial() session {
	delay := p.delay
	for attempt := 1; ; attempt++ {
		select {
		case <-p.done:
			return nil
		case <-time.After(delay):
		}
		s, err := p.dial(p.url)
		if err != nil {
			log.Printf("[events] amqp redial attempt=%d: %v", attempt, err)
			delay = min(delay*2, maxRedialDelay)
			continue
		}
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			s.Close()
			return nil
		}
		p.sess = s
		p.mu.Unlock()
		log.Printf("[events] amqp reconnected attempts=%d", attempt)
		return s
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil {
		return ErrNotConnected
	}
	return p.sess.Publish(ctx, p.exchange, e.Type, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		Timestamp:    e.At,
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.done)
	if p.sess != nil {
		p.sess.Close()
		p.sess = nil
	}
}
