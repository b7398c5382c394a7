package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/queries"

	amqp "github.com/rabbitmq/amqp091-go"
)

type brokerMessage struct {
	Event      string               `json:"event"`
	OccurredAt time.Time            `json:"occurredAt"`
	Booking    *queries.BookingView `json:"booking"`
}

// BrokerSink publishes booking events as persistent JSON messages to a durable queue.
type BrokerSink struct {
	url         string
	queue       string
	dialTimeout time.Duration

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewBrokerSink dials lazily; dialTimeout bounds the TCP dial and the AMQP handshake.
func NewBrokerSink(cfg config.BrokerConfig, dialTimeout time.Duration) *BrokerSink {
	return &BrokerSink{url: cfg.URL, queue: cfg.Queue, dialTimeout: dialTimeout}
}

func (s *BrokerSink) Name() string { return "broker" }

func (s *BrokerSink) Deliver(ctx context.Context, ev Event) error {
	pub, err := NewPublishing(ev)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.channel(ctx)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", s.queue, false, false, pub); err != nil {
		s.reset()
		return errs.Wrap(err, "publish booking event")
	}
	return nil
}

// channel returns the open channel, dialing and declaring the queue when needed.
func (s *BrokerSink) channel(ctx context.Context) (*amqp.Channel, error) {
	if s.ch != nil && !s.ch.IsClosed() {
		return s.ch, nil
	}
	s.reset()

	timeout := s.dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, errs.Wrap(context.DeadlineExceeded, "dial broker")
	}

	conn, err := amqp.DialConfig(s.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return nil, errs.Wrap(err, "dial broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open broker channel")
	}
	if _, err := ch.QueueDeclare(s.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "declare queue")
	}
	s.conn, s.ch = conn, ch
	return ch, nil
}

func (s *BrokerSink) reset() {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.ch, s.conn = nil, nil
}

func (s *BrokerSink) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func NewPublishing(ev Event) (amqp.Publishing, error) {
	view, err := queries.BookingViewFromSnapshot(ev.Booking)
	if err != nil {
		return amqp.Publishing{}, err
	}
	body, err := json.Marshal(brokerMessage{
		Event:      string(ev.Kind),
		OccurredAt: ev.OccurredAt,
		Booking:    view,
	})
	if err != nil {
		return amqp.Publishing{}, errs.Wrap(err, "marshal booking event")
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         string(ev.Kind),
		MessageId:    ev.Booking.ID.String() + ":" + string(ev.Kind),
		Body:         body,
	}, nil
}
