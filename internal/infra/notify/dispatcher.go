package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"
)

// Event is what sinks receive for every booking change worth announcing.
type Event struct {
	Kind       booking.EventKind
	Booking    booking.Snapshot
	OccurredAt time.Time
}

type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev Event) error
}

// Dispatcher fans booking events out to its sinks on a single background worker.
// Notify never blocks: when the buffer is full the event is dropped.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	clock   clock.Clock
	logger  *slog.Logger

	mu      sync.RWMutex
	queue   chan Event
	started bool
	closed  bool
	done    chan struct{}
}

func NewDispatcher(queueSize int, timeout time.Duration, clk clock.Clock, logger *slog.Logger, sinks ...Sink) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	active := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return &Dispatcher{
		sinks:   active,
		timeout: timeout,
		clock:   clk,
		logger:  logger,
		queue:   make(chan Event, queueSize),
		done:    make(chan struct{}),
	}
}

func (d *Dispatcher) Sinks() []string {
	names := make([]string, len(d.sinks))
	for i, s := range d.sinks {
		names[i] = s.Name()
	}
	return names
}

func (d *Dispatcher) Start(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return nil
	}
	d.started = true
	go d.run()
	d.logger.Info("notification dispatcher started", slog.Any("sinks", d.Sinks()))
	return nil
}

// Stop refuses new events and waits for queued ones until ctx expires.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		d.logger.Warn("notification dispatcher stopped with pending events", slog.Int("pending", len(d.queue)))
		return ctx.Err()
	}
}

func (d *Dispatcher) Notify(ctx context.Context, kind booking.EventKind, snap booking.Snapshot) {
	if len(d.sinks) == 0 {
		return
	}
	ev := Event{Kind: kind, Booking: snap, OccurredAt: d.clock.Now().UTC()}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.WarnContext(ctx, "notification dropped, dispatcher stopped",
			slog.String("kind", string(kind)),
			slog.String("booking_id", snap.ID.String()))
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.WarnContext(ctx, "notification dropped, queue full",
			slog.String("kind", string(kind)),
			slog.String("booking_id", snap.ID.String()))
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for ev := range d.queue {
		for _, s := range d.sinks {
			d.deliver(s, ev)
		}
	}
}

func (d *Dispatcher) deliver(s Sink, ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notification sink panicked",
				slog.String("sink", s.Name()),
				slog.Any("panic", r))
		}
	}()

	if err := s.Deliver(ctx, ev); err != nil {
		d.logger.Warn("notification delivery failed",
			slog.String("sink", s.Name()),
			slog.String("kind", string(ev.Kind)),
			slog.String("booking_id", ev.Booking.ID.String()),
			slog.String("error", err.Error()))
		return
	}
	d.logger.Debug("notification delivered",
		slog.String("sink", s.Name()),
		slog.String("kind", string(ev.Kind)),
		slog.String("booking_id", ev.Booking.ID.String()))
}
