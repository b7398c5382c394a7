//go:build unit

package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/notify"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/tests/common/builder"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSink struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
	block  chan struct{}
	panics bool
}

func (r *recordingSink) Name() string { return "recording" }

func (r *recordingSink) Deliver(_ context.Context, ev notify.Event) error {
	if r.block != nil {
		<-r.block
	}
	if r.panics {
		panic("boom")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestDispatcher(t *testing.T) {
	snap := builder.NewBookingBuilder().MustBuildDomain().Snapshot()

	t.Run("delivers to every sink and drains on stop", func(t *testing.T) {
		a, b := &recordingSink{}, &recordingSink{err: errors.New("smtp down")}
		d := notify.NewDispatcher(8, time.Second, clock.NewMockClock(t0), discard(), a, nil, b)
		require.NoError(t, d.Start(context.Background()))
		assert.Len(t, d.Sinks(), 2)

		d.Notify(context.Background(), booking.EventCreated, snap)
		d.Notify(context.Background(), booking.EventPaid, snap)
		require.NoError(t, d.Stop(context.Background()))

		assert.Equal(t, 2, a.count())
		assert.Equal(t, 2, b.count())
		assert.Equal(t, booking.EventCreated, a.events[0].Kind)
		assert.Equal(t, t0, a.events[0].OccurredAt)
		assert.Equal(t, snap.ID, a.events[1].Booking.ID)
	})

	t.Run("drops events when the queue is full", func(t *testing.T) {
		gate := make(chan struct{})
		sink := &recordingSink{block: gate}
		d := notify.NewDispatcher(1, time.Second, clock.NewMockClock(t0), discard(), sink)
		require.NoError(t, d.Start(context.Background()))

		for i := 0; i < 10; i++ {
			d.Notify(context.Background(), booking.EventCreated, snap)
		}
		close(gate)
		require.NoError(t, d.Stop(context.Background()))

		// at most one in flight plus one buffered
		assert.LessOrEqual(t, sink.count(), 2)
		assert.GreaterOrEqual(t, sink.count(), 1)
	})

	t.Run("notify after stop is a no-op", func(t *testing.T) {
		sink := &recordingSink{}
		d := notify.NewDispatcher(4, time.Second, clock.NewMockClock(t0), discard(), sink)
		require.NoError(t, d.Start(context.Background()))
		require.NoError(t, d.Stop(context.Background()))
		require.NoError(t, d.Stop(context.Background()))

		d.Notify(context.Background(), booking.EventCreated, snap)
		assert.Equal(t, 0, sink.count())
	})

	t.Run("a panicking sink does not stop the worker", func(t *testing.T) {
		bad, good := &recordingSink{panics: true}, &recordingSink{}
		d := notify.NewDispatcher(4, time.Second, clock.NewMockClock(t0), discard(), bad, good)
		require.NoError(t, d.Start(context.Background()))

		d.Notify(context.Background(), booking.EventCreated, snap)
		d.Notify(context.Background(), booking.EventPaid, snap)
		require.NoError(t, d.Stop(context.Background()))

		assert.Equal(t, 2, good.count())
	})

	t.Run("no sinks means nothing is queued", func(t *testing.T) {
		d := notify.NewDispatcher(1, time.Second, clock.NewMockClock(t0), discard())
		d.Notify(context.Background(), booking.EventCreated, snap)
		require.NoError(t, d.Stop(context.Background()))
	})
}

type fakeMailer struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeMailer) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	f.sent = append(f.sent, msgs...)
	return f.err
}

type imageDir string

func (d imageDir) ImagePath(id uuid.UUID) string {
	return filepath.Join(string(d), id.String()+".png")
}

type fakeRenderer struct{ err error }

func (f fakeRenderer) RenderTicket(b *booking.Booking) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("%PDF-1.3 fake"), "ticket-" + b.ID().String() + ".pdf", nil
}

func TestMailSink(t *testing.T) {
	b := builder.NewBookingBuilder().WithLocale("fr").MustBuildDomain()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(imageDir(dir).ImagePath(b.ID()), []byte{0x89, 'P', 'N', 'G'}, 0o644))

	t.Run("sends a localized confirmation with both attachments", func(t *testing.T) {
		mailer := &fakeMailer{}
		sink := notify.NewMailSink(mailer, "tickets@travel.test", imageDir(dir), fakeRenderer{}, discard())

		err := sink.Deliver(context.Background(), notify.Event{Kind: booking.EventCreated, Booking: b.Snapshot(), OccurredAt: t0})
		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)

		var raw bytes.Buffer
		_, err = mailer.sent[0].WriteTo(&raw)
		require.NoError(t, err)
		out := raw.String()
		assert.Contains(t, out, "amina@example.com")
		assert.Contains(t, out, "ticket-"+b.ID().String()+".png")
		assert.Contains(t, out, "ticket-"+b.ID().String()+".pdf")
		assert.Contains(t, mailer.sent[0].GetGenHeader(mail.HeaderSubject)[0], b.ID().String())
	})

	t.Run("pdf failure still sends the mail", func(t *testing.T) {
		mailer := &fakeMailer{}
		sink := notify.NewMailSink(mailer, "tickets@travel.test", imageDir(t.TempDir()), fakeRenderer{err: errors.New("font missing")}, discard())

		err := sink.Deliver(context.Background(), notify.Event{Kind: booking.EventPaid, Booking: b.Snapshot(), OccurredAt: t0})
		require.NoError(t, err)
		assert.Len(t, mailer.sent, 1)
	})

	t.Run("transport failure is reported", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("connection refused")}
		sink := notify.NewMailSink(mailer, "tickets@travel.test", nil, nil, discard())

		err := sink.Deliver(context.Background(), notify.Event{Kind: booking.EventCreated, Booking: b.Snapshot(), OccurredAt: t0})
		assert.Error(t, err)
	})

	t.Run("invalid recipient is reported", func(t *testing.T) {
		snap := b.Snapshot()
		snap.Email = "not an address"
		sink := notify.NewMailSink(&fakeMailer{}, "tickets@travel.test", nil, nil, discard())

		_, err := sink.Compose(notify.Event{Kind: booking.EventCreated, Booking: snap})
		assert.Error(t, err)
	})
}

func TestNewPublishing(t *testing.T) {
	b := builder.NewBookingBuilder().BuildPaid(booking.MethodStripe, "pi_1", booking.NewMoney(15500))

	pub, err := notify.NewPublishing(notify.Event{Kind: booking.EventPaid, Booking: b.Snapshot(), OccurredAt: t0})
	require.NoError(t, err)
	assert.Equal(t, "application/json", pub.ContentType)
	assert.Equal(t, amqp.Persistent, pub.DeliveryMode)
	assert.Equal(t, "booking.paid", pub.Type)

	var body map[string]any
	require.NoError(t, json.Unmarshal(pub.Body, &body))
	assert.Equal(t, "booking.paid", body["event"])
	bk := body["booking"].(map[string]any)
	assert.Equal(t, b.ID().String(), bk["id"])
	assert.Equal(t, "pi_1", bk["paymentId"])
	assert.Equal(t, 155.0, bk["paymentAmount"])
}

func TestBrokerSink_SilentBroker(t *testing.T) {
	// accepts connections and never speaks AMQP
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})

	b := builder.NewBookingBuilder().MustBuildDomain()
	ev := notify.Event{Kind: booking.EventCreated, Booking: b.Snapshot(), OccurredAt: t0}
	url := "amqp://guest:guest@" + ln.Addr().String() + "/"

	t.Run("dial timeout bounds the handshake", func(t *testing.T) {
		sink := notify.NewBrokerSink(config.BrokerConfig{URL: url, Queue: "booking.events"}, 200*time.Millisecond)

		start := time.Now()
		err := sink.Deliver(context.Background(), ev)
		assert.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("delivery deadline wins over a longer dial timeout", func(t *testing.T) {
		sink := notify.NewBrokerSink(config.BrokerConfig{URL: url, Queue: "booking.events"}, time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := sink.Deliver(ctx, ev)
		assert.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
