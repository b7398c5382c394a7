package commands

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports.go -package=commandsmock

import (
	"context"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// CheckoutSessionParams describes the hosted checkout to open at a provider.
// Amount and Currency always come from the server-side price calculation.
type CheckoutSessionParams struct {
	BookingID     uuid.UUID
	Amount        booking.Money
	Currency      booking.Currency
	Locale        booking.Locale
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is a provider-side payment attempt.
type CheckoutSession struct {
	ID          string
	RedirectURL string
	// BookingRef is the correlation id the provider echoes back. Empty when unknown.
	BookingRef    string
	Paid          bool
	Status        string
	Amount        booking.Money
	Currency      string
	TransactionID string
}

type PaymentProvider interface {
	Method() booking.PaymentMethod
	CreateSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	FetchSession(ctx context.Context, id string) (*CheckoutSession, error)
}

type WebhookEvent struct {
	ID      string
	Type    string
	Settles bool
	Session *CheckoutSession
}

type WebhookVerifier interface {
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// Providers indexes the configured payment providers by method.
type Providers map[booking.PaymentMethod]PaymentProvider

func NewProviders(list ...PaymentProvider) Providers {
	p := make(Providers, len(list))
	for _, pp := range list {
		if pp != nil {
			p[pp.Method()] = pp
		}
	}
	return p
}

func (p Providers) Get(m booking.PaymentMethod) (PaymentProvider, error) {
	pp, ok := p[m]
	if !ok || pp == nil {
		return nil, errs.Mark(errs.Newf("payment provider %s is not configured", m), errs.ErrConfiguration)
	}
	return pp, nil
}

// Notifier delivers booking events. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, kind booking.EventKind, snap booking.Snapshot)
}

type TicketEncoder interface {
	Encode(ctx context.Context, payload booking.TicketPayload) (string, error)
	Remove(ctx context.Context, id uuid.UUID) error
}
