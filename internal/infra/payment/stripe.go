package payment

import (
	"context"
	"encoding/json"
	"net/http"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	metadataBookingID = "bookingId"
	metadataLocale    = "locale"
)

// StripeGateway opens hosted checkout sessions and verifies signed webhook events.
type StripeGateway struct {
	key           string
	webhookSecret string
	sessions      session.Client
}

// NewStripeGateway uses the default API backend when backend is nil.
func NewStripeGateway(cfg config.StripeConfig, backend stripe.Backend) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{
		key:           cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		sessions:      session.Client{B: backend, Key: cfg.SecretKey},
	}
}

func (g *StripeGateway) Method() booking.PaymentMethod { return booking.MethodStripe }

func (g *StripeGateway) CreateSession(ctx context.Context, p commands.CheckoutSessionParams) (*commands.CheckoutSession, error) {
	if g.key == "" {
		return nil, errs.Mark(errs.New("stripe secret key is not set"), errs.ErrConfiguration)
	}

	id := p.BookingID.String()
	description := p.Description
	if description == "" {
		description = "Booking ID: " + id
	}
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency.String()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Ticket Booking"),
						Description: stripe.String(description),
					},
					UnitAmount: stripe.Int64(p.Amount.Cents()),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:               stripe.String(p.SuccessURL),
		CancelURL:                stripe.String(p.CancelURL),
		ClientReferenceID:        stripe.String(id),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		Locale:                   stripe.String(stripeLocale(p.Locale)),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{metadataBookingID: id},
		},
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	params.AddMetadata(metadataBookingID, id)
	params.AddMetadata(metadataLocale, p.Locale.String())
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, classifyStripeError(err, "create checkout session")
	}
	return toCheckoutSession(s), nil
}

func (g *StripeGateway) FetchSession(ctx context.Context, id string) (*commands.CheckoutSession, error) {
	if g.key == "" {
		return nil, errs.Mark(errs.New("stripe secret key is not set"), errs.ErrConfiguration)
	}
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent")
	params.Context = ctx

	s, err := g.sessions.Get(id, params)
	if err != nil {
		return nil, classifyStripeError(err, "retrieve checkout session")
	}
	return toCheckoutSession(s), nil
}

// VerifyWebhook checks the Stripe-Signature header and decodes checkout session events.
func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (*commands.WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, errs.Mark(errs.New("stripe webhook secret is not set"), errs.ErrConfiguration)
	}
	if signature == "" {
		return nil, errs.Mark(errs.New("missing Stripe-Signature header"), errs.ErrInvalidSignature)
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "verify webhook"), errs.ErrInvalidSignature)
	}

	out := &commands.WebhookEvent{ID: event.ID, Type: string(event.Type)}
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "decode checkout session"), errs.ErrInvalidSignature)
		}
		out.Session = toCheckoutSession(&s)
		out.Settles = s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
	}
	return out, nil
}

func toCheckoutSession(s *stripe.CheckoutSession) *commands.CheckoutSession {
	ref := s.Metadata[metadataBookingID]
	if ref == "" {
		ref = s.ClientReferenceID
	}
	txID := s.ID
	if s.PaymentIntent != nil && s.PaymentIntent.ID != "" {
		txID = s.PaymentIntent.ID
	}
	return &commands.CheckoutSession{
		ID:            s.ID,
		RedirectURL:   s.URL,
		BookingRef:    ref,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid || s.Status == stripe.CheckoutSessionStatusComplete,
		Status:        string(s.Status),
		Amount:        booking.NewMoney(s.AmountTotal),
		Currency:      string(s.Currency),
		TransactionID: txID,
	}
}

// stripeLocale maps site locales onto the checkout locales Stripe supports.
func stripeLocale(l booking.Locale) string {
	switch l {
	case booking.LocaleEnglish, booking.LocaleSpanish, booking.LocaleFrench:
		return l.String()
	default:
		return "auto"
	}
}

func classifyStripeError(err error, op string) error {
	var se *stripe.Error
	if errs.As(err, &se) && se.HTTPStatusCode == http.StatusUnauthorized {
		return errs.Mark(errs.Wrap(err, op), errs.ErrProviderAuth)
	}
	return errs.Mark(errs.Wrap(err, op), errs.ErrProviderFailure)
}
