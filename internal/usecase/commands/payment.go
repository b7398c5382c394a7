package commands

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment.go -package=commandsmock

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/queries"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// CheckoutSessionPlaceholder is replaced by the card provider with the real session id on redirect.
const CheckoutSessionPlaceholder = "{CHECKOUT_SESSION_ID}"

type StartPaymentInput struct {
	BookingID  uuid.UUID
	Provider   booking.PaymentMethod
	Currency   string
	Locale     string
	SuccessURL string
	CancelURL  string
}

type StartPaymentResult struct {
	SessionID   string
	RedirectURL string
}

type VerifyResult struct {
	Paid          bool
	Amount        *booking.Money
	TransactionID string
	Booking       *queries.BookingView
}

type WebhookOutcome string

const (
	WebhookSettled  WebhookOutcome = "settled"
	WebhookIgnored  WebhookOutcome = "ignored"
	WebhookRejected WebhookOutcome = "rejected"
)

type WebhookResult struct {
	EventID   string
	Type      string
	Outcome   WebhookOutcome
	BookingID *uuid.UUID
}

type UpdatePaymentInput struct {
	PaymentMethod booking.PaymentMethod
	PaymentID     string
	PaymentStatus booking.PaymentStatus
	Amount        *booking.Money
}

// Actor is the caller of an operation. Operator is set for authenticated staff.
type Actor struct {
	ID       uuid.UUID
	Operator bool
}

type PaymentCommands interface {
	StartPaymentSession(ctx context.Context, in StartPaymentInput) (*StartPaymentResult, error)
	VerifyByReturn(ctx context.Context, sessionID string, bookingID uuid.UUID) (*VerifyResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
	VerifyAlternate(ctx context.Context, orderID string, bookingID uuid.UUID) (*queries.BookingView, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, in UpdatePaymentInput, actor Actor) (*queries.BookingView, error)
}

type paymentUseCaseImpl struct {
	uow       shared.UnitOfWork
	reads     shared.BookingReadStore
	providers Providers
	webhook   WebhookVerifier
	pricing   booking.PriceCalculator
	notifier  Notifier
	baseURL   string
	clock     clock.Clock
	logger    *slog.Logger
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	reads shared.BookingReadStore,
	providers Providers,
	webhook WebhookVerifier,
	pricing booking.PriceCalculator,
	notifier Notifier,
	publicBaseURL string,
	clk clock.Clock,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:       uow,
		reads:     reads,
		providers: providers,
		webhook:   webhook,
		pricing:   pricing,
		notifier:  notifier,
		baseURL:   publicBaseURL,
		clock:     clk,
		logger:    logger,
	}
}

func (uc *paymentUseCaseImpl) StartPaymentSession(ctx context.Context, in StartPaymentInput) (*StartPaymentResult, error) {
	method := in.Provider
	if method == "" {
		method = booking.MethodStripe
	}
	if !method.IsOnline() {
		return nil, booking.NewValidationError("provider", "must be stripe or paypal")
	}
	if in.Currency != "" && !uc.pricing.Currency().Equal(in.Currency) {
		return nil, booking.NewValidationError("currency", "must be "+uc.pricing.Currency().String())
	}

	b, err := uc.reads.FindByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(b.Name()) == "" || strings.TrimSpace(b.Email()) == "" {
		return nil, booking.NewValidationError("bookingId", "booking is missing customer details")
	}
	if b.Paid() {
		return nil, errs.Mark(errs.Newf("booking %s is already paid", b.ID()), errs.ErrAlreadyPaid)
	}

	locale := booking.Locale(strings.ToLower(strings.TrimSpace(in.Locale)))
	if !locale.IsValid() {
		locale = b.Locale()
	}
	successURL, cancelURL, err := uc.returnURLs(b.ID(), locale, in.SuccessURL, in.CancelURL)
	if err != nil {
		return nil, err
	}

	provider, err := uc.providers.Get(method)
	if err != nil {
		return nil, err
	}

	amount := uc.pricing.ComputeTotal(b.Tickets())
	sess, err := provider.CreateSession(ctx, CheckoutSessionParams{
		BookingID:     b.ID(),
		Amount:        amount,
		Currency:      uc.pricing.Currency(),
		Locale:        locale,
		Description:   "Booking ID: " + b.ID().String(),
		CustomerEmail: b.Email(),
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
	})
	if err != nil {
		uc.logger.ErrorContext(ctx, "checkout session creation failed",
			slog.String("booking_id", b.ID().String()),
			slog.String("provider", method.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	uc.recordChosenMethod(ctx, b.ID(), method)

	uc.logger.InfoContext(ctx, "checkout session created",
		slog.String("booking_id", b.ID().String()),
		slog.String("provider", method.String()),
		slog.String("session_id", sess.ID),
		slog.String("amount", amount.String()))
	return &StartPaymentResult{SessionID: sess.ID, RedirectURL: sess.RedirectURL}, nil
}

// recordChosenMethod stores the customer's intended provider. Failures only cost the hint.
func (uc *paymentUseCaseImpl) recordChosenMethod(ctx context.Context, id uuid.UUID, method booking.PaymentMethod) {
	err := uc.uow.Within(ctx, func(_ context.Context, tx shared.BookingTx) error {
		b, err := tx.FindByID(id)
		if err != nil {
			return err
		}
		changed, err := b.ChoosePaymentMethod(method, uc.clock.Now())
		if err != nil || !changed {
			return err
		}
		return tx.Replace(b)
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "failed to record payment method",
			slog.String("booking_id", id.String()),
			slog.String("error", err.Error()))
	}
}

func (uc *paymentUseCaseImpl) VerifyByReturn(ctx context.Context, sessionID string, bookingID uuid.UUID) (*VerifyResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, booking.NewValidationError("session_id", "is required")
	}
	if _, err := uc.reads.FindByID(ctx, bookingID); err != nil {
		return nil, err
	}

	provider, err := uc.providers.Get(booking.MethodStripe)
	if err != nil {
		return nil, err
	}
	sess, err := provider.FetchSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	amount := sess.Amount
	res := &VerifyResult{Paid: sess.Paid, Amount: &amount, TransactionID: sess.TransactionID}
	if !sess.Paid {
		return res, nil
	}

	b, err := uc.settle(ctx, bookingID, settlement{
		method:        booking.MethodStripe,
		transactionID: sess.TransactionID,
		bookingRef:    sess.BookingRef,
		requireRef:    true,
		amount:        sess.Amount,
		currency:      sess.Currency,
	})
	if err != nil {
		return nil, err
	}
	if res.Booking, err = queries.NewBookingView(b); err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *paymentUseCaseImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if uc.webhook == nil {
		return nil, errs.Mark(errs.New("webhook secret is not configured"), errs.ErrConfiguration)
	}
	ev, err := uc.webhook.VerifyWebhook(payload, signature)
	if err != nil {
		uc.logger.WarnContext(ctx, "webhook rejected", slog.String("error", err.Error()))
		return nil, err
	}

	res := &WebhookResult{EventID: ev.ID, Type: ev.Type, Outcome: WebhookIgnored}
	if !ev.Settles || ev.Session == nil {
		uc.logger.DebugContext(ctx, "webhook event ignored",
			slog.String("event_id", ev.ID),
			slog.String("type", ev.Type))
		return res, nil
	}

	id, err := uuid.Parse(ev.Session.BookingRef)
	if err != nil {
		uc.logger.ErrorContext(ctx, "webhook session carries no booking reference, manual review required",
			slog.String("event_id", ev.ID),
			slog.String("session_id", ev.Session.ID))
		res.Outcome = WebhookRejected
		return res, nil
	}
	res.BookingID = &id

	_, err = uc.settle(ctx, id, settlement{
		method:        booking.MethodStripe,
		transactionID: ev.Session.TransactionID,
		bookingRef:    ev.Session.BookingRef,
		requireRef:    true,
		amount:        ev.Session.Amount,
		currency:      ev.Session.Currency,
	})
	switch {
	case err == nil:
		res.Outcome = WebhookSettled
	case errs.Is(err, errs.ErrPersistence):
		// the provider retries on 5xx
		return nil, err
	default:
		uc.logger.ErrorContext(ctx, "webhook settlement rejected, manual review required",
			slog.String("event_id", ev.ID),
			slog.String("booking_id", id.String()),
			slog.String("session_id", ev.Session.ID),
			slog.String("error", err.Error()))
		res.Outcome = WebhookRejected
	}
	return res, nil
}

func (uc *paymentUseCaseImpl) VerifyAlternate(ctx context.Context, orderID string, bookingID uuid.UUID) (*queries.BookingView, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, booking.NewValidationError("orderId", "is required")
	}
	if _, err := uc.reads.FindByID(ctx, bookingID); err != nil {
		return nil, err
	}

	provider, err := uc.providers.Get(booking.MethodPayPal)
	if err != nil {
		return nil, err
	}
	order, err := provider.FetchSession(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Paid {
		return nil, errs.Mark(errs.Newf("order %s has status %s", order.ID, order.Status), errs.ErrPaymentNotCompleted)
	}

	b, err := uc.settle(ctx, bookingID, settlement{
		method:        booking.MethodPayPal,
		transactionID: order.TransactionID,
		bookingRef:    order.BookingRef,
		amount:        order.Amount,
		currency:      order.Currency,
	})
	if err != nil {
		return nil, err
	}
	return queries.NewBookingView(b)
}

func (uc *paymentUseCaseImpl) UpdatePayment(ctx context.Context, id uuid.UUID, in UpdatePaymentInput, actor Actor) (*queries.BookingView, error) {
	current, err := uc.reads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Paid() {
		return queries.NewBookingView(current)
	}
	if !in.PaymentMethod.IsValid() {
		return nil, booking.NewValidationError("paymentMethod", "must be one of none, cash, card, transfer, stripe, paypal")
	}

	switch in.PaymentStatus {
	case "", booking.StatusPending:
		return uc.choosePaymentMethod(ctx, id, in.PaymentMethod)

	case booking.StatusCompleted:
		switch in.PaymentMethod {
		case booking.MethodPayPal:
			return uc.VerifyAlternate(ctx, in.PaymentID, id)
		case booking.MethodStripe:
			res, err := uc.VerifyByReturn(ctx, in.PaymentID, id)
			if err != nil {
				return nil, err
			}
			if !res.Paid {
				return nil, errs.Mark(errs.Newf("session %s is not paid", in.PaymentID), errs.ErrPaymentNotCompleted)
			}
			return res.Booking, nil
		case booking.MethodCash, booking.MethodCard, booking.MethodTransfer:
			return uc.settleOffline(ctx, id, in, actor)
		default:
			return nil, booking.NewValidationError("paymentMethod", "a completed payment needs a payment method")
		}

	default:
		return nil, booking.NewValidationError("paymentStatus", "must be pending or completed")
	}
}

func (uc *paymentUseCaseImpl) choosePaymentMethod(ctx context.Context, id uuid.UUID, method booking.PaymentMethod) (*queries.BookingView, error) {
	var out *booking.Booking
	err := uc.uow.Within(ctx, func(_ context.Context, tx shared.BookingTx) error {
		b, err := tx.FindByID(id)
		if err != nil {
			return err
		}
		out = b
		changed, err := b.ChoosePaymentMethod(method, uc.clock.Now())
		if err != nil {
			return booking.NewValidationError("paymentMethod", err.Error())
		}
		if !changed {
			return nil
		}
		return tx.Replace(b)
	})
	if err != nil {
		return nil, err
	}
	return queries.NewBookingView(out)
}

// settleOffline records a payment taken outside the online providers. Only staff may do this.
func (uc *paymentUseCaseImpl) settleOffline(ctx context.Context, id uuid.UUID, in UpdatePaymentInput, actor Actor) (*queries.BookingView, error) {
	if !actor.Operator {
		return nil, errs.Mark(errs.New("offline settlement requires an operator"), errs.ErrForbidden)
	}
	if in.Amount == nil {
		return nil, booking.NewValidationError("amount", "is required for a completed offline payment")
	}
	txID := strings.TrimSpace(in.PaymentID)
	if txID == "" {
		txID = in.PaymentMethod.String() + "-" + uuid.NewString()
	}

	b, err := uc.settle(ctx, id, settlement{
		method:        in.PaymentMethod,
		transactionID: txID,
		amount:        *in.Amount,
		currency:      uc.pricing.Currency().String(),
	})
	if err != nil {
		return nil, err
	}
	uc.logger.InfoContext(ctx, "offline payment recorded",
		slog.String("booking_id", id.String()),
		slog.String("operator_id", actor.ID.String()),
		slog.String("method", in.PaymentMethod.String()))
	return queries.NewBookingView(b)
}

type settlement struct {
	method        booking.PaymentMethod
	transactionID string
	bookingRef    string
	// sessions created by this service always carry the booking reference
	requireRef bool
	amount     booking.Money
	currency   string
}

// settle marks the booking paid once the captured payment checks out.
// A booking that is already paid is returned unchanged.
func (uc *paymentUseCaseImpl) settle(ctx context.Context, id uuid.UUID, s settlement) (*booking.Booking, error) {
	var (
		out     *booking.Booking
		changed bool
	)
	err := uc.uow.Within(ctx, func(_ context.Context, tx shared.BookingTx) error {
		b, err := tx.FindByID(id)
		if err != nil {
			return err
		}
		out = b

		if s.requireRef && s.bookingRef == "" {
			return errs.Mark(errs.Newf("payment %s carries no booking reference", s.transactionID), errs.ErrBookingMismatch)
		}
		if s.bookingRef != "" && s.bookingRef != id.String() {
			return errs.Mark(errs.Newf("payment %s references booking %s", s.transactionID, s.bookingRef), errs.ErrBookingMismatch)
		}
		if b.SettledBy(s.transactionID) {
			return nil
		}

		expected := uc.pricing.ComputeTotal(b.Tickets())
		if !s.amount.Equal(expected) || !uc.pricing.Currency().Equal(s.currency) {
			return errs.Mark(
				errs.Newf("expected %s %s, captured %s %s", expected, uc.pricing.Currency().Upper(), s.amount, strings.ToUpper(s.currency)),
				errs.ErrAmountMismatch,
			)
		}

		if other, ok := tx.FindByPaymentID(s.transactionID); ok && other.ID() != id {
			return errs.Mark(errs.Newf("payment %s already settles booking %s", s.transactionID, other.ID()), errs.ErrPaymentAlreadyClaimed)
		}

		changed, err = b.MarkPaid(booking.Payment{
			Method:        s.method,
			TransactionID: s.transactionID,
			Amount:        s.amount,
			Currency:      uc.pricing.Currency(),
		}, uc.clock.Now())
		if err != nil {
			return booking.NewValidationError("paymentId", err.Error())
		}
		if !changed {
			return nil
		}
		return tx.Replace(b)
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "payment settlement refused",
			slog.String("booking_id", id.String()),
			slog.String("method", s.method.String()),
			slog.String("transaction_id", s.transactionID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if changed {
		uc.logger.InfoContext(ctx, "booking paid",
			slog.String("booking_id", id.String()),
			slog.String("method", s.method.String()),
			slog.String("transaction_id", s.transactionID))
		uc.notifier.Notify(ctx, booking.EventPaid, out.Snapshot())
	}
	return out, nil
}

// returnURLs resolves the provider redirect targets against the public site.
// Relative targets are joined to the base, absolute ones must stay on its host.
func (uc *paymentUseCaseImpl) returnURLs(id uuid.UUID, locale booking.Locale, success, cancel string) (string, string, error) {
	base, err := url.Parse(uc.baseURL)
	if err != nil || base.Host == "" {
		return "", "", errs.Mark(errs.Newf("invalid public base url %q", uc.baseURL), errs.ErrConfiguration)
	}

	if success == "" {
		success = "/" + locale.String() + "/confirmation?id=" + id.String() + "&payment=success&session_id=" + CheckoutSessionPlaceholder
	}
	if cancel == "" {
		cancel = "/" + locale.String() + "/payment-confirm?id=" + id.String() + "&payment=cancelled"
	}

	successURL, err := resolveReturnURL(base, success)
	if err != nil {
		return "", "", booking.NewValidationError("successUrl", err.Error())
	}
	cancelURL, err := resolveReturnURL(base, cancel)
	if err != nil {
		return "", "", booking.NewValidationError("cancelUrl", err.Error())
	}
	return successURL, cancelURL, nil
}

func resolveReturnURL(base *url.URL, target string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return "", errs.New("is not a valid url")
	}
	if u.IsAbs() || u.Host != "" {
		if !strings.EqualFold(u.Hostname(), base.Hostname()) {
			return "", errs.New("must point to " + base.Hostname())
		}
	} else {
		u = base.ResolveReference(u)
	}
	u.Scheme = "https"
	return u.String(), nil
}
