//go:build unit

package payment_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/payment"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const webhookSecret = "whsec_unit"

var bookingID = uuid.MustParse("6f1c2a4e-3b5d-4c7e-9a1b-2c3d4e5f6a7b")

func params(locale booking.Locale) commands.CheckoutSessionParams {
	return commands.CheckoutSessionParams{
		BookingID:     bookingID,
		Amount:        booking.NewMoney(15500),
		Currency:      booking.Currency("eur"),
		Locale:        locale,
		CustomerEmail: "amina@example.com",
		SuccessURL:    "https://travel.test/en/confirmation?id=" + bookingID.String() + "&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "https://travel.test/en/payment-confirm?id=" + bookingID.String() + "&payment=cancelled",
	}
}

func stripeGateway(t *testing.T, key string, h http.HandlerFunc) *payment.StripeGateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return payment.NewStripeGateway(config.StripeConfig{SecretKey: key, WebhookSecret: webhookSecret}, backend)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestStripeGateway_CreateSession(t *testing.T) {
	t.Run("sends server-side amount and booking metadata", func(t *testing.T) {
		gw := stripeGateway(t, "sk_test_unit", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_unit", r.Header.Get("Authorization"))
			require.NoError(t, r.ParseForm())
			f := r.PostForm
			assert.Equal(t, "payment", f.Get("mode"))
			assert.Equal(t, "15500", f.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "eur", f.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "Ticket Booking", f.Get("line_items[0][price_data][product_data][name]"))
			assert.Equal(t, "Booking ID: "+bookingID.String(), f.Get("line_items[0][price_data][product_data][description]"))
			assert.Equal(t, "1", f.Get("line_items[0][quantity]"))
			assert.Equal(t, bookingID.String(), f.Get("metadata[bookingId]"))
			assert.Equal(t, "ar", f.Get("metadata[locale]"))
			assert.Equal(t, bookingID.String(), f.Get("payment_intent_data[metadata][bookingId]"))
			assert.Equal(t, "auto", f.Get("locale"))
			assert.Equal(t, "required", f.Get("billing_address_collection"))
			writeJSON(w, http.StatusOK, fmt.Sprintf(`{"id":"cs_test_1","object":"checkout.session",
				"url":"https://checkout.stripe.com/c/pay/cs_test_1","status":"open","payment_status":"unpaid",
				"amount_total":15500,"currency":"eur","metadata":{"bookingId":%q}}`, bookingID.String()))
		})

		s, err := gw.CreateSession(t.Context(), params(booking.LocaleArabic))
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", s.ID)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", s.RedirectURL)
		assert.Equal(t, bookingID.String(), s.BookingRef)
		assert.False(t, s.Paid)
	})

	t.Run("rejected key maps to provider auth error", func(t *testing.T) {
		gw := stripeGateway(t, "sk_test_bad", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`)
		})

		_, err := gw.CreateSession(t.Context(), params(booking.LocaleEnglish))
		assert.True(t, errs.Is(err, errs.ErrProviderAuth))
	})

	t.Run("server failure maps to provider error", func(t *testing.T) {
		gw := stripeGateway(t, "sk_test_unit", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"error":{"type":"invalid_request_error","message":"bad currency"}}`)
		})

		_, err := gw.CreateSession(t.Context(), params(booking.LocaleEnglish))
		assert.True(t, errs.Is(err, errs.ErrProviderFailure))
		assert.False(t, errs.Is(err, errs.ErrProviderAuth))
	})

	t.Run("missing key is a configuration error", func(t *testing.T) {
		gw := stripeGateway(t, "", func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		_, err := gw.CreateSession(t.Context(), params(booking.LocaleEnglish))
		assert.True(t, errs.Is(err, errs.ErrConfiguration))
	})
}

func TestStripeGateway_FetchSession(t *testing.T) {
	gw := stripeGateway(t, "sk_test_unit", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)
		assert.Equal(t, "payment_intent", r.URL.Query().Get("expand[0]"))
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"id":"cs_test_1","object":"checkout.session",
			"status":"complete","payment_status":"paid","amount_total":15500,"currency":"eur",
			"payment_intent":{"id":"pi_123","object":"payment_intent"},
			"metadata":{"bookingId":%q}}`, bookingID.String()))
	})

	s, err := gw.FetchSession(t.Context(), "cs_test_1")
	require.NoError(t, err)
	assert.True(t, s.Paid)
	assert.Equal(t, "pi_123", s.TransactionID)
	assert.Equal(t, int64(15500), s.Amount.Cents())
	assert.Equal(t, "eur", s.Currency)
	assert.Equal(t, bookingID.String(), s.BookingRef)
}

func signedEvent(t *testing.T, eventType, paymentStatus string) *webhook.SignedPayload {
	t.Helper()
	payload := fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":{
		"id":"cs_test_1","object":"checkout.session","status":"complete","payment_status":%q,
		"amount_total":15500,"currency":"eur","payment_intent":"pi_123",
		"client_reference_id":%q}}}`, eventType, paymentStatus, bookingID.String())
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    webhookSecret,
		Timestamp: time.Now(),
	})
}

func TestStripeGateway_VerifyWebhook(t *testing.T) {
	gw := payment.NewStripeGateway(config.StripeConfig{SecretKey: "sk_test_unit", WebhookSecret: webhookSecret}, nil)

	t.Run("paid checkout completion settles", func(t *testing.T) {
		signed := signedEvent(t, "checkout.session.completed", "paid")

		ev, err := gw.VerifyWebhook(signed.Payload, signed.Header)
		require.NoError(t, err)
		assert.Equal(t, "evt_1", ev.ID)
		assert.True(t, ev.Settles)
		require.NotNil(t, ev.Session)
		assert.Equal(t, "pi_123", ev.Session.TransactionID)
		assert.Equal(t, bookingID.String(), ev.Session.BookingRef)
	})

	t.Run("async success settles", func(t *testing.T) {
		signed := signedEvent(t, "checkout.session.async_payment_succeeded", "paid")

		ev, err := gw.VerifyWebhook(signed.Payload, signed.Header)
		require.NoError(t, err)
		assert.True(t, ev.Settles)
	})

	t.Run("unpaid completion does not settle", func(t *testing.T) {
		signed := signedEvent(t, "checkout.session.completed", "unpaid")

		ev, err := gw.VerifyWebhook(signed.Payload, signed.Header)
		require.NoError(t, err)
		assert.False(t, ev.Settles)
	})

	t.Run("other events are passed through", func(t *testing.T) {
		signed := signedEvent(t, "charge.refunded", "paid")

		ev, err := gw.VerifyWebhook(signed.Payload, signed.Header)
		require.NoError(t, err)
		assert.False(t, ev.Settles)
		assert.Nil(t, ev.Session)
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		signed := signedEvent(t, "checkout.session.completed", "paid")
		tampered := append([]byte{}, signed.Payload...)
		tampered[len(tampered)-3] = ' '

		_, err := gw.VerifyWebhook(tampered, signed.Header)
		assert.True(t, errs.Is(err, errs.ErrInvalidSignature))
	})

	t.Run("missing signature is rejected", func(t *testing.T) {
		signed := signedEvent(t, "checkout.session.completed", "paid")

		_, err := gw.VerifyWebhook(signed.Payload, "")
		assert.True(t, errs.Is(err, errs.ErrInvalidSignature))
	})

	t.Run("unset secret is a configuration error", func(t *testing.T) {
		bare := payment.NewStripeGateway(config.StripeConfig{SecretKey: "sk_test_unit"}, nil)
		signed := signedEvent(t, "checkout.session.completed", "paid")

		_, err := bare.VerifyWebhook(signed.Payload, signed.Header)
		assert.True(t, errs.Is(err, errs.ErrConfiguration))
	})
}

type paypalServer struct {
	order      map[string]any
	tokenCalls int
	created    map[string]any
	rejectAuth bool
}

func (p *paypalServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		p.tokenCalls++
		user, pass, ok := r.BasicAuth()
		if p.rejectAuth || !ok || user != "client" || pass != "secret" {
			writeJSON(w, http.StatusUnauthorized, `{"error":"invalid_client"}`)
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		writeJSON(w, http.StatusOK, `{"access_token":"A21AA","token_type":"Bearer","expires_in":32400}`)
	})
	mux.HandleFunc("POST /v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer A21AA", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p.created))
		writeJSON(w, http.StatusCreated, `{"id":"ORDER1","status":"CREATED","links":[
			{"href":"https://api.paypal.test/v2/checkout/orders/ORDER1","rel":"self"},
			{"href":"https://www.paypal.test/checkoutnow?token=ORDER1","rel":"approve"}]}`)
	})
	mux.HandleFunc("GET /v2/checkout/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "ORDER1" || p.order == nil {
			writeJSON(w, http.StatusNotFound, `{"name":"RESOURCE_NOT_FOUND"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(p.order))
	})
	return mux
}

func paypalGateway(t *testing.T, p *paypalServer) *payment.PayPalGateway {
	t.Helper()
	srv := httptest.NewServer(p.handler(t))
	t.Cleanup(srv.Close)
	return payment.NewPayPalGateway(config.PayPalConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		BaseURL:      srv.URL + "/",
		Timeout:      5 * time.Second,
	}, srv.Client())
}

func TestPayPalGateway(t *testing.T) {
	t.Run("creates a capture order with booking reference", func(t *testing.T) {
		srv := &paypalServer{}
		gw := paypalGateway(t, srv)

		s, err := gw.CreateSession(t.Context(), params(booking.LocaleFrench))
		require.NoError(t, err)
		assert.Equal(t, "ORDER1", s.ID)
		assert.Equal(t, "https://www.paypal.test/checkoutnow?token=ORDER1", s.RedirectURL)
		assert.Equal(t, 1, srv.tokenCalls)

		assert.Equal(t, "CAPTURE", srv.created["intent"])
		unit := srv.created["purchase_units"].([]any)[0].(map[string]any)
		assert.Equal(t, bookingID.String(), unit["reference_id"])
		assert.Equal(t, bookingID.String(), unit["custom_id"])
		amount := unit["amount"].(map[string]any)
		assert.Equal(t, "EUR", amount["currency_code"])
		assert.Equal(t, "155.00", amount["value"])
	})

	t.Run("completed order is paid", func(t *testing.T) {
		srv := &paypalServer{order: map[string]any{
			"id":     "ORDER1",
			"status": "COMPLETED",
			"purchase_units": []any{map[string]any{
				"reference_id": bookingID.String(),
				"amount":       map[string]any{"currency_code": "EUR", "value": "155.00"},
			}},
		}}
		gw := paypalGateway(t, srv)

		s, err := gw.FetchSession(t.Context(), "ORDER1")
		require.NoError(t, err)
		assert.True(t, s.Paid)
		assert.Equal(t, "ORDER1", s.TransactionID)
		assert.Equal(t, bookingID.String(), s.BookingRef)
		assert.Equal(t, "eur", s.Currency)
		assert.True(t, s.Amount.Equal(booking.NewMoney(15500)))
	})

	t.Run("approved but uncaptured order is not paid", func(t *testing.T) {
		srv := &paypalServer{order: map[string]any{
			"id":     "ORDER1",
			"status": "APPROVED",
			"purchase_units": []any{map[string]any{
				"custom_id": bookingID.String(),
				"amount":    map[string]any{"currency_code": "EUR", "value": "155.00"},
			}},
		}}
		gw := paypalGateway(t, srv)

		s, err := gw.FetchSession(t.Context(), "ORDER1")
		require.NoError(t, err)
		assert.False(t, s.Paid)
		assert.Equal(t, bookingID.String(), s.BookingRef)
	})

	t.Run("unknown order is a provider error", func(t *testing.T) {
		gw := paypalGateway(t, &paypalServer{})

		_, err := gw.FetchSession(t.Context(), "ORDER1")
		assert.True(t, errs.Is(err, errs.ErrProviderFailure))
	})

	t.Run("rejected credentials are a provider auth error", func(t *testing.T) {
		gw := paypalGateway(t, &paypalServer{rejectAuth: true})

		_, err := gw.FetchSession(t.Context(), "ORDER1")
		assert.True(t, errs.Is(err, errs.ErrProviderAuth))
	})

	t.Run("missing credentials are a configuration error", func(t *testing.T) {
		gw := payment.NewPayPalGateway(config.PayPalConfig{BaseURL: "http://127.0.0.1:1"}, nil)

		_, err := gw.FetchSession(t.Context(), "ORDER1")
		assert.True(t, errs.Is(err, errs.ErrConfiguration))
	})

	t.Run("empty order id is a validation error", func(t *testing.T) {
		gw := paypalGateway(t, &paypalServer{})

		_, err := gw.FetchSession(t.Context(), "")
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}
