//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// StripeStub serves the two checkout session endpoints the gateway uses.
type StripeStub struct {
	srv *httptest.Server

	mu       sync.Mutex
	seq      int
	sessions map[string]map[string]any
}

func NewStripeStub(t *testing.T) *StripeStub {
	t.Helper()
	s := &StripeStub{sessions: map[string]map[string]any{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/checkout/sessions", s.create)
	mux.HandleFunc("GET /v1/checkout/sessions/{id}", s.get)
	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *StripeStub) URL() string { return s.srv.URL }

func (s *StripeStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = map[string]map[string]any{}
}

// Pay marks a created session as paid by the given payment intent.
// A non-zero amount overrides what the session was created with.
func (s *StripeStub) Pay(sessionID, paymentIntent string, amountCents int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		panic("unknown stripe session " + sessionID)
	}
	sess["payment_status"] = "paid"
	sess["status"] = "complete"
	sess["payment_intent"] = map[string]any{"id": paymentIntent, "object": "payment_intent"}
	if amountCents > 0 {
		sess["amount_total"] = amountCents
	}
}

// Session returns a copy of a stored session, the shape a webhook event carries.
func (s *StripeStub) Session(sessionID string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]any{}
	for k, v := range s.sessions[sessionID] {
		out[k] = v
	}
	return out
}

func (s *StripeStub) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	amount, _ := strconv.ParseInt(r.PostForm.Get("line_items[0][price_data][unit_amount]"), 10, 64)

	s.mu.Lock()
	s.seq++
	id := fmt.Sprintf("cs_test_%d", s.seq)
	sess := map[string]any{
		"id":                  id,
		"object":              "checkout.session",
		"url":                 "https://checkout.stripe.test/c/pay/" + id,
		"status":              "open",
		"payment_status":      "unpaid",
		"amount_total":        amount,
		"currency":            r.PostForm.Get("line_items[0][price_data][currency]"),
		"client_reference_id": r.PostForm.Get("client_reference_id"),
		"customer_email":      r.PostForm.Get("customer_email"),
		"success_url":         r.PostForm.Get("success_url"),
		"metadata": map[string]any{
			"bookingId": r.PostForm.Get("metadata[bookingId]"),
			"locale":    r.PostForm.Get("metadata[locale]"),
		},
	}
	s.sessions[id] = sess
	s.mu.Unlock()

	writeStubJSON(w, http.StatusOK, sess)
}

func (s *StripeStub) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess, ok := s.sessions[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeStubJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{"type": "invalid_request_error", "message": "No such checkout.session"},
		})
		return
	}
	writeStubJSON(w, http.StatusOK, sess)
}

// PayPalStub serves OAuth and the orders API.
type PayPalStub struct {
	srv *httptest.Server

	mu     sync.Mutex
	seq    int
	orders map[string]map[string]any
}

func NewPayPalStub(t *testing.T) *PayPalStub {
	t.Helper()
	p := &PayPalStub{orders: map[string]map[string]any{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		writeStubJSON(w, http.StatusOK, map[string]any{"access_token": "A21AA-e2e", "token_type": "Bearer"})
	})
	mux.HandleFunc("POST /v2/checkout/orders", p.create)
	mux.HandleFunc("GET /v2/checkout/orders/{id}", p.get)
	p.srv = httptest.NewServer(mux)
	t.Cleanup(p.srv.Close)
	return p
}

func (p *PayPalStub) URL() string { return p.srv.URL }

func (p *PayPalStub) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = map[string]map[string]any{}
}

// Complete marks an order captured for the given value, e.g. "155.00".
func (p *PayPalStub) Complete(orderID, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	order, ok := p.orders[orderID]
	if !ok {
		panic("unknown paypal order " + orderID)
	}
	order["status"] = "COMPLETED"
	unit := order["purchase_units"].([]any)[0].(map[string]any)
	unit["amount"].(map[string]any)["value"] = value
}

func (p *PayPalStub) create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	p.seq++
	id := fmt.Sprintf("ORDER%d", p.seq)
	order := map[string]any{
		"id":             id,
		"status":         "CREATED",
		"purchase_units": body["purchase_units"],
		"links": []any{
			map[string]any{"href": "https://www.paypal.test/checkoutnow?token=" + id, "rel": "approve"},
		},
	}
	p.orders[id] = order
	p.mu.Unlock()

	writeStubJSON(w, http.StatusCreated, order)
}

func (p *PayPalStub) get(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	order, ok := p.orders[r.PathValue("id")]
	if !ok {
		writeStubJSON(w, http.StatusNotFound, map[string]any{"name": "RESOURCE_NOT_FOUND"})
		return
	}
	writeStubJSON(w, http.StatusOK, order)
}

func writeStubJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
