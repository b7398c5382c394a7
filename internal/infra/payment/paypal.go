package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"
)

const paypalStatusCompleted = "COMPLETED"

// PayPalGateway talks to the PayPal Orders v2 API with client-credential tokens.
// A token is requested per call; orders are rare enough that caching is not worth the state.
type PayPalGateway struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client
}

func NewPayPalGateway(cfg config.PayPalConfig, client *http.Client) *PayPalGateway {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &PayPalGateway{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		http:         client,
	}
}

func (g *PayPalGateway) Method() booking.PaymentMethod { return booking.MethodPayPal }

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id,omitempty"`
	CustomID    string       `json:"custom_id,omitempty"`
	Description string       `json:"description,omitempty"`
	Amount      paypalAmount `json:"amount"`
}

type paypalApplicationContext struct {
	ReturnURL  string `json:"return_url"`
	CancelURL  string `json:"cancel_url"`
	Locale     string `json:"locale,omitempty"`
	UserAction string `json:"user_action,omitempty"`
}

type paypalCreateOrder struct {
	Intent             string                   `json:"intent"`
	PurchaseUnits      []paypalPurchaseUnit     `json:"purchase_units"`
	ApplicationContext paypalApplicationContext `json:"application_context"`
}

type paypalLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type paypalOrder struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
	Links         []paypalLink         `json:"links"`
}

func (g *PayPalGateway) CreateSession(ctx context.Context, p commands.CheckoutSessionParams) (*commands.CheckoutSession, error) {
	id := p.BookingID.String()
	description := p.Description
	if description == "" {
		description = "Booking ID: " + id
	}
	body := paypalCreateOrder{
		Intent: "CAPTURE",
		PurchaseUnits: []paypalPurchaseUnit{{
			ReferenceID: id,
			CustomID:    id,
			Description: description,
			Amount: paypalAmount{
				CurrencyCode: p.Currency.Upper(),
				Value:        p.Amount.String(),
			},
		}},
		ApplicationContext: paypalApplicationContext{
			ReturnURL:  p.SuccessURL,
			CancelURL:  p.CancelURL,
			Locale:     paypalLocale(p.Locale),
			UserAction: "PAY_NOW",
		},
	}

	var order paypalOrder
	if err := g.call(ctx, http.MethodPost, "/v2/checkout/orders", body, &order); err != nil {
		return nil, errs.Wrap(err, "create paypal order")
	}
	return toPayPalSession(&order)
}

func (g *PayPalGateway) FetchSession(ctx context.Context, id string) (*commands.CheckoutSession, error) {
	if id == "" {
		return nil, booking.NewValidationError("paymentId", "order id is required")
	}
	var order paypalOrder
	if err := g.call(ctx, http.MethodGet, "/v2/checkout/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, errs.Wrap(err, "fetch paypal order")
	}
	return toPayPalSession(&order)
}

func toPayPalSession(o *paypalOrder) (*commands.CheckoutSession, error) {
	s := &commands.CheckoutSession{
		ID:            o.ID,
		Status:        o.Status,
		Paid:          o.Status == paypalStatusCompleted,
		TransactionID: o.ID,
	}
	for _, l := range o.Links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			s.RedirectURL = l.Href
			break
		}
	}
	if len(o.PurchaseUnits) > 0 {
		pu := o.PurchaseUnits[0]
		s.BookingRef = pu.ReferenceID
		if s.BookingRef == "" {
			s.BookingRef = pu.CustomID
		}
		s.Currency = strings.ToLower(pu.Amount.CurrencyCode)
		if pu.Amount.Value != "" {
			amount, err := booking.ParseMoney(pu.Amount.Value)
			if err != nil {
				return nil, errs.Mark(errs.Wrapf(err, "paypal order %s amount %q", o.ID, pu.Amount.Value), errs.ErrProviderFailure)
			}
			s.Amount = amount
		}
	}
	return s, nil
}

type paypalToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (g *PayPalGateway) accessToken(ctx context.Context) (string, error) {
	if g.clientID == "" || g.clientSecret == "" {
		return "", errs.Mark(errs.New("paypal credentials are not set"), errs.ErrConfiguration)
	}
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "build token request"), errs.ErrConfiguration)
	}
	req.SetBasicAuth(g.clientID, g.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var tok paypalToken
	if err := g.do(req, &tok); err != nil {
		return "", errs.Wrap(err, "paypal access token")
	}
	if tok.AccessToken == "" {
		return "", errs.Mark(errs.New("paypal returned an empty access token"), errs.ErrProviderAuth)
	}
	return tok.AccessToken, nil
}

func (g *PayPalGateway) call(ctx context.Context, method, path string, in, out any) error {
	token, err := g.accessToken(ctx)
	if err != nil {
		return err
	}
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errs.Wrap(err, "encode paypal request")
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "build paypal request"), errs.ErrConfiguration)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return g.do(req, out)
}

func (g *PayPalGateway) do(req *http.Request, out any) error {
	resp, err := g.http.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "paypal request"), errs.ErrProviderFailure)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.Mark(errs.Wrap(err, "read paypal response"), errs.ErrProviderFailure)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errs.Mark(errs.Newf("paypal rejected credentials: %s", snippet(raw)), errs.ErrProviderAuth)
	case resp.StatusCode >= 300:
		return errs.Mark(errs.Newf("paypal responded %d: %s", resp.StatusCode, snippet(raw)), errs.ErrProviderFailure)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Mark(errs.Wrap(err, "decode paypal response"), errs.ErrProviderFailure)
	}
	return nil
}

func snippet(raw []byte) string {
	const max = 200
	if len(raw) > max {
		return fmt.Sprintf("%s...", raw[:max])
	}
	return string(raw)
}

func paypalLocale(l booking.Locale) string {
	switch l {
	case booking.LocaleSpanish:
		return "es-ES"
	case booking.LocaleFrench:
		return "fr-FR"
	case booking.LocaleArabic:
		return "ar-EG"
	default:
		return "en-US"
	}
}
