package bootstrap

import (
	"log/slog"
	"net/http"

	"travel-booking/internal/infra/payment"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewStripeGateway,
		NewPayPalGateway,
		NewPaymentProviders,
		NewWebhookVerifier,
	),
)

func NewStripeGateway(cfg config.Config) *payment.StripeGateway {
	return payment.NewStripeGateway(cfg.Stripe, nil)
}

func NewPayPalGateway(cfg config.Config) *payment.PayPalGateway {
	return payment.NewPayPalGateway(cfg.PayPal, &http.Client{Timeout: cfg.PayPal.Timeout})
}

// NewPaymentProviders registers both gateways. A gateway without credentials
// stays registered and reports a configuration error when used.
func NewPaymentProviders(cfg config.Config, stripe *payment.StripeGateway, paypal *payment.PayPalGateway, logger *slog.Logger) commands.Providers {
	if cfg.Stripe.SecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, card checkout unavailable")
	}
	if cfg.PayPal.ClientID == "" || cfg.PayPal.ClientSecret == "" {
		logger.Warn("PAYPAL_CLIENT_ID/PAYPAL_CLIENT_SECRET not set, PayPal unavailable")
	}
	return commands.NewProviders(stripe, paypal)
}

// NewWebhookVerifier returns nil without a signing secret; webhooks are then refused.
func NewWebhookVerifier(cfg config.Config, stripe *payment.StripeGateway) commands.WebhookVerifier {
	if cfg.Stripe.WebhookSecret == "" {
		return nil
	}
	return stripe
}
