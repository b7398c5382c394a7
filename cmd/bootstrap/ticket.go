package bootstrap

import (
	"log/slog"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/ticket"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var TicketModule = fx.Module("ticket",
	fx.Provide(
		fx.Annotate(
			NewQREncoder,
			fx.As(fx.Self()),
			fx.As(new(commands.TicketEncoder)),
		),
		NewPriceCalculator,
		fx.Annotate(
			ticket.NewPDFRenderer,
			fx.As(fx.Self()),
			fx.As(new(queries.TicketRenderer)),
		),
	),
)

func NewQREncoder(cfg config.Config, logger *slog.Logger) *ticket.QREncoder {
	return ticket.NewQREncoder(cfg.Storage, logger)
}

// NewPriceCalculator applies the configured pricing tier.
func NewPriceCalculator(cfg config.Config, logger *slog.Logger) (booking.PriceCalculator, error) {
	currency, err := booking.NewCurrency(cfg.Pricing.Currency)
	if err != nil {
		return nil, errs.Wrapf(err, "PRICING_CURRENCY %q", cfg.Pricing.Currency)
	}
	unit, fee := cfg.Pricing.Active()
	logger.Info("pricing configured",
		slog.String("tier", cfg.Pricing.Tier),
		slog.Int64("unit_cents", unit),
		slog.Int64("fee_cents", fee),
		slog.String("currency", currency.String()))
	return booking.NewFlatRateCalculator(booking.NewMoney(unit), booking.NewMoney(fee), currency), nil
}
