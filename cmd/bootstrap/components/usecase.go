package components

import (
	"log/slog"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
	"travel-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPaymentCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	reads shared.BookingReadStore,
	providers commands.Providers,
	webhook commands.WebhookVerifier,
	pricing booking.PriceCalculator,
	notifier commands.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) commands.PaymentCommands {
	return commands.NewPaymentUseCase(uow, reads, providers, webhook, pricing, notifier, cfg.Server.PublicBaseURL, clk, logger)
}
