package components

import (
	"log/slog"

	"travel-booking/internal/infra/filestore"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			NewBookingStore,
			fx.As(fx.Self()),
			fx.As(new(shared.UnitOfWork)),
			fx.As(new(shared.BookingReadStore)),
		),
	),
)

func NewBookingStore(cfg config.Config, logger *slog.Logger) *filestore.BookingStore {
	store := filestore.NewBookingStore(cfg.Storage, logger)
	logger.Info("booking store ready", slog.String("path", store.Path()))
	return store
}
