package bootstrap

import (
	"travel-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// InfraModule is everything below the use cases. Tests swap pieces of it with fx.Decorate.
var InfraModule = fx.Options(
	LoggerModule,
	JWTModule,
	TicketModule,
	NotifyModule,
	PaymentModule,
	RateLimitModule,
	components.PersistenceModule,
)

var Module = fx.Options(
	ConfigModule,
	InfraModule,
	components.UseCaseModule,
	components.HandlerModule,
)
