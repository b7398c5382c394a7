package components

import (
	"log/slog"

	"travel-booking/internal/handler"
	"travel-booking/internal/handler/api"
	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/infra/ratelimit"
	"travel-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPaymentHandler,
		middleware.NewAuthMiddleware,
		NewRateLimitMiddleware,
	),
	fx.Invoke(RegisterRoutes),
)

func NewRateLimitMiddleware(limiter *ratelimit.Limiter, cfg config.Config, logger *slog.Logger) *middleware.RateLimitMiddleware {
	return middleware.NewRateLimitMiddleware(limiter, cfg.RateLimit, logger)
}

type RouteParams struct {
	fx.In

	Engine    *gin.Engine
	Config    config.Config
	Logger    *middleware.Logger
	Booking   *api.BookingHandler
	Payment   *api.PaymentHandler
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func RegisterRoutes(p RouteParams) {
	handler.NewRouter(p.Engine, p.Config, handler.Handlers{
		Booking:   p.Booking,
		Payment:   p.Payment,
		Auth:      p.Auth,
		RateLimit: p.RateLimit,
		Logger:    p.Logger,
	})
}
