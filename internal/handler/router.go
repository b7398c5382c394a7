package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/handler/api"
	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the route table needs.
type Handlers struct {
	Booking   *api.BookingHandler
	Payment   *api.PaymentHandler
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	Logger    *middleware.Logger
}

// NewEngine builds the gin engine. Forwarded headers are honoured only from
// the configured proxies, so rate limit keys follow the real peer.
func NewEngine(cfg config.ServerConfig) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	return engine, nil
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg, h.Logger)
	setupRoutes(engine, cfg, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.Static(cfg.Storage.TicketURLPrefix, cfg.Storage.TicketDir)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limited := []gin.HandlerFunc{h.RateLimit.Limit()}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/book", Handler: h.Booking.Create},
			{Method: http.MethodGet, Path: "/booking/:id", Handler: h.Booking.Get},
			{Method: http.MethodGet, Path: "/booking/:id/ticket", Handler: h.Booking.Ticket},
			{Method: http.MethodPut, Path: "/booking/:id/payment", Handler: h.Booking.UpdatePayment,
				Mw: append([]gin.HandlerFunc{h.Auth.OptionalAuth()}, limited...)},
			{Method: http.MethodPost, Path: "/create-checkout-session", Handler: h.Payment.CreateCheckoutSession, Mw: limited},
			{Method: http.MethodGet, Path: "/stripe/session", Handler: h.Payment.VerifySession, Mw: limited},
			{Method: http.MethodPost, Path: "/stripe/webhook", Handler: h.Payment.Webhook},
			{Method: http.MethodPost, Path: "/paypal/verify", Handler: h.Payment.VerifyPayPal, Mw: limited},
		})

		operators := apiGroup.Group("")
		operators.Use(h.Auth.RequireAuth(), h.Auth.RequireRoleAtLeast(user.RoleOperator))
		addRoutes(operators, []route{
			{Method: http.MethodGet, Path: "/bookings", Handler: h.Booking.List},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
