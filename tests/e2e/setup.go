//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"travel-booking/cmd/bootstrap"
	"travel-booking/cmd/bootstrap/components"
	"travel-booking/internal/domain/booking"
	"travel-booking/internal/handler"
	"travel-booking/internal/handler/dto/response"
	"travel-booking/internal/infra/filestore"
	"travel-booking/internal/infra/payment"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/queries"
	"travel-booking/tests/common/authtest"
	"travel-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/fx"
)

const webhookSecret = "whsec_e2e"

// ------------------------------------------------------------
// per test process setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, config.Config, *filestore.BookingStore, *StripeStub, *PayPalStub) {
	gin.SetMode(gin.TestMode)

	stripeStub := NewStripeStub(t)
	paypalStub := NewPayPalStub(t)
	cfg := createTestConfig(t.TempDir(), paypalStub.URL())

	router, store, app := buildE2EApp(cfg, stripeStub)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return router, cfg, store, stripeStub, paypalStub
}

func createTestConfig(dir, paypalURL string) config.Config {
	cfg := config.NewTestConfig()
	cfg.Storage.BookingsFile = filepath.Join(dir, "bookings.json")
	cfg.Storage.TicketDir = filepath.Join(dir, "qrcodes")
	cfg.Stripe.WebhookSecret = webhookSecret
	cfg.PayPal = config.PayPalConfig{
		ClientID:     "e2e-client",
		ClientSecret: "e2e-secret",
		BaseURL:      paypalURL,
		Timeout:      5 * time.Second,
	}
	cfg.RateLimit.MaxRequests = 1000
	return cfg
}

// ------------------------------------------------------------
// builds the application the way cmd/main.go does, minus the listener
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config, stripeStub *StripeStub) (*gin.Engine, *filestore.BookingStore, *fx.App) {
	var router *gin.Engine
	var store *filestore.BookingStore

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(stripeStub.URL()),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})

	app := fx.New(
		testConfigModule,
		fx.Provide(func() (*gin.Engine, error) { return handler.NewEngine(cfg.Server) }),
		bootstrap.InfraModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Decorate(func(c config.Config) *payment.StripeGateway {
			return payment.NewStripeGateway(c.Stripe, backend)
		}),

		fx.Populate(&router, &store),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	return router, store, app
}

// ------------------------------------------------------------
// common setup shared by the e2e suites
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	Config config.Config
	Store  *filestore.BookingStore
	Stripe *StripeStub
	PayPal *PayPalStub
	Tokens *authtest.JWTHelper
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	router, cfg, store, stripeStub, paypalStub := setupE2EEnvironment(t)
	s.Router = router
	s.Config = cfg
	s.Store = store
	s.Stripe = stripeStub
	s.PayPal = paypalStub
	s.Tokens = authtest.NewJWTHelper(cfg.JWT)
	require.NotNil(t, s.Store, "store setup failed")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	err := s.Store.Save(context.Background(), []*booking.Booking{})
	require.NoError(s.T(), err, "Failed to reset booking store")
	s.Stripe.Reset()
	s.PayPal.Reset()
}

// CreateBooking posts a booking and returns its id.
func (s *SharedSuite) CreateBooking(t *testing.T, req any) uuid.UUID {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/book", req, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.CreateBookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	id, err := uuid.Parse(created.BookingID)
	require.NoError(t, err)
	return id
}

// GetBooking fetches the public view of a booking.
func (s *SharedSuite) GetBooking(t *testing.T, id uuid.UUID) queries.BookingView {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/booking/"+id.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view queries.BookingView
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
	return view
}
