//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/domain/user"
	"travel-booking/internal/handler/api"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
	"travel-booking/tests/common/builder"
	"travel-booking/tests/common/httptest"
	"travel-booking/tests/common/testutil"
	commandsmock "travel-booking/tests/mock/commands"
	queriesmock "travel-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockPayments *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	operatorID   uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockPayments, s.mockQueries)
	s.operatorID = uuid.New()

	// stands in for OptionalAuth: any bearer token is an operator
	fakeAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.operatorID)
			c.Set("user_role", user.RoleOperator)
		}
		c.Next()
	}

	s.router.POST("/api/book", s.handler.Create)
	s.router.GET("/api/booking/:id", s.handler.Get)
	s.router.GET("/api/booking/:id/ticket", s.handler.Ticket)
	s.router.PUT("/api/booking/:id/payment", fakeAuth, s.handler.UpdatePayment)
	s.router.GET("/api/bookings", s.handler.List)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/book"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	bookingID := uuid.New()

	tests := []struct {
		name         string
		mutate       func(m map[string]any)
		setupMock    func()
		expectCode   int
		expectInBody string
	}{
		{
			name: "success",
			setupMock: func() {
				s.mockCommands.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, d booking.Draft) (*commands.CreateBookingResult, error) {
						s.Equal("Amina Haddad", d.Name)
						s.Equal(2, d.Adults)
						return &commands.CreateBookingResult{BookingID: bookingID}, nil
					})
			},
			expectCode: http.StatusCreated,
		},
		{
			name:   "client paid flag is ignored",
			mutate: testutil.Field("paid", true),
			setupMock: func() {
				s.mockCommands.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any()).
					Return(&commands.CreateBookingResult{BookingID: bookingID}, nil)
			},
			expectCode: http.StatusCreated,
		},
		{
			name:   "validation errors list every field",
			mutate: testutil.Field("email", "nope"),
			setupMock: func() {
				verr := booking.NewValidationError("email", "must be a valid email address")
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, verr)
			},
			expectCode:   http.StatusBadRequest,
			expectInBody: "Validation failed",
		},
		{
			name: "ticket failure",
			setupMock: func() {
				err := errs.Mark(errors.New("disk full"), commands.ErrTicketEncoding)
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, err)
			},
			expectCode:   http.StatusInternalServerError,
			expectInBody: "Failed to generate ticket",
		},
		{
			name: "persistence failure",
			setupMock: func() {
				err := errs.Mark(errors.New("write failed"), errs.ErrPersistence)
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, err)
			},
			expectCode:   http.StatusInternalServerError,
			expectInBody: "Failed to save booking",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var body map[string]any
			if tt.mutate != nil {
				body = testutil.DtoMap(s.T(), reqBody, tt.mutate)
			} else {
				body = testutil.DtoMap(s.T(), reqBody)
			}
			if tt.setupMock != nil {
				tt.setupMock()
			}

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

			if tt.expectCode == http.StatusCreated {
				var resp resdto.CreateBookingResponse
				httptest.AssertSuccessResponse(s.T(), w, tt.expectCode, &resp)
				s.True(resp.Success)
				s.Equal(bookingID.String(), resp.BookingID)
				return
			}
			httptest.AssertErrorResponse(s.T(), w, tt.expectCode, tt.expectInBody)
		})
	}
}

func (s *BookingHandlerTestSuite) TestCreate_ValidationDetail() {
	verr := &booking.ValidationError{Fields: []booking.FieldError{
		{Field: "name", Message: "is required"},
		{Field: "departureDate", Message: "must be today or later"},
	}}
	s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, verr)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/book", map[string]any{}, "")

	var resp struct {
		Detail []booking.FieldError `json:"detail"`
	}
	s.Equal(http.StatusBadRequest, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Detail, 2)
	s.Equal("departureDate", resp.Detail[1].Field)
}

func (s *BookingHandlerTestSuite) TestGet() {
	view := &queries.BookingView{ID: uuid.New(), Name: "Amina Haddad", PaymentStatus: "pending"}

	tests := []struct {
		name         string
		path         string
		setupMock    func()
		expectCode   int
		expectInBody string
	}{
		{
			name: "found",
			path: "/api/booking/" + view.ID.String(),
			setupMock: func() {
				s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
			},
			expectCode: http.StatusOK,
		},
		{
			name:         "malformed id",
			path:         "/api/booking/not-a-uuid",
			expectCode:   http.StatusBadRequest,
			expectInBody: "Invalid id",
		},
		{
			name: "unknown booking",
			path: "/api/booking/" + view.ID.String(),
			setupMock: func() {
				s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
					Return(nil, errs.Mark(errors.New("missing"), errs.ErrBookingNotFound))
			},
			expectCode:   http.StatusNotFound,
			expectInBody: "Booking not found",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tt.path, nil, "")

			if tt.expectCode == http.StatusOK {
				var resp queries.BookingView
				httptest.AssertSuccessResponse(s.T(), w, tt.expectCode, &resp)
				s.Equal(view.ID, resp.ID)
				return
			}
			httptest.AssertErrorResponse(s.T(), w, tt.expectCode, tt.expectInBody)
		})
	}
}

func (s *BookingHandlerTestSuite) TestUpdatePayment() {
	id := uuid.New()
	path := "/api/booking/" + id.String() + "/payment"
	paid := &queries.BookingView{ID: id, Paid: true, PaymentStatus: "completed"}

	tests := []struct {
		name         string
		body         map[string]any
		token        string
		setupMock    func()
		expectCode   int
		expectInBody string
	}{
		{
			name: "anonymous caller is not an operator",
			body: map[string]any{"paymentMethod": "Cash", "paymentStatus": "completed", "amount": 155},
			setupMock: func() {
				s.mockPayments.EXPECT().
					UpdatePayment(gomock.Any(), id, commands.UpdatePaymentInput{
						PaymentMethod: booking.MethodCash,
						PaymentStatus: booking.StatusCompleted,
						Amount:        moneyPtr(15500),
					}, commands.Actor{}).
					Return(nil, errs.Mark(errors.New("operator required"), errs.ErrForbidden))
			},
			expectCode:   http.StatusForbidden,
			expectInBody: "Operator privileges required",
		},
		{
			name:  "operator token is forwarded",
			body:  map[string]any{"paymentMethod": "cash", "paymentStatus": "completed", "amount": "155.00"},
			token: "operator-token",
			setupMock: func() {
				s.mockPayments.EXPECT().
					UpdatePayment(gomock.Any(), id, gomock.Any(), commands.Actor{ID: s.operatorID, Operator: true}).
					Return(paid, nil)
			},
			expectCode: http.StatusOK,
		},
		{
			name: "amount mismatch",
			body: map[string]any{"paymentMethod": "paypal", "paymentId": "ORDER1", "paymentStatus": "completed"},
			setupMock: func() {
				s.mockPayments.EXPECT().
					UpdatePayment(gomock.Any(), id, gomock.Any(), gomock.Any()).
					Return(nil, errs.Mark(errors.New("1.00 != 155.00"), errs.ErrAmountMismatch))
			},
			expectCode:   http.StatusUnprocessableEntity,
			expectInBody: "does not match",
		},
		{
			name:         "malformed amount",
			body:         map[string]any{"paymentMethod": "cash", "amount": "lots"},
			expectCode:   http.StatusBadRequest,
			expectInBody: "Invalid request",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, tt.body, tt.token)

			if tt.expectCode == http.StatusOK {
				var resp resdto.BookingPaymentResponse
				httptest.AssertSuccessResponse(s.T(), w, tt.expectCode, &resp)
				s.True(resp.Success)
				s.True(resp.Booking.Paid)
				return
			}
			httptest.AssertErrorResponse(s.T(), w, tt.expectCode, tt.expectInBody)
		})
	}
}

func (s *BookingHandlerTestSuite) TestTicket() {
	id := uuid.New()
	s.mockQueries.EXPECT().TicketPDF(gomock.Any(), id).Return(&queries.TicketDocument{
		Filename: "ticket-" + id.String() + ".pdf",
		Content:  []byte("%PDF-1.3"),
	}, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/booking/"+id.String()+"/ticket", nil, "")

	s.Equal(http.StatusOK, w.Code)
	httptest.AssertHeaders(s.T(), w, map[string]string{
		"Content-Type":        "application/pdf",
		"Content-Disposition": `inline; filename="ticket-` + id.String() + `.pdf"`,
	})
	s.Equal("%PDF-1.3", w.Body.String())
}

func (s *BookingHandlerTestSuite) TestList() {
	items := []*queries.BookingView{{ID: uuid.New()}, {ID: uuid.New()}}

	tests := []struct {
		name       string
		query      string
		setupMock  func()
		expectCode int
	}{
		{
			name:  "filters are passed through",
			query: "?status=Completed&limit=2",
			setupMock: func() {
				s.mockQueries.EXPECT().
					List(gomock.Any(), queries.BookingFilter{Status: booking.StatusCompleted, Limit: 2}).
					Return(items, nil)
			},
			expectCode: http.StatusOK,
		},
		{
			name:  "limit is capped",
			query: "?limit=100000",
			setupMock: func() {
				s.mockQueries.EXPECT().
					List(gomock.Any(), queries.BookingFilter{Limit: 500}).
					Return(items, nil)
			},
			expectCode: http.StatusOK,
		},
		{name: "unknown status", query: "?status=refunded", expectCode: http.StatusBadRequest},
		{name: "bad limit", query: "?limit=-1", expectCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings"+tt.query, nil, "")

			if tt.expectCode == http.StatusOK {
				var resp resdto.BookingListResponse
				httptest.AssertSuccessResponse(s.T(), w, tt.expectCode, &resp)
				s.Equal(2, resp.Count)
				return
			}
			httptest.AssertErrorResponse(s.T(), w, tt.expectCode, "")
		})
	}
}

func moneyPtr(cents int64) *booking.Money {
	m := booking.NewMoney(cents)
	return &m
}
