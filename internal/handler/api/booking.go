package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"travel-booking/internal/domain/booking"
	reqdto "travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxListLimit = 500

type BookingHandler struct {
	cmds     commands.BookingCommands
	payments commands.PaymentCommands
	q        queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, payments commands.PaymentCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, payments: payments, q: q}
}

// @Summary Create booking
// @Description Register a booking and render its QR ticket. Bookings always start unpaid.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /book [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateBooking(c.Request.Context(), req.ToDraft())
	if err != nil {
		if errs.Is(err, commands.ErrTicketEncoding) {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to generate ticket", nil)
			return
		}
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /booking/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update booking payment
// @Description Record the chosen payment method or complete a payment. Online completions are
// @Description verified with the provider; offline completions require an operator token.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdatePaymentRequest true "Payment update"
// @Success 200 {object} resdto.BookingPaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /booking/{id}/payment [put]
func (h *BookingHandler) UpdatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	actor := commands.Actor{Operator: middleware.IsOperator(c)}
	if userID, ok := middleware.GetUserID(c); ok {
		actor.ID = userID
	}
	view, err := h.payments.UpdatePayment(c.Request.Context(), id, req.ToInput(), actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Download ticket
// @Description Printable PDF ticket with the booking QR code
// @Tags bookings
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Success 200 {file} binary
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /booking/{id}/ticket [get]
func (h *BookingHandler) Ticket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	doc, err := h.q.TicketPDF(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

// @Summary List bookings
// @Description Operator listing, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending or completed"
// @Param limit query int false "Max items"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var filter queries.BookingFilter
	if v := strings.ToLower(c.Query("status")); v != "" {
		status := booking.PaymentStatus(v)
		if !status.IsValid() {
			err := booking.NewValidationError("status", "must be pending or completed")
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", err.Fields)
			return
		}
		filter.Status = status
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			if err == nil {
				err = errors.New("negative limit")
			}
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		filter.Limit = min(n, maxListLimit)
	}
	items, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(items))
}
