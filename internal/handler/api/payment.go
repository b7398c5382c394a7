package api

import (
	"errors"
	"io"
	"net/http"

	reqdto "travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const webhookBodyLimit = 1 << 20

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Start payment session
// @Description Open a hosted checkout for the booking total computed on the server
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCheckoutSessionRequest true "Checkout"
// @Success 200 {object} resdto.CheckoutSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /create-checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req reqdto.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.StartPaymentSession(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStartPaymentResult(result))
}

// @Summary Verify payment session
// @Description Called from the checkout return page. Settles the booking when the session is paid.
// @Tags payments
// @Produce json
// @Param session_id query string true "Checkout session ID"
// @Param bookingId query string true "Booking ID"
// @Success 200 {object} resdto.SessionVerifyResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /stripe/session [get]
func (h *PaymentHandler) VerifySession(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("missing session_id"), "session_id is required", nil)
		return
	}
	bookingID, err := uuid.Parse(c.Query("bookingId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid bookingId", nil)
		return
	}
	result, err := h.cmds.VerifyByReturn(c.Request.Context(), sessionID, bookingID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerifyResult(result))
}

// @Summary Payment webhook
// @Description Signed provider callback. Permanent settlement failures are acknowledged and logged.
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} resdto.WebhookAckResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /stripe/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, webhookBodyLimit)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read request body", nil)
		return
	}
	result, err := h.cmds.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWebhookResult(result))
}

// @Summary Verify PayPal order
// @Description Settles the booking when the captured order matches the booking total
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyPayPalRequest true "Order"
// @Success 200 {object} resdto.BookingPaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /paypal/verify [post]
func (h *PaymentHandler) VerifyPayPal(c *gin.Context) {
	var req reqdto.VerifyPayPalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.VerifyAlternate(c.Request.Context(), req.OrderID, req.BookingID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
