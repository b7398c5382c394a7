package api

import (
	"net/http"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	sentinel error
	status   int
	message  string
}

// ordered: the first matching sentinel wins
var errorMappings = []errorMapping{
	{errs.ErrValidation, http.StatusBadRequest, "Validation failed"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrAlreadyPaid, http.StatusConflict, "Booking is already paid"},
	{errs.ErrPaymentAlreadyClaimed, http.StatusConflict, "Payment already used for another booking"},
	{errs.ErrAmountMismatch, http.StatusUnprocessableEntity, "Payment amount does not match the booking total"},
	{errs.ErrBookingMismatch, http.StatusUnprocessableEntity, "Payment does not belong to this booking"},
	{errs.ErrPaymentNotCompleted, http.StatusBadRequest, "Payment not completed"},
	{errs.ErrInvalidSignature, http.StatusBadRequest, "Invalid webhook signature"},
	{errs.ErrForbidden, http.StatusForbidden, "Operator privileges required"},
	{errs.ErrRateLimited, http.StatusTooManyRequests, "Too many requests"},
	{errs.ErrConfiguration, http.StatusServiceUnavailable, "Payment provider not configured"},
	{errs.ErrProviderAuth, http.StatusBadGateway, "Payment provider authentication failed"},
	{errs.ErrProviderFailure, http.StatusBadGateway, "Payment provider error"},
	{errs.ErrPersistence, http.StatusInternalServerError, "Failed to save booking"},
}

// StatusFor maps a usecase error onto its HTTP status and public message.
func StatusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errs.Is(err, m.sentinel) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// abortWithUsecaseError responds with the mapped status. Validation errors carry their field list.
func abortWithUsecaseError(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	var detail any
	var verr *booking.ValidationError
	if errs.As(err, &verr) {
		detail = verr.Fields
	}
	httperr.AbortWithError(c, status, err, msg, detail)
}
