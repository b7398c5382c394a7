package request

import (
	"strings"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateCheckoutSessionRequest struct {
	BookingID  uuid.UUID `json:"bookingId" binding:"required"`
	Provider   string    `json:"provider,omitempty"`
	Currency   string    `json:"currency,omitempty"`
	Locale     string    `json:"locale,omitempty"`
	SuccessURL string    `json:"successUrl,omitempty"`
	CancelURL  string    `json:"cancelUrl,omitempty"`
}

func (r *CreateCheckoutSessionRequest) ToInput() commands.StartPaymentInput {
	return commands.StartPaymentInput{
		BookingID:  r.BookingID,
		Provider:   booking.PaymentMethod(strings.ToLower(strings.TrimSpace(r.Provider))),
		Currency:   r.Currency,
		Locale:     r.Locale,
		SuccessURL: r.SuccessURL,
		CancelURL:  r.CancelURL,
	}
}

type VerifyPayPalRequest struct {
	OrderID   string    `json:"orderId" binding:"required"`
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

type UpdatePaymentRequest struct {
	PaymentMethod string         `json:"paymentMethod"`
	PaymentID     string         `json:"paymentId,omitempty"`
	PaymentStatus string         `json:"paymentStatus,omitempty"`
	Amount        *booking.Money `json:"amount,omitempty"`
	// Paid is ignored; completion is derived from a verified payment.
	Paid *bool `json:"paid,omitempty"`
}

func (r *UpdatePaymentRequest) ToInput() commands.UpdatePaymentInput {
	return commands.UpdatePaymentInput{
		PaymentMethod: booking.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod))),
		PaymentID:     strings.TrimSpace(r.PaymentID),
		PaymentStatus: booking.PaymentStatus(strings.ToLower(strings.TrimSpace(r.PaymentStatus))),
		Amount:        r.Amount,
	}
}
