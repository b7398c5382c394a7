package response

import (
	"travel-booking/internal/domain/booking"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
)

type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	Message   string `json:"message"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		Success:   true,
		BookingID: r.BookingID.String(),
		Message:   "Booking created successfully",
	}
}

type BookingListResponse struct {
	Bookings []*queries.BookingView `json:"bookings"`
	Count    int                    `json:"count"`
}

func FromBookingList(items []*queries.BookingView) *BookingListResponse {
	if items == nil {
		items = []*queries.BookingView{}
	}
	return &BookingListResponse{Bookings: items, Count: len(items)}
}

// CheckoutSessionResponse keeps the legacy id/url names next to the descriptive ones.
type CheckoutSessionResponse struct {
	ID          string `json:"id"`
	SessionID   string `json:"sessionId"`
	URL         string `json:"url"`
	RedirectURL string `json:"redirectUrl"`
}

func FromStartPaymentResult(r *commands.StartPaymentResult) *CheckoutSessionResponse {
	return &CheckoutSessionResponse{
		ID:          r.SessionID,
		SessionID:   r.SessionID,
		URL:         r.RedirectURL,
		RedirectURL: r.RedirectURL,
	}
}

type SessionVerifyResponse struct {
	Success               bool                 `json:"success"`
	Paid                  bool                 `json:"paid"`
	Amount                *booking.Money       `json:"amount"`
	PaymentIntentID       string               `json:"paymentIntentId,omitempty"`
	ProviderTransactionID string               `json:"providerTransactionId,omitempty"`
	Booking               *queries.BookingView `json:"booking,omitempty"`
}

func FromVerifyResult(r *commands.VerifyResult) *SessionVerifyResponse {
	return &SessionVerifyResponse{
		Success:               true,
		Paid:                  r.Paid,
		Amount:                r.Amount,
		PaymentIntentID:       r.TransactionID,
		ProviderTransactionID: r.TransactionID,
		Booking:               r.Booking,
	}
}

type BookingPaymentResponse struct {
	Success bool                 `json:"success"`
	Booking *queries.BookingView `json:"booking"`
}

func FromBookingView(v *queries.BookingView) *BookingPaymentResponse {
	return &BookingPaymentResponse{Success: true, Booking: v}
}

type WebhookAckResponse struct {
	Received bool   `json:"received"`
	Status   string `json:"status"`
	EventID  string `json:"eventId,omitempty"`
}

func FromWebhookResult(r *commands.WebhookResult) *WebhookAckResponse {
	return &WebhookAckResponse{Received: true, Status: string(r.Outcome), EventID: r.EventID}
}
