package shared

import (
	"context"

	"travel-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn with exclusive access to the booking store.
	// Changes made through tx are persisted once, after fn returns nil.
	Within(ctx context.Context, fn func(ctx context.Context, tx BookingTx) error) error
}

type BookingTx interface {
	FindByID(id uuid.UUID) (*booking.Booking, error)
	// FindByPaymentID returns the booking settled by a provider transaction, if any.
	FindByPaymentID(paymentID string) (*booking.Booking, bool)
	Insert(b *booking.Booking) error
	Replace(b *booking.Booking) error
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	List(ctx context.Context) ([]*booking.Booking, error)
}
