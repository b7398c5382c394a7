package queries

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock

import (
	"context"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// BookingView is the record as returned to clients and operators.
type BookingView struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Destination     string         `json:"destination"`
	DepartureDate   string         `json:"departureDate"`
	ReturnDate      *string        `json:"returnDate"`
	TripType        string         `json:"tripType"`
	Adults          int            `json:"adults"`
	Seniors         int            `json:"seniors"`
	Children        int            `json:"children"`
	Infants         int            `json:"infants"`
	Tickets         int            `json:"tickets"`
	HasPets         bool           `json:"hasPets"`
	PetType         *string        `json:"petType"`
	VehicleType     string         `json:"vehicleType"`
	Locale          string         `json:"locale"`
	Paid            bool           `json:"paid"`
	PaymentMethod   string         `json:"paymentMethod"`
	PaymentStatus   string         `json:"paymentStatus"`
	PaymentID       *string        `json:"paymentId,omitempty"`
	PaymentAmount   *booking.Money `json:"paymentAmount,omitempty"`
	PaymentCurrency *string        `json:"paymentCurrency,omitempty"`
	PaymentDate     *time.Time     `json:"paymentDate,omitempty"`
	QRCode          string         `json:"qrCode"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func NewBookingView(b *booking.Booking) (*BookingView, error) {
	return BookingViewFromSnapshot(b.Snapshot())
}

func BookingViewFromSnapshot(snap booking.Snapshot) (*BookingView, error) {
	var v BookingView
	if err := copier.Copy(&v, &snap); err != nil {
		return nil, errs.Wrap(err, "map booking view")
	}
	return &v, nil
}

// BookingFilter narrows the operator listing. Zero value lists everything.
type BookingFilter struct {
	Status booking.PaymentStatus
	Limit  int
}

type TicketDocument struct {
	Filename string
	Content  []byte
}

type TicketRenderer interface {
	RenderTicket(b *booking.Booking) ([]byte, string, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
	TicketPDF(ctx context.Context, id uuid.UUID) (*TicketDocument, error)
}

type bookingQueriesImpl struct {
	store    shared.BookingReadStore
	renderer TicketRenderer
}

func NewBookingQueries(store shared.BookingReadStore, renderer TicketRenderer) BookingQueries {
	return &bookingQueriesImpl{store: store, renderer: renderer}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	b, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewBookingView(b)
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter) ([]*BookingView, error) {
	items, err := q.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*BookingView, 0, len(items))
	for _, b := range items {
		if filter.Status != "" && b.PaymentStatus() != filter.Status {
			continue
		}
		v, err := NewBookingView(b)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (q *bookingQueriesImpl) TicketPDF(ctx context.Context, id uuid.UUID) (*TicketDocument, error) {
	b, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	content, filename, err := q.renderer.RenderTicket(b)
	if err != nil {
		return nil, err
	}
	return &TicketDocument{Filename: filename, Content: content}, nil
}
