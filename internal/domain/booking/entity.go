package booking

import (
	"errors"
	"time"

	"travel-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var ErrTicketAlreadyAttached = errors.New("ticket already attached")

type Services struct {
	Clock clock.Clock
}

type Booking struct {
	id            uuid.UUID
	name          string
	email         string
	destination   string
	departureDate string
	returnDate    *string
	tripType      TripType
	passengers    Passengers
	tickets       int
	hasPets       bool
	petType       *PetType
	vehicleType   VehicleType
	locale        Locale
	paid          bool
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	payment       *Payment
	paymentDate   *time.Time
	qrCode        string
	createdAt     time.Time
	updatedAt     time.Time
}

// Payment is a provider- or operator-confirmed capture.
type Payment struct {
	Method        PaymentMethod
	TransactionID string
	Amount        Money
	Currency      Currency
}

func NewBooking(services *Services, d Draft) (*Booking, error) {
	n, err := d.normalize()
	if err != nil {
		return nil, err
	}
	now := services.Clock.Now().UTC()
	return &Booking{
		id:            uuid.New(),
		name:          n.name,
		email:         n.email,
		destination:   n.destination,
		departureDate: n.departureDate,
		returnDate:    n.returnDate,
		tripType:      n.tripType,
		passengers:    n.passengers,
		tickets:       n.passengers.Tickets(),
		hasPets:       n.petType != nil,
		petType:       n.petType,
		vehicleType:   n.vehicleType,
		locale:        n.locale,
		paid:          false,
		paymentMethod: n.paymentMethod,
		paymentStatus: StatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// AttachTicket records the rendered ticket location. It can be set once.
func (b *Booking) AttachTicket(path string) error {
	if b.qrCode != "" {
		return ErrTicketAlreadyAttached
	}
	b.qrCode = path
	return nil
}

// ChoosePaymentMethod records the customer's intended method while payment is pending.
// It reports whether the booking changed.
func (b *Booking) ChoosePaymentMethod(m PaymentMethod, now time.Time) (bool, error) {
	if !m.IsValid() {
		return false, ErrInvalidPaymentMethod
	}
	if b.paid || b.paymentMethod == m {
		return false, nil
	}
	b.paymentMethod = m
	b.updatedAt = now.UTC()
	return true, nil
}

// MarkPaid moves the booking to completed. Completion is terminal: calling it
// on a paid booking leaves every field untouched and reports false.
func (b *Booking) MarkPaid(p Payment, now time.Time) (bool, error) {
	if !p.Method.IsValid() || p.Method == MethodNone {
		return false, ErrInvalidPaymentMethod
	}
	if p.TransactionID == "" {
		return false, ErrMissingTransactionID
	}
	if b.paid {
		return false, nil
	}
	now = now.UTC()
	pay := p
	b.paid = true
	b.paymentStatus = StatusCompleted
	b.paymentMethod = p.Method
	b.payment = &pay
	b.paymentDate = &now
	b.updatedAt = now
	return true, nil
}

// SettledBy reports whether the booking was paid by the given provider transaction.
func (b *Booking) SettledBy(transactionID string) bool {
	return b.payment != nil && transactionID != "" && b.payment.TransactionID == transactionID
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Name() string                 { return b.name }
func (b *Booking) Email() string                { return b.email }
func (b *Booking) Destination() string          { return b.destination }
func (b *Booking) DepartureDate() string        { return b.departureDate }
func (b *Booking) ReturnDate() *string          { return b.returnDate }
func (b *Booking) TripType() TripType           { return b.tripType }
func (b *Booking) Passengers() Passengers       { return b.passengers }
func (b *Booking) Tickets() int                 { return b.tickets }
func (b *Booking) HasPets() bool                { return b.hasPets }
func (b *Booking) PetType() *PetType            { return b.petType }
func (b *Booking) VehicleType() VehicleType     { return b.vehicleType }
func (b *Booking) Locale() Locale               { return b.locale }
func (b *Booking) Paid() bool                   { return b.paid }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Payment() *Payment            { return b.payment }
func (b *Booking) PaymentDate() *time.Time      { return b.paymentDate }
func (b *Booking) QRCode() string               { return b.qrCode }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

func (b *Booking) PaymentID() string {
	if b.payment == nil {
		return ""
	}
	return b.payment.TransactionID
}
