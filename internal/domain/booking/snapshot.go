package booking

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the flat, persistence-friendly form of a Booking.
type Snapshot struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Destination     string
	DepartureDate   string
	ReturnDate      *string
	TripType        string
	Adults          int
	Seniors         int
	Children        int
	Infants         int
	Tickets         int
	HasPets         bool
	PetType         *string
	VehicleType     string
	Locale          string
	Paid            bool
	PaymentMethod   string
	PaymentStatus   string
	PaymentID       *string
	PaymentAmount   *Money
	PaymentCurrency *string
	PaymentDate     *time.Time
	QRCode          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (b *Booking) Snapshot() Snapshot {
	s := Snapshot{
		ID:            b.id,
		Name:          b.name,
		Email:         b.email,
		Destination:   b.destination,
		DepartureDate: b.departureDate,
		ReturnDate:    b.returnDate,
		TripType:      b.tripType.String(),
		Adults:        b.passengers.adults,
		Seniors:       b.passengers.seniors,
		Children:      b.passengers.children,
		Infants:       b.passengers.infants,
		Tickets:       b.tickets,
		HasPets:       b.hasPets,
		VehicleType:   b.vehicleType.String(),
		Locale:        b.locale.String(),
		Paid:          b.paid,
		PaymentMethod: b.paymentMethod.String(),
		PaymentStatus: b.paymentStatus.String(),
		PaymentDate:   b.paymentDate,
		QRCode:        b.qrCode,
		CreatedAt:     b.createdAt,
		UpdatedAt:     b.updatedAt,
	}
	if b.petType != nil {
		p := b.petType.String()
		s.PetType = &p
	}
	if b.payment != nil {
		id := b.payment.TransactionID
		amount := b.payment.Amount
		s.PaymentID = &id
		s.PaymentAmount = &amount
		if b.payment.Currency != "" {
			cur := b.payment.Currency.String()
			s.PaymentCurrency = &cur
		}
	}
	return s
}

// Reconstruct rebuilds a Booking from stored data without re-validating it.
// Records written by earlier versions may lack newer fields; those get defaults.
func Reconstruct(s Snapshot) *Booking {
	b := &Booking{
		id:            s.ID,
		name:          s.Name,
		email:         s.Email,
		destination:   s.Destination,
		departureDate: s.DepartureDate,
		returnDate:    s.ReturnDate,
		tripType:      TripType(s.TripType),
		passengers:    NewPassengers(s.Adults, s.Seniors, s.Children, s.Infants),
		tickets:       s.Tickets,
		hasPets:       s.HasPets,
		vehicleType:   VehicleType(s.VehicleType),
		locale:        Locale(s.Locale),
		paid:          s.Paid,
		paymentMethod: PaymentMethod(s.PaymentMethod),
		paymentStatus: PaymentStatus(s.PaymentStatus),
		paymentDate:   s.PaymentDate,
		qrCode:        s.QRCode,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
	}
	if b.tripType == "" {
		b.tripType = TripOneWay
	}
	if b.vehicleType == "" {
		b.vehicleType = VehicleNone
	}
	if b.locale == "" {
		b.locale = DefaultLocale
	}
	if b.paymentMethod == "" {
		b.paymentMethod = MethodNone
	}
	if b.paymentStatus == "" {
		b.paymentStatus = StatusPending
		if b.paid {
			b.paymentStatus = StatusCompleted
		}
	}
	if b.tickets == 0 {
		b.tickets = b.passengers.Tickets()
	}
	if s.PetType != nil && *s.PetType != "" {
		p := PetType(*s.PetType)
		b.petType = &p
	}
	if s.PaymentID != nil && *s.PaymentID != "" {
		p := &Payment{
			Method:        b.paymentMethod,
			TransactionID: *s.PaymentID,
		}
		if s.PaymentAmount != nil {
			p.Amount = *s.PaymentAmount
		}
		if s.PaymentCurrency != nil {
			p.Currency = Currency(*s.PaymentCurrency)
		}
		b.payment = p
	}
	return b
}
