//go:build unit || e2e

package builder

import (
	"time"

	"travel-booking/internal/domain/booking"
	reqdto "travel-booking/internal/handler/dto/request"
	"travel-booking/internal/pkg/clock"
)

type BookingBuilder struct {
	Name          string
	Email         string
	Destination   string
	DepartureDate string
	ReturnDate    string
	TripType      string
	Adults        int
	Seniors       int
	Children      int
	Infants       int
	HasPets       bool
	PetType       string
	VehicleType   string
	Locale        string
	PaymentMethod string
	Now           time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		Name:          "Amina Haddad",
		Email:         "amina@example.com",
		Destination:   "Tangier",
		DepartureDate: "2099-01-01",
		TripType:      "one-way",
		Adults:        2,
		Seniors:       0,
		Children:      1,
		Infants:       0,
		VehicleType:   "none",
		Locale:        "en",
		Now:           time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDraft() booking.Draft {
	return booking.Draft{
		Name:          b.Name,
		Email:         b.Email,
		Destination:   b.Destination,
		DepartureDate: b.DepartureDate,
		ReturnDate:    b.ReturnDate,
		TripType:      b.TripType,
		Adults:        b.Adults,
		Seniors:       b.Seniors,
		Children:      b.Children,
		Infants:       b.Infants,
		HasPets:       b.HasPets,
		PetType:       b.PetType,
		VehicleType:   b.VehicleType,
		Locale:        b.Locale,
		PaymentMethod: b.PaymentMethod,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	services := &booking.Services{Clock: clock.NewMockClock(b.Now)}
	return booking.NewBooking(services, b.BuildDraft())
}

// MustBuildDomain builds a valid booking with its ticket already attached.
func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	if err := bk.AttachTicket("/qrcodes/" + bk.ID().String() + ".png"); err != nil {
		panic(err)
	}
	return bk
}

// BuildPaid builds a booking already settled by the given transaction.
func (b *BookingBuilder) BuildPaid(method booking.PaymentMethod, transactionID string, amount booking.Money) *booking.Booking {
	bk := b.MustBuildDomain()
	if _, err := bk.MarkPaid(booking.Payment{
		Method:        method,
		TransactionID: transactionID,
		Amount:        amount,
		Currency:      booking.Currency("eur"),
	}, b.Now.Add(time.Hour)); err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		Name:          b.Name,
		Email:         b.Email,
		Destination:   b.Destination,
		DepartureDate: b.DepartureDate,
		TripType:      b.TripType,
		Adults:        reqdto.Int(b.Adults),
		Seniors:       reqdto.Int(b.Seniors),
		Children:      reqdto.Int(b.Children),
		Infants:       reqdto.Int(b.Infants),
		HasPets:       reqdto.LenientBool(b.HasPets),
		VehicleType:   b.VehicleType,
		Locale:        b.Locale,
		PaymentMethod: b.PaymentMethod,
	}
	if b.ReturnDate != "" {
		rd := b.ReturnDate
		req.ReturnDate = &rd
	}
	if b.PetType != "" {
		pt := b.PetType
		req.PetType = &pt
	}
	return req
}

// Fluent builder methods
func (b *BookingBuilder) WithName(name string) *BookingBuilder {
	b.Name = name
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.Email = email
	return b
}

func (b *BookingBuilder) WithDestination(destination string) *BookingBuilder {
	b.Destination = destination
	return b
}

func (b *BookingBuilder) WithDepartureDate(date string) *BookingBuilder {
	b.DepartureDate = date
	return b
}

func (b *BookingBuilder) AsRoundTrip(returnDate string) *BookingBuilder {
	b.TripType = "round-trip"
	b.ReturnDate = returnDate
	return b
}

func (b *BookingBuilder) WithPassengers(adults, seniors, children, infants int) *BookingBuilder {
	b.Adults = adults
	b.Seniors = seniors
	b.Children = children
	b.Infants = infants
	return b
}

func (b *BookingBuilder) WithPet(petType string) *BookingBuilder {
	b.HasPets = true
	b.PetType = petType
	return b
}

func (b *BookingBuilder) WithVehicle(vehicle string) *BookingBuilder {
	b.VehicleType = vehicle
	return b
}

func (b *BookingBuilder) WithLocale(locale string) *BookingBuilder {
	b.Locale = locale
	return b
}

func (b *BookingBuilder) WithPaymentMethod(method string) *BookingBuilder {
	b.PaymentMethod = method
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}
