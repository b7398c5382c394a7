package filestore

import (
	"time"

	"travel-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// bookingRecord is the on-disk JSON shape of a booking.
type bookingRecord struct {
	ID              string         `json:"id"`
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
	Locale          string         `json:"locale,omitempty"`
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

func toRecord(b *booking.Booking) bookingRecord {
	s := b.Snapshot()
	return bookingRecord{
		ID:              s.ID.String(),
		Name:            s.Name,
		Email:           s.Email,
		Destination:     s.Destination,
		DepartureDate:   s.DepartureDate,
		ReturnDate:      s.ReturnDate,
		TripType:        s.TripType,
		Adults:          s.Adults,
		Seniors:         s.Seniors,
		Children:        s.Children,
		Infants:         s.Infants,
		Tickets:         s.Tickets,
		HasPets:         s.HasPets,
		PetType:         s.PetType,
		VehicleType:     s.VehicleType,
		Locale:          s.Locale,
		Paid:            s.Paid,
		PaymentMethod:   s.PaymentMethod,
		PaymentStatus:   s.PaymentStatus,
		PaymentID:       s.PaymentID,
		PaymentAmount:   s.PaymentAmount,
		PaymentCurrency: s.PaymentCurrency,
		PaymentDate:     s.PaymentDate,
		QRCode:          s.QRCode,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func fromRecord(r bookingRecord) (*booking.Booking, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(booking.Snapshot{
		ID:              id,
		Name:            r.Name,
		Email:           r.Email,
		Destination:     r.Destination,
		DepartureDate:   r.DepartureDate,
		ReturnDate:      r.ReturnDate,
		TripType:        r.TripType,
		Adults:          r.Adults,
		Seniors:         r.Seniors,
		Children:        r.Children,
		Infants:         r.Infants,
		Tickets:         r.Tickets,
		HasPets:         r.HasPets,
		PetType:         r.PetType,
		VehicleType:     r.VehicleType,
		Locale:          r.Locale,
		Paid:            r.Paid,
		PaymentMethod:   r.PaymentMethod,
		PaymentStatus:   r.PaymentStatus,
		PaymentID:       r.PaymentID,
		PaymentAmount:   r.PaymentAmount,
		PaymentCurrency: r.PaymentCurrency,
		PaymentDate:     r.PaymentDate,
		QRCode:          r.QRCode,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}), nil
}
