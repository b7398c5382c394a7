package booking

import "time"

// TicketPayload is the content encoded into a booking's QR ticket.
type TicketPayload struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Destination   string    `json:"destination"`
	DepartureDate string    `json:"departureDate"`
	ReturnDate    *string   `json:"returnDate"`
	TripType      string    `json:"tripType"`
	Adults        int       `json:"adults"`
	Seniors       int       `json:"seniors"`
	Children      int       `json:"children"`
	Infants       int       `json:"infants"`
	Tickets       int       `json:"tickets"`
	HasPets       bool      `json:"hasPets"`
	PetType       *string   `json:"petType"`
	VehicleType   string    `json:"vehicleType"`
	Paid          bool      `json:"paid"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	Locale        string    `json:"locale"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (b *Booking) TicketPayload() TicketPayload {
	s := b.Snapshot()
	return TicketPayload{
		ID:            s.ID.String(),
		Name:          s.Name,
		Email:         s.Email,
		Destination:   s.Destination,
		DepartureDate: s.DepartureDate,
		ReturnDate:    s.ReturnDate,
		TripType:      s.TripType,
		Adults:        s.Adults,
		Seniors:       s.Seniors,
		Children:      s.Children,
		Infants:       s.Infants,
		Tickets:       s.Tickets,
		HasPets:       s.HasPets,
		PetType:       s.PetType,
		VehicleType:   s.VehicleType,
		Paid:          s.Paid,
		PaymentMethod: s.PaymentMethod,
		PaymentStatus: s.PaymentStatus,
		Locale:        s.Locale,
		CreatedAt:     s.CreatedAt,
	}
}
