package request

import (
	"bytes"
	"strconv"
	"strings"

	"travel-booking/internal/domain/booking"
)

// LenientInt accepts a JSON number, a numeric string or null.
// Anything unparsable is treated as absent so the documented default applies.
type LenientInt struct {
	Value int
	Set   bool
}

func Int(v int) LenientInt { return LenientInt{Value: v, Set: true} }

func (n *LenientInt) UnmarshalJSON(data []byte) error {
	*n = LenientInt{}
	s := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if s == "" || s == "null" {
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		*n = LenientInt{Value: v, Set: true}
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		*n = LenientInt{Value: int(f), Set: true}
	}
	return nil
}

func (n LenientInt) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

func (n LenientInt) Or(def int) int {
	if !n.Set {
		return def
	}
	return n.Value
}

// LenientBool accepts true/false, "true"/"false", "on" and 0/1.
type LenientBool bool

func (b *LenientBool) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`))))
	switch s {
	case "true", "1", "on", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

type CreateBookingRequest struct {
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Destination   string      `json:"destination"`
	DepartureDate string      `json:"departureDate"`
	ReturnDate    *string     `json:"returnDate,omitempty"`
	TripType      string      `json:"tripType,omitempty"`
	Adults        LenientInt  `json:"adults"`
	Seniors       LenientInt  `json:"seniors"`
	Children      LenientInt  `json:"children"`
	Infants       LenientInt  `json:"infants"`
	HasPets       LenientBool `json:"hasPets"`
	PetType       *string     `json:"petType,omitempty"`
	VehicleType   string      `json:"vehicleType,omitempty"`
	Locale        string      `json:"locale,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	// Paid is accepted for compatibility with older clients and ignored.
	Paid *bool `json:"paid,omitempty"`
}

func (r *CreateBookingRequest) ToDraft() booking.Draft {
	d := booking.Draft{
		Name:          r.Name,
		Email:         r.Email,
		Destination:   r.Destination,
		DepartureDate: r.DepartureDate,
		TripType:      r.TripType,
		Adults:        r.Adults.Or(1),
		Seniors:       r.Seniors.Or(0),
		Children:      r.Children.Or(0),
		Infants:       r.Infants.Or(0),
		HasPets:       bool(r.HasPets),
		VehicleType:   r.VehicleType,
		Locale:        r.Locale,
		PaymentMethod: r.PaymentMethod,
	}
	if r.ReturnDate != nil {
		d.ReturnDate = *r.ReturnDate
	}
	if r.PetType != nil {
		d.PetType = *r.PetType
	}
	return d
}
