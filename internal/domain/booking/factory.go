package booking

import (
	"fmt"
	"strings"
)

// Draft is a booking request after transport decoding. Numeric fields are
// already defaulted by the caller; string fields are taken as submitted.
type Draft struct {
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
}

type normalizedDraft struct {
	name          string
	email         string
	destination   string
	departureDate string
	returnDate    *string
	tripType      TripType
	passengers    Passengers
	petType       *PetType
	vehicleType   VehicleType
	locale        Locale
	paymentMethod PaymentMethod
}

// normalize trims and defaults the draft and checks every field rule,
// reporting all violations together.
func (d Draft) normalize() (normalizedDraft, error) {
	verr := &ValidationError{}
	n := normalizedDraft{
		name:          strings.TrimSpace(d.Name),
		email:         strings.TrimSpace(d.Email),
		destination:   strings.TrimSpace(d.Destination),
		departureDate: strings.TrimSpace(d.DepartureDate),
		tripType:      TripType(strings.TrimSpace(d.TripType)),
		passengers:    NewPassengers(d.Adults, d.Seniors, d.Children, d.Infants),
		vehicleType:   VehicleType(strings.TrimSpace(d.VehicleType)),
		locale:        Locale(strings.TrimSpace(d.Locale)),
		paymentMethod: PaymentMethod(strings.TrimSpace(d.PaymentMethod)),
	}

	if n.name == "" {
		verr.add("name", "name is required")
	}
	switch {
	case n.email == "":
		verr.add("email", "email is required")
	case !IsValidEmail(n.email):
		verr.add("email", "email is invalid")
	}
	if n.destination == "" {
		verr.add("destination", "destination is required")
	}

	departure, departureOK := parseTravelDate(n.departureDate)
	switch {
	case n.departureDate == "":
		verr.add("departureDate", "departure date is required")
	case !departureOK:
		verr.add("departureDate", "departure date is invalid")
	}

	if n.tripType == "" {
		n.tripType = TripOneWay
	}
	if !n.tripType.IsValid() {
		verr.add("tripType", "trip type must be one-way or round-trip")
	}
	if n.tripType == TripRoundTrip {
		ret := strings.TrimSpace(d.ReturnDate)
		returnAt, returnOK := parseTravelDate(ret)
		switch {
		case ret == "":
			verr.add("returnDate", "return date is required for round trips")
		case !returnOK:
			verr.add("returnDate", "return date is invalid")
		case departureOK && returnAt.Before(departure):
			verr.add("returnDate", "return date must not be before departure date")
		default:
			n.returnDate = &ret
		}
	}

	p := n.passengers
	countsOK := checkPassengerCount(verr, "adults", p.Adults(), 1, "at least one adult is required")
	countsOK = checkPassengerCount(verr, "seniors", p.Seniors(), 0, "seniors must not be negative") && countsOK
	countsOK = checkPassengerCount(verr, "children", p.Children(), 0, "children must not be negative") && countsOK
	countsOK = checkPassengerCount(verr, "infants", p.Infants(), 0, "infants must not be negative") && countsOK
	// the sum is only safe to take once every count is bounded
	if countsOK && p.Tickets() < 1 {
		verr.add("tickets", "at least one passenger is required")
	}

	if d.HasPets {
		pet := PetType(strings.TrimSpace(d.PetType))
		switch {
		case pet == "":
			verr.add("petType", "pet type is required when travelling with pets")
		case !pet.IsValid():
			verr.add("petType", "pet type is invalid")
		default:
			n.petType = &pet
		}
	}

	if n.vehicleType == "" {
		n.vehicleType = VehicleNone
	}
	if !n.vehicleType.IsValid() {
		verr.add("vehicleType", "vehicle type is invalid")
	}

	if n.locale == "" {
		n.locale = DefaultLocale
	}
	if !n.locale.IsValid() {
		verr.add("locale", "locale is not supported")
	}

	if n.paymentMethod == "" {
		n.paymentMethod = MethodNone
	}
	if !n.paymentMethod.IsValid() {
		verr.add("paymentMethod", "payment method is invalid")
	}

	if err := verr.orNil(); err != nil {
		return normalizedDraft{}, err
	}
	return n, nil
}

func checkPassengerCount(verr *ValidationError, field string, n, lowest int, belowMsg string) bool {
	switch {
	case n < lowest:
		verr.add(field, belowMsg)
	case n > MaxPassengersPerCategory:
		verr.add(field, fmt.Sprintf("%s must not exceed %d", field, MaxPassengersPerCategory))
	default:
		return true
	}
	return false
}
