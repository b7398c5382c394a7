package booking

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

func (t TripType) String() string { return string(t) }

func (t TripType) IsValid() bool {
	switch t {
	case TripOneWay, TripRoundTrip:
		return true
	default:
		return false
	}
}

type VehicleType string

const (
	VehicleNone       VehicleType = "none"
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleBicycle    VehicleType = "bicycle"
)

func (v VehicleType) String() string { return string(v) }

func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleNone, VehicleCar, VehicleMotorcycle, VehicleBicycle:
		return true
	default:
		return false
	}
}

type PetType string

const (
	PetDog   PetType = "dog"
	PetCat   PetType = "cat"
	PetBird  PetType = "bird"
	PetOther PetType = "other"
)

func (p PetType) String() string { return string(p) }

func (p PetType) IsValid() bool {
	switch p {
	case PetDog, PetCat, PetBird, PetOther:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	MethodNone     PaymentMethod = "none"
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodStripe   PaymentMethod = "stripe"
	MethodPayPal   PaymentMethod = "paypal"
)

func (m PaymentMethod) String() string { return string(m) }

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodNone, MethodCash, MethodCard, MethodTransfer, MethodStripe, MethodPayPal:
		return true
	default:
		return false
	}
}

// IsOnline reports whether completion is confirmed by a payment provider
// rather than by an operator.
func (m PaymentMethod) IsOnline() bool {
	return m == MethodStripe || m == MethodPayPal
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
)

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

type Locale string

const (
	LocaleSpanish Locale = "es"
	LocaleArabic  Locale = "ar"
	LocaleEnglish Locale = "en"
	LocaleFrench  Locale = "fr"
)

// DefaultLocale is the site's primary language.
const DefaultLocale = LocaleArabic

func (l Locale) String() string { return string(l) }

func (l Locale) IsValid() bool {
	switch l {
	case LocaleSpanish, LocaleArabic, LocaleEnglish, LocaleFrench:
		return true
	default:
		return false
	}
}

type EventKind string

const (
	EventCreated EventKind = "booking.created"
	EventPaid    EventKind = "booking.paid"
)
