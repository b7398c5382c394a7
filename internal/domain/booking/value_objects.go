package booking

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCurrency = errors.New("invalid currency")
)

// Money is an amount in minor units (cents). It serialises as a
// major-unit decimal with two fraction digits, e.g. 155.00.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// ParseMoney parses a major-unit decimal such as "155", "155.5" or "155.00".
// More than two significant fraction digits are rejected rather than rounded.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if !isDigits(whole) || !isDigits(frac) || (whole == "" && frac == "") {
		return Money{}, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > 2 {
		return Money{}, ErrInvalidAmount
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return Money{cents: cents}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Mul(n int64) Money {
	return Money{cents: m.cents * n}
}

func (m Money) Equal(other Money) bool {
	return m.cents == other.cents
}

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) String() string {
	c := m.cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ErrInvalidAmount
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Currency is a lower-case ISO 4217 code.
type Currency string

func NewCurrency(s string) (Currency, error) {
	c := strings.ToLower(strings.TrimSpace(s))
	if len(c) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'a' || r > 'z' {
			return "", ErrInvalidCurrency
		}
	}
	return Currency(c), nil
}

func (c Currency) String() string { return string(c) }

func (c Currency) Upper() string { return strings.ToUpper(string(c)) }

func (c Currency) Equal(other string) bool {
	return strings.EqualFold(string(c), strings.TrimSpace(other))
}

// MaxPassengersPerCategory bounds each passenger count on a single booking.
const MaxPassengersPerCategory = 99

type Passengers struct {
	adults   int
	seniors  int
	children int
	infants  int
}

func NewPassengers(adults, seniors, children, infants int) Passengers {
	return Passengers{adults: adults, seniors: seniors, children: children, infants: infants}
}

func (p Passengers) Adults() int   { return p.adults }
func (p Passengers) Seniors() int  { return p.seniors }
func (p Passengers) Children() int { return p.children }
func (p Passengers) Infants() int  { return p.infants }

func (p Passengers) Tickets() int {
	return p.adults + p.seniors + p.children + p.infants
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// travel dates arrive from a date input; full timestamps are tolerated
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseTravelDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
