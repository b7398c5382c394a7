//go:build unit

package booking_test

import (
	"encoding/json"
	"testing"

	"travel-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in      string
		cents   int64
		wantErr bool
	}{
		{in: "155", cents: 15500},
		{in: "155.00", cents: 15500},
		{in: "155.5", cents: 15550},
		{in: "0.05", cents: 5},
		{in: ".5", cents: 50},
		{in: "155.000", cents: 15500},
		{in: "-3.20", cents: -320},
		{in: "155.001", wantErr: true},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "-", wantErr: true},
		{in: "1,5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "+-5", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := booking.ParseMoney(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, booking.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cents, m.Cents())
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	t.Run("marshals as a two-decimal number", func(t *testing.T) {
		out, err := json.Marshal(map[string]booking.Money{"amount": booking.NewMoney(15500)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":155.00}`, string(out))
		assert.Contains(t, string(out), "155.00")
	})

	t.Run("unmarshals numbers and strings", func(t *testing.T) {
		for _, raw := range []string{`155`, `155.0`, `"155.00"`, `1.55e2`} {
			var m booking.Money
			require.NoError(t, json.Unmarshal([]byte(raw), &m), raw)
			assert.Equal(t, int64(15500), m.Cents(), raw)
		}
	})

	t.Run("rejects sub-cent precision", func(t *testing.T) {
		var m booking.Money
		assert.Error(t, json.Unmarshal([]byte(`155.005`), &m))
	})
}

func TestCurrency(t *testing.T) {
	c, err := booking.NewCurrency(" EUR ")
	require.NoError(t, err)
	assert.Equal(t, booking.Currency("eur"), c)
	assert.Equal(t, "EUR", c.Upper())
	assert.True(t, c.Equal("Eur"))
	assert.False(t, c.Equal("usd"))

	_, err = booking.NewCurrency("euro")
	assert.ErrorIs(t, err, booking.ErrInvalidCurrency)
	_, err = booking.NewCurrency("e1r")
	assert.ErrorIs(t, err, booking.ErrInvalidCurrency)
}

func TestFlatRateCalculator(t *testing.T) {
	calc := booking.NewDefaultPriceCalculator()

	cases := []struct {
		name    string
		tickets int
		want    int64
	}{
		{name: "three tickets", tickets: 3, want: 15500},
		{name: "single ticket", tickets: 1, want: 5500},
		{name: "zero tickets is the fee only", tickets: 0, want: 500},
		{name: "negative tickets are treated as zero", tickets: -4, want: 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, calc.ComputeTotal(tc.tickets).Cents())
		})
	}

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, calc.ComputeTotal(5), calc.ComputeTotal(5))
	})

	t.Run("custom tier", func(t *testing.T) {
		test := booking.NewFlatRateCalculator(booking.NewMoney(100), booking.NewMoney(0), booking.Currency("eur"))
		assert.Equal(t, "3.00", test.ComputeTotal(3).String())
		assert.Equal(t, booking.Currency("eur"), test.Currency())
	})
}
