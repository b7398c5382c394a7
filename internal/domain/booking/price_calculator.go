package booking

type PriceCalculator interface {
	ComputeTotal(tickets int) Money
	Currency() Currency
}

// FlatRateCalculator charges a per-ticket price plus a fixed service fee per booking.
type FlatRateCalculator struct {
	UnitPrice  Money
	ServiceFee Money
	currency   Currency
}

func NewFlatRateCalculator(unitPrice, serviceFee Money, currency Currency) *FlatRateCalculator {
	return &FlatRateCalculator{
		UnitPrice:  unitPrice,
		ServiceFee: serviceFee,
		currency:   currency,
	}
}

func NewDefaultPriceCalculator() *FlatRateCalculator {
	return NewFlatRateCalculator(NewMoney(5000), NewMoney(500), Currency("eur"))
}

func (c *FlatRateCalculator) ComputeTotal(tickets int) Money {
	if tickets < 0 {
		tickets = 0
	}
	return c.UnitPrice.Mul(int64(tickets)).Add(c.ServiceFee)
}

func (c *FlatRateCalculator) Currency() Currency {
	return c.currency
}
