package domain

import "math"

// Default rates; both are injectable through configuration so that
// historical price breakdowns stay reproducible after a rate change
const (
	DefaultTaxRate     = 0.08875
	DefaultCardFeeRate = 0.0275
)

// AppointmentPrices is the computed price breakdown of an appointment.
// It is not persisted: the include flags are carried alongside so the
// breakdown can be rebuilt for any historical appointment.
type AppointmentPrices struct {
	TotalClientPriceBeforeTax float64
	TotalTax                  float64
	TotalCardFee              float64
	GrandTotal                float64

	HasTaxIncluded     bool
	HasCardFeeIncluded bool
}

// RoundToCents rounds a price to the currency's minor unit,
// half away from zero
func RoundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateClientPrice applies a discount percentage to a regular price.
// The result is rounded to cents and never exceeds the regular price
// for percentages in [0, 100].
func CalculateClientPrice(regularPrice float64, discountPercent int) float64 {
	p := ClampPercent(discountPercent)
	return RoundToCents(regularPrice * (1 - float64(p)/100))
}

// CalculateAppointmentPrices computes the aggregate breakdown from the
// total client price before tax. Pure and deterministic: the two rates
// are the only inputs besides the total and the flags.
func CalculateAppointmentPrices(
	totalBeforeTax float64,
	taxRate float64,
	cardFeeRate float64,
	includeTax bool,
	includeCardFee bool,
) AppointmentPrices {
	prices := AppointmentPrices{
		TotalClientPriceBeforeTax: RoundToCents(totalBeforeTax),
		HasTaxIncluded:            includeTax,
		HasCardFeeIncluded:        includeCardFee,
	}

	if includeTax {
		prices.TotalTax = RoundToCents(prices.TotalClientPriceBeforeTax * taxRate)
	}
	if includeCardFee {
		prices.TotalCardFee = RoundToCents(prices.TotalClientPriceBeforeTax * cardFeeRate)
	}

	prices.GrandTotal = RoundToCents(prices.TotalClientPriceBeforeTax + prices.TotalTax + prices.TotalCardFee)

	return prices
}
