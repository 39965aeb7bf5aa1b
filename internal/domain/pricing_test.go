package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateClientPrice(t *testing.T) {
	tests := []struct {
		name            string
		regularPrice    float64
		discountPercent int
		want            float64
	}{
		{"no discount keeps regular price", 100.00, 0, 100.00},
		{"20 percent off 100", 100.00, 20, 80.00},
		{"full discount", 100.00, 100, 0.00},
		{"rounds half away from zero", 33.33, 25, 25.00},
		{"odd cents", 49.99, 35, 32.49},
		{"negative percent clamped to zero", 50.00, -10, 50.00},
		{"percent above 100 clamped", 50.00, 150, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateClientPrice(tt.regularPrice, tt.discountPercent))
		})
	}
}

func TestCalculateClientPriceNeverExceedsRegular(t *testing.T) {
	for percent := 0; percent <= 100; percent += 5 {
		got := CalculateClientPrice(123.45, percent)
		assert.LessOrEqual(t, got, 123.45, "percent=%d", percent)
	}
}

func TestCalculateAppointmentPrices(t *testing.T) {
	t.Run("tax and card fee included", func(t *testing.T) {
		prices := CalculateAppointmentPrices(80.00, DefaultTaxRate, DefaultCardFeeRate, true, true)

		assert.Equal(t, 80.00, prices.TotalClientPriceBeforeTax)
		assert.Equal(t, 7.10, prices.TotalTax)
		assert.Equal(t, 2.20, prices.TotalCardFee)
		assert.Equal(t, 89.30, prices.GrandTotal)
		assert.True(t, prices.HasTaxIncluded)
		assert.True(t, prices.HasCardFeeIncluded)
	})

	t.Run("tax only", func(t *testing.T) {
		prices := CalculateAppointmentPrices(80.00, DefaultTaxRate, DefaultCardFeeRate, true, false)

		assert.Equal(t, 7.10, prices.TotalTax)
		assert.Equal(t, 0.00, prices.TotalCardFee)
		assert.Equal(t, 87.10, prices.GrandTotal)
	})

	t.Run("nothing included", func(t *testing.T) {
		prices := CalculateAppointmentPrices(80.00, DefaultTaxRate, DefaultCardFeeRate, false, false)

		assert.Equal(t, 0.00, prices.TotalTax)
		assert.Equal(t, 0.00, prices.TotalCardFee)
		assert.Equal(t, 80.00, prices.GrandTotal)
	})

	t.Run("custom rates are respected", func(t *testing.T) {
		prices := CalculateAppointmentPrices(100.00, 0.10, 0.05, true, true)

		assert.Equal(t, 10.00, prices.TotalTax)
		assert.Equal(t, 5.00, prices.TotalCardFee)
		assert.Equal(t, 115.00, prices.GrandTotal)
	})
}

// Booking a $100 service on a Monday with the default discount table and
// no prior visits: first-booking 40% beats Monday 20%, so the client
// price is $60. With discounts configured to weekday-only 20% the
// breakdown is $80 + $7.10 tax + $2.20 card fee = $89.30.
func TestEndToEndMondayBooking(t *testing.T) {
	monday := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, Monday, ISOWeekday(monday))

	discounts := DefaultDiscounts(1)
	discounts.IsConfigured = true
	discounts.FirstBookingPercent = 0
	discounts.RebookWithin1WeekPercent = 0
	discounts.RebookWithin2WeeksPercent = 0

	percent := discounts.ApplicablePercent(monday, VisitHistory{})
	assert.Equal(t, 20, percent)

	clientPrice := CalculateClientPrice(100.00, percent)
	assert.Equal(t, 80.00, clientPrice)

	prices := CalculateAppointmentPrices(clientPrice, DefaultTaxRate, DefaultCardFeeRate, true, true)
	assert.Equal(t, 7.10, prices.TotalTax)
	assert.Equal(t, 2.20, prices.TotalCardFee)
	assert.Equal(t, 89.30, prices.GrandTotal)
}
