package payments

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommission(t *testing.T) {
	tests := []struct {
		amount int64
		rate   float64
		want   int64
	}{
		{10000, 10, 1000},
		{10000, 15, 1500},
		{999, 10, 100},   // 99.9 rounds up
		{994, 10, 99},    // 99.4 rounds down
		{995, 10, 100},   // 99.5 rounds half-up
		{1, 10, 0},       // 0.1 rounds down
		{5, 10, 1},       // 0.5 rounds half-up
		{10000, 0, 0},
		{0, 15, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d at %.1f%%", tt.amount, tt.rate), func(t *testing.T) {
			assert.Equal(t, tt.want, Commission(tt.amount, tt.rate))
		})
	}
}

func TestCommissionRoundingBound(t *testing.T) {
	// Splitting a rate between two parties may drift from a single combined
	// cut by at most one minor unit.
	amounts := []int64{1, 7, 99, 101, 995, 12345, 99999}
	rates := []float64{10, 15, 25, 33.3}

	for _, amount := range amounts {
		for _, rate := range rates {
			split := Commission(amount, rate) + Commission(amount, 100-rate)
			diff := split - amount
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, int64(1),
				"amount %d rate %.1f: split %d", amount, rate, split)
		}
	}
}

func TestSplitSale(t *testing.T) {
	t.Run("platform and creator fees computed on the gross price", func(t *testing.T) {
		breakdown := SplitSale(10000, 10, 15)

		assert.Equal(t, int64(1000), breakdown.PlatformFeeCents)
		assert.Equal(t, int64(1500), breakdown.CreatorFeeCents)
		assert.Equal(t, int64(2500), breakdown.TotalCommissionCents)
		assert.Equal(t, int64(7500), breakdown.SellerReceivesCents)
	})

	t.Run("components always sum to the price", func(t *testing.T) {
		for _, price := range []int64{1, 99, 995, 10001, 123457} {
			b := SplitSale(price, 10, 15)
			assert.Equal(t, price, b.TotalCommissionCents+b.SellerReceivesCents,
				"price %d", price)
		}
	})
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$75.00", FormatCurrency(7500, "usd"))
	assert.Equal(t, "$0.05", FormatCurrency(5, "usd"))
	assert.Equal(t, "-$1.23", FormatCurrency(-123, "usd"))
	assert.Equal(t, "€10.00", FormatCurrency(1000, "eur"))
	assert.Equal(t, "£10.00", FormatCurrency(1000, "gbp"))
}
