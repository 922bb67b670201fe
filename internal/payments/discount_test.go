package payments

import (
	"testing"

	"threadswap_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	t.Run("percent discount", func(t *testing.T) {
		assert.Equal(t, int64(8000), ApplyDiscount(10000, models.DiscountPercent, 20))
	})

	t.Run("percent rounding matches commission rounding", func(t *testing.T) {
		// 15% of 999 is 149.85, rounds half-up to 150.
		assert.Equal(t, int64(849), ApplyDiscount(999, models.DiscountPercent, 15))
	})

	t.Run("fixed discount", func(t *testing.T) {
		assert.Equal(t, int64(7500), ApplyDiscount(10000, models.DiscountFixed, 2500))
	})

	t.Run("fixed discount floors at zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ApplyDiscount(1000, models.DiscountFixed, 5000))
	})

	t.Run("full percent discount reaches zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ApplyDiscount(1000, models.DiscountPercent, 100))
	})

	t.Run("unknown type leaves the price unchanged", func(t *testing.T) {
		assert.Equal(t, int64(1000), ApplyDiscount(1000, models.DiscountType("loyalty"), 50))
	})
}
