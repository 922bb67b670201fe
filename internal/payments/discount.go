package payments

import "threadswap_backend/internal/models"

// ApplyDiscount returns the price after a promotion, floored at zero.
// Percent discounts round half-up on the discount amount, like commissions.
func ApplyDiscount(priceCents int64, discountType models.DiscountType, value int64) int64 {
	var discounted int64
	switch discountType {
	case models.DiscountPercent:
		discounted = priceCents - Commission(priceCents, float64(value))
	case models.DiscountFixed:
		discounted = priceCents - value
	default:
		return priceCents
	}

	if discounted < 0 {
		return 0
	}
	return discounted
}
