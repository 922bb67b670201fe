package payments

import (
	"fmt"
	"math"
)

// Commission computes a percentage cut of an amount in minor currency units,
// rounded half-up on the smallest unit.
func Commission(amountCents int64, ratePercent float64) int64 {
	return int64(math.Floor(float64(amountCents)*ratePercent/100 + 0.5))
}

// SaleBreakdown is the money split for one sale. Platform and creator
// commissions are each computed on the gross price and summed, never
// compounded, so rounding error is bounded to ±1 unit per component.
type SaleBreakdown struct {
	PriceCents           int64 `json:"price_cents"`
	PlatformFeeCents     int64 `json:"platform_fee_cents"`
	CreatorFeeCents      int64 `json:"creator_fee_cents"`
	TotalCommissionCents int64 `json:"total_commission_cents"`
	SellerReceivesCents  int64 `json:"seller_receives_cents"`
}

// SplitSale computes the full commission breakdown for a gross price.
func SplitSale(priceCents int64, platformRate, creatorRate float64) SaleBreakdown {
	platformFee := Commission(priceCents, platformRate)
	creatorFee := Commission(priceCents, creatorRate)
	total := platformFee + creatorFee

	return SaleBreakdown{
		PriceCents:           priceCents,
		PlatformFeeCents:     platformFee,
		CreatorFeeCents:      creatorFee,
		TotalCommissionCents: total,
		SellerReceivesCents:  priceCents - total,
	}
}

// FormatCurrency renders minor units as a display string. One-way: nothing
// in the system ever parses this back.
func FormatCurrency(amountCents int64, currency string) string {
	sign := ""
	if amountCents < 0 {
		sign = "-"
		amountCents = -amountCents
	}

	symbol := "$"
	switch currency {
	case "eur":
		symbol = "€"
	case "gbp":
		symbol = "£"
	}

	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, amountCents/100, amountCents%100)
}
