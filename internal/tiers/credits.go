package tiers

import (
	"time"

	"threadswap_backend/internal/models"
)

// CreditState is the answer to "can this user spend an AI credit right now".
type CreditState struct {
	HasCredits bool `json:"has_credits"`
	Remaining  int  `json:"remaining"`
	Limit      int  `json:"limit"`
}

// PeriodExpired reports whether the stored credit period no longer covers
// now. The reset is keyed on calendar month+year equality, not elapsed
// duration: a period started on the last day of a month resets the next day.
func PeriodExpired(periodStart, now time.Time) bool {
	return periodStart.Month() != now.Month() || periodStart.Year() != now.Year()
}

// CreditStatus computes the credit state for a user. Pure query: when the
// stored period is stale the used counter is treated as zero, but nothing is
// written here — the stored counter is only reset by the next consuming
// mutation.
func CreditStatus(tier models.Tier, creditsUsed int, periodStart, now time.Time) CreditState {
	limit := LimitsFor(tier).AICreditsPerMonth

	effectiveUsed := creditsUsed
	if PeriodExpired(periodStart, now) {
		effectiveUsed = 0
	}

	remaining := limit - effectiveUsed
	if remaining < 0 {
		remaining = 0
	}

	return CreditState{
		HasCredits: remaining > 0,
		Remaining:  remaining,
		Limit:      limit,
	}
}
