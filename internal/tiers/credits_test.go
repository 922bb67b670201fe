package tiers

import (
	"testing"
	"time"

	"threadswap_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestPeriodExpired(t *testing.T) {
	t.Run("same month", func(t *testing.T) {
		assert.False(t, PeriodExpired(date(2025, time.March, 1), date(2025, time.March, 31)))
	})

	t.Run("next month", func(t *testing.T) {
		assert.True(t, PeriodExpired(date(2025, time.March, 31), date(2025, time.April, 1)))
	})

	t.Run("same month a year later", func(t *testing.T) {
		assert.True(t, PeriodExpired(date(2024, time.March, 15), date(2025, time.March, 15)))
	})
}

func TestCreditStatus(t *testing.T) {
	t.Run("basic user mid-period with credits spent", func(t *testing.T) {
		state := CreditStatus(models.TierBasic, 10, date(2025, time.June, 3), date(2025, time.June, 20))

		assert.False(t, state.HasCredits)
		assert.Equal(t, 0, state.Remaining)
		assert.Equal(t, 10, state.Limit)
	})

	t.Run("stale period counts as zero used", func(t *testing.T) {
		state := CreditStatus(models.TierBasic, 10, date(2025, time.May, 3), date(2025, time.June, 1))

		assert.True(t, state.HasCredits)
		assert.Equal(t, 10, state.Remaining)
	})

	t.Run("partial usage", func(t *testing.T) {
		state := CreditStatus(models.TierStandard, 12, date(2025, time.June, 1), date(2025, time.June, 15))

		assert.True(t, state.HasCredits)
		assert.Equal(t, 38, state.Remaining)
		assert.Equal(t, 50, state.Limit)
	})

	t.Run("overspend clamps to zero", func(t *testing.T) {
		state := CreditStatus(models.TierBasic, 14, date(2025, time.June, 1), date(2025, time.June, 15))

		assert.False(t, state.HasCredits)
		assert.Equal(t, 0, state.Remaining)
	})

	t.Run("unknown tier has no allowance", func(t *testing.T) {
		state := CreditStatus(models.Tier("platinum"), 0, date(2025, time.June, 1), date(2025, time.June, 15))

		assert.False(t, state.HasCredits)
		assert.Equal(t, 0, state.Limit)
	})

	t.Run("query is pure", func(t *testing.T) {
		start := date(2025, time.May, 3)
		// Two reads across the period boundary must agree with each other;
		// nothing here writes the stored counter.
		first := CreditStatus(models.TierBasic, 7, start, date(2025, time.June, 1))
		second := CreditStatus(models.TierBasic, 7, start, date(2025, time.June, 1))

		assert.Equal(t, first, second)
	})
}
