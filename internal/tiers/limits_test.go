package tiers

import (
	"testing"

	"threadswap_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestLimitsFor(t *testing.T) {
	t.Run("basic tier caps", func(t *testing.T) {
		limits := LimitsFor(models.TierBasic)

		assert.Equal(t, 20, limits.MaxWardrobeItems)
		assert.Equal(t, 3, limits.MaxCollections)
		assert.Equal(t, 5, limits.MaxActiveSwaps)
		assert.False(t, limits.CanSellItems)
		assert.False(t, limits.CanCreateStorefront)
		assert.Equal(t, 10, limits.AICreditsPerMonth)
	})

	t.Run("standard tier can sell but not open a storefront", func(t *testing.T) {
		limits := LimitsFor(models.TierStandard)

		assert.True(t, limits.CanSellItems)
		assert.False(t, limits.CanCreateStorefront)
		assert.Equal(t, 50, limits.AICreditsPerMonth)
		assert.Equal(t, 5, limits.PromotionCodeCap)
	})

	t.Run("pro tier is unlimited on countable resources", func(t *testing.T) {
		limits := LimitsFor(models.TierPro)

		assert.Equal(t, Unlimited, limits.MaxWardrobeItems)
		assert.Equal(t, Unlimited, limits.MaxCollections)
		assert.Equal(t, Unlimited, limits.MaxActiveSwaps)
		assert.True(t, limits.CanCreateStorefront)
	})

	t.Run("unknown tier fails closed", func(t *testing.T) {
		limits := LimitsFor(models.Tier("platinum"))

		assert.Equal(t, Limits{}, limits)
		assert.False(t, limits.CanSellItems)
		assert.Equal(t, 0, limits.AICreditsPerMonth)
	})
}

func TestHasReachedLimit(t *testing.T) {
	t.Run("below the cap", func(t *testing.T) {
		assert.False(t, HasReachedLimit(models.TierBasic, ResourceWardrobeItems, 19))
	})

	t.Run("at the cap", func(t *testing.T) {
		assert.True(t, HasReachedLimit(models.TierBasic, ResourceWardrobeItems, 20))
	})

	t.Run("past the cap", func(t *testing.T) {
		assert.True(t, HasReachedLimit(models.TierBasic, ResourceActiveSwaps, 6))
	})

	t.Run("unlimited never trips", func(t *testing.T) {
		for _, count := range []int{0, 1, 100, 1 << 20} {
			assert.False(t, HasReachedLimit(models.TierPro, ResourceWardrobeItems, count),
				"count %d should never reach an unlimited cap", count)
		}
	})

	t.Run("unknown tier trips immediately", func(t *testing.T) {
		assert.True(t, HasReachedLimit(models.Tier("platinum"), ResourceWardrobeItems, 0))
	})

	t.Run("unknown resource trips immediately", func(t *testing.T) {
		assert.True(t, HasReachedLimit(models.TierBasic, Resource("teleports"), 0))
	})
}
