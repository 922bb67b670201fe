package tiers

import "threadswap_backend/internal/models"

// Unlimited is the sentinel limit value meaning no cap.
const Unlimited = -1

// Resource names a tier-limited feature.
type Resource string

const (
	ResourceWardrobeItems    Resource = "wardrobe_items"
	ResourceCollections      Resource = "collections"
	ResourceActiveSwaps      Resource = "active_swaps"
	ResourcePromotionCodes   Resource = "promotion_codes"
	ResourceFeaturedListings Resource = "featured_listings"
)

// Limits is the full feature-limit set for one membership tier.
type Limits struct {
	MaxWardrobeItems    int  `json:"max_wardrobe_items"`
	MaxCollections      int  `json:"max_collections"`
	MaxActiveSwaps      int  `json:"max_active_swaps"`
	CanSellItems        bool `json:"can_sell_items"`
	CanCreateStorefront bool `json:"can_create_storefront"`
	AICreditsPerMonth   int  `json:"ai_credits_per_month"`
	PromotionCodeCap    int  `json:"promotion_code_cap"`
	FeaturedListingCap  int  `json:"featured_listing_cap"`
}

var tierLimits = map[models.Tier]Limits{
	models.TierBasic: {
		MaxWardrobeItems:    20,
		MaxCollections:      3,
		MaxActiveSwaps:      5,
		CanSellItems:        false,
		CanCreateStorefront: false,
		AICreditsPerMonth:   10,
		PromotionCodeCap:    0,
		FeaturedListingCap:  0,
	},
	models.TierStandard: {
		MaxWardrobeItems:    100,
		MaxCollections:      15,
		MaxActiveSwaps:      20,
		CanSellItems:        true,
		CanCreateStorefront: false,
		AICreditsPerMonth:   50,
		PromotionCodeCap:    5,
		FeaturedListingCap:  3,
	},
	models.TierPro: {
		MaxWardrobeItems:    Unlimited,
		MaxCollections:      Unlimited,
		MaxActiveSwaps:      Unlimited,
		CanSellItems:        true,
		CanCreateStorefront: true,
		AICreditsPerMonth:   200,
		PromotionCodeCap:    Unlimited,
		FeaturedListingCap:  10,
	},
}

// LimitsFor returns the limit set for a tier. An unknown tier maps to the
// zero-featured default: fail closed, never panic.
func LimitsFor(tier models.Tier) Limits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return Limits{}
}

// limitFor resolves the numeric cap of one resource.
func limitFor(limits Limits, resource Resource) int {
	switch resource {
	case ResourceWardrobeItems:
		return limits.MaxWardrobeItems
	case ResourceCollections:
		return limits.MaxCollections
	case ResourceActiveSwaps:
		return limits.MaxActiveSwaps
	case ResourcePromotionCodes:
		return limits.PromotionCodeCap
	case ResourceFeaturedListings:
		return limits.FeaturedListingCap
	default:
		return 0
	}
}

// HasReachedLimit reports whether currentCount has hit the tier's cap for a
// resource. Always false for the Unlimited sentinel.
func HasReachedLimit(tier models.Tier, resource Resource, currentCount int) bool {
	limit := limitFor(LimitsFor(tier), resource)
	if limit == Unlimited {
		return false
	}
	return currentCount >= limit
}
