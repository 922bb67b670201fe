package models

import "time"

// CreatorProfile is the one-to-one storefront record for a user, carrying
// branding and the connected payment-processor account.
type CreatorProfile struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	StoreName string `gorm:"not null" json:"store_name"`
	Tagline   string `json:"tagline"`
	BannerURL string `json:"banner_url"`

	StripeAccountID    string  `json:"-"`
	PayoutsEnabled     bool    `gorm:"default:false" json:"payouts_enabled"`
	CommissionPercent  float64 `gorm:"default:15" json:"commission_percent"`
	OnboardingComplete bool    `gorm:"default:false" json:"onboarding_complete"`

	Promotions []Promotion `gorm:"foreignKey:CreatorID" json:"promotions,omitempty"`
}

// Promotion is a discount code scoped to one creator. Code uniqueness is
// enforced per creator, not globally.
type Promotion struct {
	BaseModel
	CreatorID    string       `gorm:"type:uuid;not null;uniqueIndex:idx_creator_code" json:"creator_id"`
	Code         string       `gorm:"not null;uniqueIndex:idx_creator_code" json:"code"`
	DiscountType DiscountType `gorm:"type:varchar(20);not null" json:"discount_type"`
	// Percent value in [1,100] for percent type, cents for fixed type
	DiscountValue int64      `gorm:"not null" json:"discount_value"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	UsageCap      int        `gorm:"default:0" json:"usage_cap"` // 0 = uncapped
	UsedCount     int        `gorm:"default:0" json:"used_count"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
}
