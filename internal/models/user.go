package models

import "time"

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	DisplayName  string     `json:"display_name"`
	Bio          string     `json:"bio"`
	AvatarURL    string     `json:"avatar_url"`
	Tier         Tier       `gorm:"type:varchar(20);default:'basic'" json:"tier"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// AI credit ledger: the stored counter is only reset when a
	// credit-consuming action next writes it (lazy calendar-month reset).
	AICreditsUsed      int       `gorm:"default:0" json:"ai_credits_used"`
	CreditsPeriodStart time.Time `gorm:"default:now()" json:"credits_period_start"`
	GeminiAPIKey       string    `json:"-"`

	// Shipping address
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `gorm:"default:'US'" json:"country"`

	MarketingConsent bool `gorm:"default:false" json:"marketing_consent"`

	// Relations
	CreatorProfile *CreatorProfile `gorm:"foreignKey:UserID" json:"creator_profile,omitempty"`
	RefreshTokens  []RefreshToken  `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
