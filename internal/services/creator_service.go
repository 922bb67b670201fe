package services

import (
	"errors"
	"strings"
	"time"

	"threadswap_backend/internal/config"
	"threadswap_backend/internal/logger"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/payments"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/tiers"
	"threadswap_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type CreateStorefrontInput struct {
	StoreName string `json:"store_name" validate:"required,min=2,max=80"`
	Tagline   string `json:"tagline" validate:"max=160"`
	BannerURL string `json:"banner_url" validate:"omitempty,url"`
}

type UpdateStorefrontInput struct {
	StoreName *string `json:"store_name,omitempty" validate:"omitempty,min=2,max=80"`
	Tagline   *string `json:"tagline,omitempty" validate:"omitempty,max=160"`
	BannerURL *string `json:"banner_url,omitempty" validate:"omitempty,url"`
}

type CreatePromotionInput struct {
	Code          string     `json:"code" validate:"required,min=3,max=24,alphanum"`
	DiscountType  string     `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue int64      `json:"discount_value" validate:"required,min=1"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	UsageCap      int        `json:"usage_cap" validate:"min=0"`
}

type UpdatePromotionInput struct {
	DiscountValue *int64     `json:"discount_value,omitempty" validate:"omitempty,min=1"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	UsageCap      *int       `json:"usage_cap,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

type PurchaseInput struct {
	ItemID        string `json:"item_id" validate:"required,uuid"`
	PromotionCode string `json:"promotion_code" validate:"omitempty,min=3,max=24"`
}

// PurchaseResult carries the client-side payment handle plus the money split
// the buyer was quoted.
type PurchaseResult struct {
	PaymentIntentID string                 `json:"payment_intent_id"`
	ClientSecret    string                 `json:"client_secret"`
	Breakdown       payments.SaleBreakdown `json:"breakdown"`
	DiscountCents   int64                  `json:"discount_cents"`
}

// OnboardingStatus mirrors the connected account's progress.
type OnboardingStatus struct {
	StripeConnected    bool `json:"stripe_connected"`
	OnboardingComplete bool `json:"onboarding_complete"`
	PayoutsEnabled     bool `json:"payouts_enabled"`
}

type CreatorService interface {
	CreateStorefront(userID string, tier models.Tier, input CreateStorefrontInput) (*models.CreatorProfile, error)
	GetStorefront(creatorID string) (*models.CreatorProfile, error)
	GetOwnStorefront(userID string) (*models.CreatorProfile, error)
	UpdateStorefront(userID string, input UpdateStorefrontInput) (*models.CreatorProfile, error)

	// Stripe Connect lifecycle
	StartOnboarding(userID string) (url string, err error)
	RefreshOnboardingStatus(userID string) (*OnboardingStatus, error)
	ListPayouts(userID string, limit int) ([]payments.PayoutInfo, error)
	RequestPayout(userID string, amountCents int64) (payoutID string, err error)

	// Promotions
	CreatePromotion(userID string, tier models.Tier, input CreatePromotionInput) (*models.Promotion, error)
	ListPromotions(userID string) ([]models.Promotion, error)
	UpdatePromotion(userID, promotionID string, input UpdatePromotionInput) (*models.Promotion, error)
	DeletePromotion(userID, promotionID string) error

	// Purchase creates the payment for a for-sale item, applying an optional
	// promotion code.
	Purchase(buyerID string, input PurchaseInput) (*PurchaseResult, error)
}

type creatorService struct {
	creators repositories.CreatorRepository
	wardrobe repositories.WardrobeRepository
	users    repositories.UserRepository
	provider payments.Provider
}

func NewCreatorService(
	creators repositories.CreatorRepository,
	wardrobe repositories.WardrobeRepository,
	users repositories.UserRepository,
	provider payments.Provider,
) CreatorService {
	return &creatorService{
		creators: creators,
		wardrobe: wardrobe,
		users:    users,
		provider: provider,
	}
}

func (s *creatorService) CreateStorefront(userID string, tier models.Tier, input CreateStorefrontInput) (*models.CreatorProfile, error) {
	if !tiers.LimitsFor(tier).CanCreateStorefront {
		return nil, apperrors.ErrTierLimit
	}

	profile := &models.CreatorProfile{
		UserID:    userID,
		StoreName: input.StoreName,
		Tagline:   input.Tagline,
		BannerURL: input.BannerURL,
	}
	if err := s.creators.Create(profile); err != nil {
		if errors.Is(err, repositories.ErrCreatorAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("storefront created", "user_id", userID, "store_name", input.StoreName)
	return profile, nil
}

func (s *creatorService) GetStorefront(creatorID string) (*models.CreatorProfile, error) {
	profile, err := s.creators.FindByID(creatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *creatorService) GetOwnStorefront(userID string) (*models.CreatorProfile, error) {
	profile, err := s.creators.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *creatorService) UpdateStorefront(userID string, input UpdateStorefrontInput) (*models.CreatorProfile, error) {
	profile, err := s.GetOwnStorefront(userID)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil {
		profile.StoreName = *input.StoreName
	}
	if input.Tagline != nil {
		profile.Tagline = *input.Tagline
	}
	if input.BannerURL != nil {
		profile.BannerURL = *input.BannerURL
	}

	if err := s.creators.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

// Stripe Connect

func (s *creatorService) StartOnboarding(userID string) (string, error) {
	profile, err := s.GetOwnStorefront(userID)
	if err != nil {
		return "", err
	}

	accountID := profile.StripeAccountID
	if accountID == "" {
		user, err := s.users.FindByID(userID)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		accountID, err = s.provider.CreateConnectedAccount(user.Email)
		if err != nil {
			logger.Error("connected account creation failed", "user_id", userID, "error", err)
			return "", apperrors.ErrPaymentProviderError
		}
		if err := s.creators.UpdateStripeStatus(profile.ID, accountID, false, false); err != nil {
			return "", apperrors.InternalError(err)
		}
	}

	url, err := s.provider.CreateOnboardingLink(accountID)
	if err != nil {
		logger.Error("onboarding link creation failed", "user_id", userID, "error", err)
		return "", apperrors.ErrPaymentProviderError
	}
	return url, nil
}

func (s *creatorService) RefreshOnboardingStatus(userID string) (*OnboardingStatus, error) {
	profile, err := s.GetOwnStorefront(userID)
	if err != nil {
		return nil, err
	}
	if profile.StripeAccountID == "" {
		return &OnboardingStatus{}, nil
	}

	detailsSubmitted, payoutsEnabled, err := s.provider.AccountStatus(profile.StripeAccountID)
	if err != nil {
		logger.Error("account status lookup failed", "user_id", userID, "error", err)
		return nil, apperrors.ErrPaymentProviderError
	}

	if err := s.creators.UpdateStripeStatus(profile.ID, profile.StripeAccountID, detailsSubmitted, payoutsEnabled); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &OnboardingStatus{
		StripeConnected:    true,
		OnboardingComplete: detailsSubmitted,
		PayoutsEnabled:     payoutsEnabled,
	}, nil
}

func (s *creatorService) ListPayouts(userID string, limit int) ([]payments.PayoutInfo, error) {
	profile, err := s.GetOwnStorefront(userID)
	if err != nil {
		return nil, err
	}
	if profile.StripeAccountID == "" {
		return nil, apperrors.ErrPaymentsNotOnboarded
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	payouts, err := s.provider.ListPayouts(profile.StripeAccountID, limit)
	if err != nil {
		logger.Error("payout listing failed", "user_id", userID, "error", err)
		return nil, apperrors.ErrPaymentProviderError
	}
	return payouts, nil
}

func (s *creatorService) RequestPayout(userID string, amountCents int64) (string, error) {
	if amountCents <= 0 {
		return "", apperrors.ValidationError("amount_cents must be positive")
	}

	profile, err := s.GetOwnStorefront(userID)
	if err != nil {
		return "", err
	}
	if profile.StripeAccountID == "" || !profile.PayoutsEnabled {
		return "", apperrors.ErrPaymentsNotOnboarded
	}

	payoutID, err := s.provider.CreatePayout(
		profile.StripeAccountID,
		amountCents,
		config.GetConfig().Stripe.Currency,
		uuid.NewString(),
	)
	if err != nil {
		logger.Error("payout creation failed", "user_id", userID, "error", err)
		return "", apperrors.ErrPaymentProviderError
	}

	logger.Info("payout requested", "user_id", userID, "payout_id", payoutID, "amount_cents", amountCents)
	return payoutID, nil
}

// Promotions

func (s *creatorService) CreatePromotion(userID string, tier models.Tier, input CreatePromotionInput) (*models.Promotion, error) {
	profile, err := s.GetOwnStorefront(userID)
	if err != nil {
		return nil, err
	}

	count, err := s.creators.CountActivePromotions(profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if tiers.HasReachedLimit(tier, tiers.ResourcePromotionCodes, int(count)) {
		return nil, apperrors.ErrTierLimit
	}

	discountType := models.DiscountType(input.DiscountType)
	if discountType == models.DiscountPercent && input.DiscountValue > 100 {
		return nil, apperrors.ValidationError("percent discount cannot exceed 100")
	}

	promotion := &models.Promotion{
		CreatorID:     profile.ID,
		Code:          strings.ToUpper(input.Code),
		DiscountType:  discountType,
		DiscountValue: input.DiscountValue,
		ExpiresAt:     input.ExpiresAt,
		UsageCap:      input.UsageCap,
		IsActive:      true,
	}
	if err := s.creators.CreatePromotion(promotion); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return promotion, nil
}

func (s *creatorService) ListPromotions(userID string) ([]models.Promotion, error) {
	profile, err := s.GetOwnStorefront(userID)
	if err != nil {
		return nil, err
	}
	promotions, err := s.creators.ListPromotions(profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return promotions, nil
}

func (s *creatorService) UpdatePromotion(userID, promotionID string, input UpdatePromotionInput) (*models.Promotion, error) {
	promotion, err := s.ownedPromotion(userID, promotionID)
	if err != nil {
		return nil, err
	}

	if input.DiscountValue != nil {
		if promotion.DiscountType == models.DiscountPercent && *input.DiscountValue > 100 {
			return nil, apperrors.ValidationError("percent discount cannot exceed 100")
		}
		promotion.DiscountValue = *input.DiscountValue
	}
	if input.ExpiresAt != nil {
		promotion.ExpiresAt = input.ExpiresAt
	}
	if input.UsageCap != nil {
		promotion.UsageCap = *input.UsageCap
	}
	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}

	if err := s.creators.UpdatePromotion(promotion); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return promotion, nil
}

func (s *creatorService) DeletePromotion(userID, promotionID string) error {
	if _, err := s.ownedPromotion(userID, promotionID); err != nil {
		return err
	}
	if err := s.creators.DeletePromotion(promotionID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *creatorService) ownedPromotion(userID, promotionID string) (*models.Promotion, error) {
	profile, err := s.GetOwnStorefront(userID)
	if err != nil {
		return nil, err
	}
	promotion, err := s.creators.FindPromotion(promotionID)
	if err != nil {
		if errors.Is(err, repositories.ErrPromotionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if promotion.CreatorID != profile.ID {
		return nil, apperrors.ErrNotFound(repositories.ErrPromotionNotFound)
	}
	return promotion, nil
}

// Purchase

func (s *creatorService) Purchase(buyerID string, input PurchaseInput) (*PurchaseResult, error) {
	item, err := s.wardrobe.FindByID(input.ItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if item.OwnerID == buyerID {
		return nil, apperrors.ErrInvalidOperation("payments", "you cannot buy your own item")
	}
	if item.Status != models.ItemStatusAvailable {
		return nil, apperrors.ErrItemNotAvailable
	}
	if !item.ForSale || item.SalePriceCents <= 0 {
		return nil, apperrors.ErrItemNotForSale
	}

	seller, err := s.creators.FindByUserID(item.OwnerID)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrStorefrontRequired
		}
		return nil, apperrors.InternalError(err)
	}
	if seller.StripeAccountID == "" || !seller.OnboardingComplete {
		return nil, apperrors.ErrPaymentsNotOnboarded
	}

	price := item.SalePriceCents
	var discount int64
	var promotion *models.Promotion
	if input.PromotionCode != "" {
		promotion, err = s.redeemablePromotion(seller.ID, input.PromotionCode)
		if err != nil {
			return nil, err
		}
		discounted := payments.ApplyDiscount(price, promotion.DiscountType, promotion.DiscountValue)
		discount = price - discounted
		price = discounted

		// The guarded increment reserves a use against the cap before the
		// charge; a provider failure below releases it.
		if err := s.creators.IncrementPromotionUsage(promotion.ID); err != nil {
			if errors.Is(err, repositories.ErrPromotionCapReached) {
				return nil, apperrors.ErrPromotionExpired
			}
			return nil, apperrors.InternalError(err)
		}
	}

	cfg := config.GetConfig()
	breakdown := payments.SplitSale(price, cfg.Stripe.PlatformFeePercent, seller.CommissionPercent)

	// Fresh UUID per attempt: a provider-side retry of this exact call is
	// deduplicated, a new attempt is a new charge.
	intentID, clientSecret, err := s.provider.CreatePaymentIntent(
		price,
		cfg.Stripe.Currency,
		seller.StripeAccountID,
		breakdown.TotalCommissionCents,
		uuid.NewString(),
	)
	if err != nil {
		if promotion != nil {
			if derr := s.creators.DecrementPromotionUsage(promotion.ID); derr != nil {
				logger.Warn("promotion usage rollback failed", "promotion_id", promotion.ID, "error", derr)
			}
		}
		logger.Error("payment intent creation failed", "buyer_id", buyerID, "item_id", item.ID, "error", err)
		return nil, apperrors.ErrPaymentProviderError
	}

	logger.Info("purchase initiated",
		"buyer_id", buyerID, "item_id", item.ID,
		"price_cents", price, "commission_cents", breakdown.TotalCommissionCents)

	return &PurchaseResult{
		PaymentIntentID: intentID,
		ClientSecret:    clientSecret,
		Breakdown:       breakdown,
		DiscountCents:   discount,
	}, nil
}

// redeemablePromotion resolves a code and verifies it is live: active, not
// expired and under its usage cap.
func (s *creatorService) redeemablePromotion(creatorID, code string) (*models.Promotion, error) {
	promotion, err := s.creators.FindPromotionByCode(creatorID, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, repositories.ErrPromotionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !promotion.IsActive {
		return nil, apperrors.ErrPromotionExpired
	}
	if promotion.ExpiresAt != nil && time.Now().After(*promotion.ExpiresAt) {
		return nil, apperrors.ErrPromotionExpired
	}
	if promotion.UsageCap > 0 && promotion.UsedCount >= promotion.UsageCap {
		return nil, apperrors.ErrPromotionExpired
	}
	return promotion, nil
}
