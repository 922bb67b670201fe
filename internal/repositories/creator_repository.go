package repositories

import (
	"errors"
	"time"

	"threadswap_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCreatorNotFound      = errors.New("creator profile not found")
	ErrCreatorAlreadyExists = errors.New("creator profile already exists")
	ErrPromotionNotFound    = errors.New("promotion not found")
	ErrPromotionCapReached  = errors.New("promotion usage cap reached")
)

type CreatorRepository interface {
	FindByID(id string) (*models.CreatorProfile, error)
	FindByUserID(userID string) (*models.CreatorProfile, error)
	Create(profile *models.CreatorProfile) error
	Update(profile *models.CreatorProfile) error
	UpdateStripeStatus(profileID, stripeAccountID string, onboardingComplete, payoutsEnabled bool) error

	CreatePromotion(promotion *models.Promotion) error
	FindPromotion(id string) (*models.Promotion, error)
	FindPromotionByCode(creatorID, code string) (*models.Promotion, error)
	ListPromotions(creatorID string) ([]models.Promotion, error)
	CountActivePromotions(creatorID string) (int64, error)
	UpdatePromotion(promotion *models.Promotion) error
	DeletePromotion(id string) error

	// IncrementPromotionUsage bumps the counter only while the cap (when set)
	// still has room; returns ErrPromotionCapReached otherwise.
	IncrementPromotionUsage(id string) error

	// DecrementPromotionUsage releases one recorded use, compensating an
	// increment whose downstream charge failed.
	DecrementPromotionUsage(id string) error
}

type CreatorRepositoryImpl struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &CreatorRepositoryImpl{db: db}
}

func (r *CreatorRepositoryImpl) FindByID(id string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	err := r.db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *CreatorRepositoryImpl) FindByUserID(userID string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *CreatorRepositoryImpl) Create(profile *models.CreatorProfile) error {
	var existing models.CreatorProfile
	if err := r.db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrCreatorAlreadyExists
	}
	return r.db.Create(profile).Error
}

func (r *CreatorRepositoryImpl) Update(profile *models.CreatorProfile) error {
	result := r.db.Model(profile).Updates(map[string]interface{}{
		"store_name": profile.StoreName,
		"tagline":    profile.Tagline,
		"banner_url": profile.BannerURL,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}

func (r *CreatorRepositoryImpl) UpdateStripeStatus(profileID, stripeAccountID string, onboardingComplete, payoutsEnabled bool) error {
	result := r.db.Model(&models.CreatorProfile{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"stripe_account_id":   stripeAccountID,
			"onboarding_complete": onboardingComplete,
			"payouts_enabled":     payoutsEnabled,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}

// Promotions

func (r *CreatorRepositoryImpl) CreatePromotion(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

func (r *CreatorRepositoryImpl) FindPromotion(id string) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.db.First(&promotion, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

func (r *CreatorRepositoryImpl) FindPromotionByCode(creatorID, code string) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.db.Where("creator_id = ? AND code = ?", creatorID, code).First(&promotion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

func (r *CreatorRepositoryImpl) ListPromotions(creatorID string) ([]models.Promotion, error) {
	var promotions []models.Promotion
	err := r.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&promotions).Error
	return promotions, err
}

func (r *CreatorRepositoryImpl) CountActivePromotions(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Promotion{}).
		Where("creator_id = ? AND is_active = ?", creatorID, true).
		Count(&count).Error
	return count, err
}

func (r *CreatorRepositoryImpl) UpdatePromotion(promotion *models.Promotion) error {
	result := r.db.Model(promotion).Updates(map[string]interface{}{
		"discount_type":  promotion.DiscountType,
		"discount_value": promotion.DiscountValue,
		"expires_at":     promotion.ExpiresAt,
		"usage_cap":      promotion.UsageCap,
		"is_active":      promotion.IsActive,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

func (r *CreatorRepositoryImpl) DeletePromotion(id string) error {
	result := r.db.Delete(&models.Promotion{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

func (r *CreatorRepositoryImpl) IncrementPromotionUsage(id string) error {
	result := r.db.Model(&models.Promotion{}).
		Where("id = ? AND (usage_cap = 0 OR used_count < usage_cap)", id).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionCapReached
	}
	return nil
}

func (r *CreatorRepositoryImpl) DecrementPromotionUsage(id string) error {
	result := r.db.Model(&models.Promotion{}).
		Where("id = ? AND used_count > 0", id).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count - 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}
