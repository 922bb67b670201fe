package repositories

import (
	"errors"
	"time"

	"threadswap_backend/internal/models"
	"threadswap_backend/internal/tiers"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrCreditConflict    = errors.New("credit counter changed concurrently")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	UpdateProfile(user *models.User) error
	UpdateTier(userID string, tier models.Tier) error

	// ConsumeAICredit applies the credit-consuming mutation: when the stored
	// period is stale it resets the counter to 1 and anchors a new period,
	// otherwise it increments. Guarded against concurrent writers.
	ConsumeAICredit(userID string, now time.Time) error

	// RefreshToken operations
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshToken(token string) (*models.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteUserRefreshTokens(userID string) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("CreatorProfile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) UpdateProfile(user *models.User) error {
	result := r.db.Model(user).Updates(map[string]interface{}{
		"display_name":      user.DisplayName,
		"bio":               user.Bio,
		"avatar_url":        user.AvatarURL,
		"address_line1":     user.AddressLine1,
		"address_line2":     user.AddressLine2,
		"city":              user.City,
		"state":             user.State,
		"postal_code":       user.PostalCode,
		"country":           user.Country,
		"marketing_consent": user.MarketingConsent,
		"gemini_api_key":    user.GeminiAPIKey,
		"updated_at":        time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateTier(userID string, tier models.Tier) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"tier":       tier,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ConsumeAICredit(userID string, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		updates := map[string]interface{}{"updated_at": now}
		if tiers.PeriodExpired(user.CreditsPeriodStart, now) {
			updates["ai_credits_used"] = 1
			updates["credits_period_start"] = now
		} else {
			updates["ai_credits_used"] = user.AICreditsUsed + 1
		}

		// Expected-value guard: a concurrent consumer that got here first
		// fails this predicate instead of being silently overwritten.
		result := tx.Model(&models.User{}).
			Where("id = ? AND ai_credits_used = ?", userID, user.AICreditsUsed).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCreditConflict
		}
		return nil
	})
}

// RefreshToken operations

func (r *UserRepositoryImpl) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *UserRepositoryImpl) FindRefreshToken(token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.Where("token = ?", token).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &refreshToken, nil
}

func (r *UserRepositoryImpl) DeleteRefreshToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *UserRepositoryImpl) DeleteUserRefreshTokens(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
