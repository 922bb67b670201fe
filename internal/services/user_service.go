package services

import (
	"errors"
	"time"

	"threadswap_backend/internal/auth"
	"threadswap_backend/internal/logger"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/tiers"
	"threadswap_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// RegisterInput carries the fields a new account needs.
type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=60"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is what login/register hand back to the transport layer.
type AuthResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type UpdateProfileInput struct {
	DisplayName      *string `json:"display_name,omitempty" validate:"omitempty,min=2,max=60"`
	Bio              *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL        *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	AddressLine1     *string `json:"address_line1,omitempty"`
	AddressLine2     *string `json:"address_line2,omitempty"`
	City             *string `json:"city,omitempty"`
	State            *string `json:"state,omitempty" validate:"omitempty,len=2"`
	PostalCode       *string `json:"postal_code,omitempty"`
	Country          *string `json:"country,omitempty" validate:"omitempty,len=2"`
	MarketingConsent *bool   `json:"marketing_consent,omitempty"`
	GeminiAPIKey     *string `json:"gemini_api_key,omitempty"`
}

// UsageSummary reports where the user stands against their tier caps.
type UsageSummary struct {
	Tier          models.Tier       `json:"tier"`
	Limits        tiers.Limits      `json:"limits"`
	WardrobeItems int64             `json:"wardrobe_items"`
	Collections   int64             `json:"collections"`
	ActiveSwaps   int64             `json:"active_swaps"`
	Credits       tiers.CreditState `json:"credits"`
}

type UserService interface {
	Register(input RegisterInput) (*AuthResult, error)
	Login(input LoginInput) (*AuthResult, error)
	Refresh(refreshToken string) (*AuthResult, error)
	Logout(userID string) error

	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error)
	ChangeTier(userID string, tier models.Tier) (*models.User, error)
	GetUsage(userID string) (*UsageSummary, error)
}

type userService struct {
	users       repositories.UserRepository
	wardrobe    repositories.WardrobeRepository
	collections repositories.CollectionRepository
	swaps       repositories.SwapRepository
}

func NewUserService(
	users repositories.UserRepository,
	wardrobe repositories.WardrobeRepository,
	collections repositories.CollectionRepository,
	swaps repositories.SwapRepository,
) UserService {
	return &userService{
		users:       users,
		wardrobe:    wardrobe,
		collections: collections,
		swaps:       swaps,
	}
}

func (s *userService) Register(input RegisterInput) (*AuthResult, error) {
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:              input.Email,
		PasswordHash:       hash,
		DisplayName:        input.DisplayName,
		Tier:               models.TierBasic,
		Status:             models.UserStatusActive,
		CreditsPeriodStart: time.Now(),
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "tier", user.Tier)
	return s.issueTokens(user)
}

func (s *userService) Login(input LoginInput) (*AuthResult, error) {
	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(user)
}

func (s *userService) Refresh(refreshToken string) (*AuthResult, error) {
	stored, err := s.users.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.users.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	// Rotate: the presented token is single use.
	if err := s.users.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(user)
}

func (s *userService) Logout(userID string) error {
	if err := s.users.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) issueTokens(user *models.User) (*AuthResult, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Tier))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := uuid.NewString()
	if err := s.users.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *userService) GetProfile(userID string) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.AddressLine1 != nil {
		user.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		user.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.State != nil {
		user.State = *input.State
	}
	if input.PostalCode != nil {
		user.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		user.Country = *input.Country
	}
	if input.MarketingConsent != nil {
		user.MarketingConsent = *input.MarketingConsent
	}
	if input.GeminiAPIKey != nil {
		user.GeminiAPIKey = *input.GeminiAPIKey
	}

	if err := s.users.UpdateProfile(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *userService) ChangeTier(userID string, tier models.Tier) (*models.User, error) {
	switch tier {
	case models.TierBasic, models.TierStandard, models.TierPro:
	default:
		return nil, apperrors.ValidationError("unknown membership tier")
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateTier(userID, tier); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("tier changed", "user_id", userID, "from", user.Tier, "to", tier)
	user.Tier = tier
	return user, nil
}

func (s *userService) GetUsage(userID string) (*UsageSummary, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	itemCount, err := s.wardrobe.CountActiveByOwner(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	collectionCount, err := s.collections.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	swapCount, err := s.swaps.CountActiveByRequester(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &UsageSummary{
		Tier:          user.Tier,
		Limits:        tiers.LimitsFor(user.Tier),
		WardrobeItems: itemCount,
		Collections:   collectionCount,
		ActiveSwaps:   swapCount,
		Credits:       tiers.CreditStatus(user.Tier, user.AICreditsUsed, user.CreditsPeriodStart, time.Now()),
	}, nil
}
