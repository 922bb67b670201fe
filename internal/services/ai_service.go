package services

import (
	"context"
	"errors"
	"time"

	"threadswap_backend/internal/ai"
	"threadswap_backend/internal/logger"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/tiers"
	"threadswap_backend/pkg/apperrors"
)

type DescribeInput struct {
	Title     string `json:"title" validate:"required,min=2,max=120"`
	Brand     string `json:"brand" validate:"max=80"`
	Category  string `json:"category" validate:"required,oneof=tops bottoms dresses outerwear shoes accessories"`
	Condition string `json:"condition" validate:"required,oneof=new like_new good fair worn"`
	Color     string `json:"color" validate:"max=40"`
}

type AIService interface {
	// AnalyzeImage classifies a clothing photo. Spends one AI credit.
	AnalyzeImage(ctx context.Context, userID string, imageData []byte, mimeType string) (*ai.AnalysisResult, error)

	// GenerateDescription writes listing copy for an item. Spends one AI
	// credit.
	GenerateDescription(ctx context.Context, userID string, input DescribeInput) (string, error)

	// CreditStatus reports the caller's remaining allowance without spending
	// anything.
	CreditStatus(userID string) (*tiers.CreditState, error)
}

type aiService struct {
	users    repositories.UserRepository
	analyzer ai.Analyzer
}

func NewAIService(users repositories.UserRepository, analyzer ai.Analyzer) AIService {
	return &aiService{users: users, analyzer: analyzer}
}

func (s *aiService) AnalyzeImage(ctx context.Context, userID string, imageData []byte, mimeType string) (*ai.AnalysisResult, error) {
	apiKey, err := s.gateCredits(userID)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.AnalyzeImage(ctx, apiKey, imageData, mimeType)
	if err != nil {
		logger.Error("image analysis failed", "user_id", userID, "error", err)
		return nil, apperrors.ErrAIProviderError
	}

	// The credit is spent only after the provider call succeeded; a failed
	// call costs nothing.
	s.consumeCredit(userID)
	return result, nil
}

func (s *aiService) GenerateDescription(ctx context.Context, userID string, input DescribeInput) (string, error) {
	apiKey, err := s.gateCredits(userID)
	if err != nil {
		return "", err
	}

	prompt := describePrompt(input)
	text, err := s.analyzer.Describe(ctx, apiKey, prompt)
	if err != nil {
		logger.Error("description generation failed", "user_id", userID, "error", err)
		return "", apperrors.ErrAIProviderError
	}

	s.consumeCredit(userID)
	return text, nil
}

func (s *aiService) CreditStatus(userID string) (*tiers.CreditState, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	state := tiers.CreditStatus(user.Tier, user.AICreditsUsed, user.CreditsPeriodStart, time.Now())
	return &state, nil
}

// gateCredits loads the user, checks the monthly allowance and returns the
// API key to use (the user's own when set, otherwise empty for the platform
// key).
func (s *aiService) gateCredits(userID string) (string, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", apperrors.ErrNotFound(err)
		}
		return "", apperrors.InternalError(err)
	}

	state := tiers.CreditStatus(user.Tier, user.AICreditsUsed, user.CreditsPeriodStart, time.Now())
	if !state.HasCredits {
		return "", apperrors.ErrNoAICredits
	}
	return user.GeminiAPIKey, nil
}

// consumeCredit records the spend; a write failure is logged, the user keeps
// their result.
func (s *aiService) consumeCredit(userID string) {
	if err := s.users.ConsumeAICredit(userID, time.Now()); err != nil {
		logger.Warn("credit consumption failed", "user_id", userID, "error", err)
	}
}

func describePrompt(input DescribeInput) string {
	prompt := "Write a short, upbeat second-hand clothing listing description (2-3 sentences) for: " +
		input.Title + ", category " + input.Category + ", condition " + input.Condition
	if input.Brand != "" {
		prompt += ", brand " + input.Brand
	}
	if input.Color != "" {
		prompt += ", color " + input.Color
	}
	prompt += ". Mention sustainability once. Reply with the description only."
	return prompt
}
