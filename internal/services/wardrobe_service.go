package services

import (
	"encoding/json"
	"errors"

	"threadswap_backend/internal/logger"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/tiers"
	"threadswap_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type CreateItemInput struct {
	Title            string `json:"title" validate:"required,min=2,max=120"`
	Description      string `json:"description" validate:"max=2000"`
	Brand            string `json:"brand" validate:"max=80"`
	Category         string `json:"category" validate:"required,oneof=tops bottoms dresses outerwear shoes accessories"`
	Condition        string `json:"condition" validate:"required,oneof=new like_new good fair worn"`
	Size             string `json:"size" validate:"max=20"`
	Color            string `json:"color" validate:"max=40"`
	AvailableForSwap *bool  `json:"available_for_swap,omitempty"`
	ForSale          bool   `json:"for_sale"`
	SalePriceCents   int64  `json:"sale_price_cents" validate:"min=0"`
}

type UpdateItemInput struct {
	Title            *string `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Description      *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Brand            *string `json:"brand,omitempty" validate:"omitempty,max=80"`
	Category         *string `json:"category,omitempty" validate:"omitempty,oneof=tops bottoms dresses outerwear shoes accessories"`
	Condition        *string `json:"condition,omitempty" validate:"omitempty,oneof=new like_new good fair worn"`
	Size             *string `json:"size,omitempty" validate:"omitempty,max=20"`
	Color            *string `json:"color,omitempty" validate:"omitempty,max=40"`
	AvailableForSwap *bool   `json:"available_for_swap,omitempty"`
	ForSale          *bool   `json:"for_sale,omitempty"`
	SalePriceCents   *int64  `json:"sale_price_cents,omitempty" validate:"omitempty,min=0"`
}

const maxImagesPerItem = 8

type WardrobeService interface {
	CreateItem(ownerID string, tier models.Tier, input CreateItemInput) (*models.WardrobeItem, error)
	GetItem(viewerID, itemID string) (*models.WardrobeItem, error)
	UpdateItem(ownerID, itemID string, tier models.Tier, input UpdateItemInput) (*models.WardrobeItem, error)
	DeleteItem(ownerID, itemID string) error
	ListItems(filter repositories.ItemFilter) ([]models.WardrobeItem, int64, error)

	AddImage(ownerID, itemID, url string, isPrimary bool) (*models.ItemImage, error)
	SetPrimaryImage(ownerID, itemID, imageID string) error
	DeleteImage(ownerID, itemID, imageID string) error

	GetHistory(viewerID, itemID string) ([]models.ItemHistory, error)
}

type wardrobeService struct {
	wardrobe repositories.WardrobeRepository
}

func NewWardrobeService(wardrobe repositories.WardrobeRepository) WardrobeService {
	return &wardrobeService{wardrobe: wardrobe}
}

func (s *wardrobeService) CreateItem(ownerID string, tier models.Tier, input CreateItemInput) (*models.WardrobeItem, error) {
	count, err := s.wardrobe.CountActiveByOwner(ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if tiers.HasReachedLimit(tier, tiers.ResourceWardrobeItems, int(count)) {
		return nil, apperrors.ErrTierLimit
	}
	if input.ForSale && !tiers.LimitsFor(tier).CanSellItems {
		return nil, apperrors.ErrTierLimit
	}
	if input.ForSale && input.SalePriceCents <= 0 {
		return nil, apperrors.ValidationError("sale_price_cents must be positive for items listed for sale")
	}

	availableForSwap := true
	if input.AvailableForSwap != nil {
		availableForSwap = *input.AvailableForSwap
	}

	item := &models.WardrobeItem{
		OwnerID:          ownerID,
		Title:            input.Title,
		Description:      input.Description,
		Brand:            input.Brand,
		Status:           models.ItemStatusAvailable,
		Category:         input.Category,
		Condition:        input.Condition,
		Size:             input.Size,
		Color:            input.Color,
		AvailableForSwap: availableForSwap,
		ForSale:          input.ForSale,
		SalePriceCents:   input.SalePriceCents,
	}

	if err := s.wardrobe.Create(item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	s.appendHistory(item.ID, models.HistoryEventCreated, map[string]interface{}{"owner_id": ownerID})

	return item, nil
}

func (s *wardrobeService) GetItem(viewerID, itemID string) (*models.WardrobeItem, error) {
	item, err := s.wardrobe.FindByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	// Deleted items stay invisible to everyone but their owner; the same 404
	// is returned either way so existence never leaks.
	if item.Status == models.ItemStatusDeleted && item.OwnerID != viewerID {
		return nil, apperrors.ErrNotFound(repositories.ErrItemNotFound)
	}
	return item, nil
}

func (s *wardrobeService) UpdateItem(ownerID, itemID string, tier models.Tier, input UpdateItemInput) (*models.WardrobeItem, error) {
	item, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Brand != nil {
		item.Brand = *input.Brand
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Condition != nil {
		item.Condition = *input.Condition
	}
	if input.Size != nil {
		item.Size = *input.Size
	}
	if input.Color != nil {
		item.Color = *input.Color
	}
	if input.AvailableForSwap != nil {
		item.AvailableForSwap = *input.AvailableForSwap
	}
	if input.ForSale != nil {
		item.ForSale = *input.ForSale
	}
	if input.SalePriceCents != nil {
		item.SalePriceCents = *input.SalePriceCents
	}

	if item.ForSale && !tiers.LimitsFor(tier).CanSellItems {
		return nil, apperrors.ErrTierLimit
	}
	if item.ForSale && item.SalePriceCents <= 0 {
		return nil, apperrors.ValidationError("sale_price_cents must be positive for items listed for sale")
	}

	if err := s.wardrobe.Update(item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	s.appendHistory(item.ID, models.HistoryEventUpdated, nil)

	return item, nil
}

func (s *wardrobeService) DeleteItem(ownerID, itemID string) error {
	item, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return err
	}
	// An item reserved by an outstanding swap cannot be withdrawn.
	if item.Status == models.ItemStatusOnLoan {
		return apperrors.ErrItemNotAvailable
	}

	if err := s.wardrobe.SoftDelete(itemID); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	s.appendHistory(itemID, models.HistoryEventDeleted, nil)
	return nil
}

func (s *wardrobeService) ListItems(filter repositories.ItemFilter) ([]models.WardrobeItem, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	items, total, err := s.wardrobe.List(filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return items, total, nil
}

// Images

func (s *wardrobeService) AddImage(ownerID, itemID, url string, isPrimary bool) (*models.ItemImage, error) {
	if _, err := s.ownedItem(ownerID, itemID); err != nil {
		return nil, err
	}

	count, err := s.wardrobe.CountImages(itemID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count >= maxImagesPerItem {
		return nil, apperrors.ErrInvalidOperation("wardrobe", "image limit reached for this item")
	}

	image := &models.ItemImage{
		ItemID:    itemID,
		URL:       url,
		IsPrimary: isPrimary || count == 0, // first image becomes primary
		Position:  int(count),
	}
	if err := s.wardrobe.AddImage(image); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return image, nil
}

func (s *wardrobeService) SetPrimaryImage(ownerID, itemID, imageID string) error {
	if _, err := s.ownedItem(ownerID, itemID); err != nil {
		return err
	}
	if err := s.wardrobe.SetPrimaryImage(itemID, imageID); err != nil {
		if errors.Is(err, repositories.ErrImageNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *wardrobeService) DeleteImage(ownerID, itemID, imageID string) error {
	if _, err := s.ownedItem(ownerID, itemID); err != nil {
		return err
	}
	if err := s.wardrobe.DeleteImage(itemID, imageID); err != nil {
		if errors.Is(err, repositories.ErrImageNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *wardrobeService) GetHistory(viewerID, itemID string) ([]models.ItemHistory, error) {
	if _, err := s.GetItem(viewerID, itemID); err != nil {
		return nil, err
	}
	entries, err := s.wardrobe.ListHistory(itemID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entries, nil
}

// ownedItem loads an item and checks the caller owns it. A foreign item gets
// the same 404 as a missing one.
func (s *wardrobeService) ownedItem(ownerID, itemID string) (*models.WardrobeItem, error) {
	item, err := s.wardrobe.FindByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if item.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound(repositories.ErrItemNotFound)
	}
	if item.Status == models.ItemStatusDeleted {
		return nil, apperrors.ErrNotFound(repositories.ErrItemNotFound)
	}
	return item, nil
}

// appendHistory records an item event; a failed append is logged but never
// fails the primary operation.
func (s *wardrobeService) appendHistory(itemID, eventType string, metadata map[string]interface{}) {
	entry := &models.ItemHistory{ItemID: itemID, EventType: eventType}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	if err := s.wardrobe.AppendHistory(entry); err != nil {
		logger.Warn("item history append failed", "item_id", itemID, "event", eventType, "error", err)
	}
}
