package services

import (
	"errors"

	"threadswap_backend/internal/models"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/tiers"
	"threadswap_backend/pkg/apperrors"
)

type CreateCollectionInput struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    *bool  `json:"is_public,omitempty"`
}

type UpdateCollectionInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=80"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

type ReorderInput struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,uuid"`
}

type CollectionService interface {
	Create(userID string, tier models.Tier, input CreateCollectionInput) (*models.Collection, error)
	Get(viewerID, collectionID string) (*models.Collection, error)
	ListMine(userID string) ([]models.Collection, error)
	Update(userID, collectionID string, input UpdateCollectionInput) (*models.Collection, error)
	Delete(userID, collectionID string) error

	AddItem(userID, collectionID, itemID string) error
	RemoveItem(userID, collectionID, itemID string) error
	Reorder(userID, collectionID string, input ReorderInput) error
}

type collectionService struct {
	collections repositories.CollectionRepository
	wardrobe    repositories.WardrobeRepository
}

func NewCollectionService(
	collections repositories.CollectionRepository,
	wardrobe repositories.WardrobeRepository,
) CollectionService {
	return &collectionService{collections: collections, wardrobe: wardrobe}
}

func (s *collectionService) Create(userID string, tier models.Tier, input CreateCollectionInput) (*models.Collection, error) {
	count, err := s.collections.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if tiers.HasReachedLimit(tier, tiers.ResourceCollections, int(count)) {
		return nil, apperrors.ErrTierLimit
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	collection := &models.Collection{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    isPublic,
	}
	if err := s.collections.Create(collection); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return collection, nil
}

func (s *collectionService) Get(viewerID, collectionID string) (*models.Collection, error) {
	collection, err := s.collections.FindByID(collectionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCollectionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	// Private collections look absent to everyone but their owner.
	if !collection.IsPublic && collection.UserID != viewerID {
		return nil, apperrors.ErrNotFound(repositories.ErrCollectionNotFound)
	}
	return collection, nil
}

func (s *collectionService) ListMine(userID string) ([]models.Collection, error) {
	collections, err := s.collections.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return collections, nil
}

func (s *collectionService) Update(userID, collectionID string, input UpdateCollectionInput) (*models.Collection, error) {
	collection, err := s.ownedCollection(userID, collectionID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		collection.Name = *input.Name
	}
	if input.Description != nil {
		collection.Description = *input.Description
	}
	if input.IsPublic != nil {
		collection.IsPublic = *input.IsPublic
	}

	if err := s.collections.Update(collection); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return collection, nil
}

func (s *collectionService) Delete(userID, collectionID string) error {
	if _, err := s.ownedCollection(userID, collectionID); err != nil {
		return err
	}
	if err := s.collections.Delete(collectionID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *collectionService) AddItem(userID, collectionID, itemID string) error {
	if _, err := s.ownedCollection(userID, collectionID); err != nil {
		return err
	}

	item, err := s.wardrobe.FindByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if item.Status == models.ItemStatusDeleted {
		return apperrors.ErrNotFound(repositories.ErrItemNotFound)
	}
	// Collections hold the curator's own items only.
	if item.OwnerID != userID {
		return apperrors.ErrNotFound(repositories.ErrItemNotFound)
	}

	if err := s.collections.AddItem(collectionID, itemID); err != nil {
		if errors.Is(err, repositories.ErrCollectionItemDup) {
			return apperrors.ErrAlreadyExists(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *collectionService) RemoveItem(userID, collectionID, itemID string) error {
	if _, err := s.ownedCollection(userID, collectionID); err != nil {
		return err
	}
	if err := s.collections.RemoveItem(collectionID, itemID); err != nil {
		if errors.Is(err, repositories.ErrCollectionItemGone) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *collectionService) Reorder(userID, collectionID string, input ReorderInput) error {
	collection, err := s.ownedCollection(userID, collectionID)
	if err != nil {
		return err
	}
	// The new ordering must cover exactly the current membership.
	if len(input.ItemIDs) != len(collection.Items) {
		return apperrors.ValidationError("item_ids must list every item in the collection exactly once")
	}

	if err := s.collections.Reorder(collectionID, input.ItemIDs); err != nil {
		if errors.Is(err, repositories.ErrCollectionItemGone) {
			return apperrors.ValidationError("item_ids contains an item not in this collection")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *collectionService) ownedCollection(userID, collectionID string) (*models.Collection, error) {
	collection, err := s.collections.FindByID(collectionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCollectionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if collection.UserID != userID {
		return nil, apperrors.ErrNotFound(repositories.ErrCollectionNotFound)
	}
	return collection, nil
}
