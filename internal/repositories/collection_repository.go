package repositories

import (
	"errors"
	"time"

	"threadswap_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionItemDup  = errors.New("item already in collection")
	ErrCollectionItemGone = errors.New("item not in collection")
)

type CollectionRepository interface {
	FindByID(id string) (*models.Collection, error)
	ListByUser(userID string) ([]models.Collection, error)
	CountByUser(userID string) (int64, error)
	Create(collection *models.Collection) error
	Update(collection *models.Collection) error
	Delete(id string) error

	AddItem(collectionID, itemID string) error
	RemoveItem(collectionID, itemID string) error
	// Reorder rewrites positions so that itemIDs[i] sits at position i.
	Reorder(collectionID string, itemIDs []string) error
}

type CollectionRepositoryImpl struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &CollectionRepositoryImpl{db: db}
}

func (r *CollectionRepositoryImpl) FindByID(id string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Item").
		Preload("Items.Item.Images").
		First(&collection, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepositoryImpl) ListByUser(userID string) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&collections).Error
	return collections, err
}

func (r *CollectionRepositoryImpl) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Collection{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *CollectionRepositoryImpl) Create(collection *models.Collection) error {
	return r.db.Create(collection).Error
}

func (r *CollectionRepositoryImpl) Update(collection *models.Collection) error {
	result := r.db.Model(collection).Updates(map[string]interface{}{
		"name":        collection.Name,
		"description": collection.Description,
		"is_public":   collection.IsPublic,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

func (r *CollectionRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&models.CollectionItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Collection{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCollectionNotFound
		}
		return nil
	})
}

func (r *CollectionRepositoryImpl) AddItem(collectionID, itemID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CollectionItem
		err := tx.Where("collection_id = ? AND item_id = ?", collectionID, itemID).
			First(&existing).Error
		if err == nil {
			return ErrCollectionItemDup
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var maxPosition int64
		if err := tx.Model(&models.CollectionItem{}).
			Where("collection_id = ?", collectionID).
			Count(&maxPosition).Error; err != nil {
			return err
		}

		return tx.Create(&models.CollectionItem{
			CollectionID: collectionID,
			ItemID:       itemID,
			Position:     int(maxPosition),
		}).Error
	})
}

func (r *CollectionRepositoryImpl) RemoveItem(collectionID, itemID string) error {
	result := r.db.Where("collection_id = ? AND item_id = ?", collectionID, itemID).
		Delete(&models.CollectionItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollectionItemGone
	}
	return nil
}

func (r *CollectionRepositoryImpl) Reorder(collectionID string, itemIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for position, itemID := range itemIDs {
			result := tx.Model(&models.CollectionItem{}).
				Where("collection_id = ? AND item_id = ?", collectionID, itemID).
				Update("position", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrCollectionItemGone
			}
		}
		return nil
	})
}
