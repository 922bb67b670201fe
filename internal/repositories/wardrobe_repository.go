package repositories

import (
	"errors"
	"time"

	"threadswap_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrItemNotFound      = errors.New("wardrobe item not found")
	ErrImageNotFound     = errors.New("item image not found")
	ErrItemStateConflict = errors.New("item status changed concurrently")
)

// ItemFilter narrows listing queries. Zero values mean "no constraint".
type ItemFilter struct {
	OwnerID          string
	Category         string
	Size             string
	Color            string
	AvailableForSwap *bool
	ForSale          *bool
	Search           string
	Limit            int
	Offset           int
}

type WardrobeRepository interface {
	FindByID(id string) (*models.WardrobeItem, error)
	Create(item *models.WardrobeItem) error
	Update(item *models.WardrobeItem) error
	List(filter ItemFilter) ([]models.WardrobeItem, int64, error)
	CountActiveByOwner(ownerID string) (int64, error)

	// UpdateStatusIfCurrent flips the item status only when it still holds the
	// expected value; returns ErrItemStateConflict otherwise.
	UpdateStatusIfCurrent(itemID string, expected, next models.ItemStatus) error
	SoftDelete(itemID string) error

	AddImage(image *models.ItemImage) error
	CountImages(itemID string) (int64, error)
	SetPrimaryImage(itemID, imageID string) error
	DeleteImage(itemID, imageID string) error

	AppendHistory(entry *models.ItemHistory) error
	ListHistory(itemID string) ([]models.ItemHistory, error)
}

type WardrobeRepositoryImpl struct {
	db *gorm.DB
}

func NewWardrobeRepository(db *gorm.DB) WardrobeRepository {
	return &WardrobeRepositoryImpl{db: db}
}

func (r *WardrobeRepositoryImpl) FindByID(id string) (*models.WardrobeItem, error) {
	var item models.WardrobeItem
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Owner").
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *WardrobeRepositoryImpl) Create(item *models.WardrobeItem) error {
	return r.db.Create(item).Error
}

func (r *WardrobeRepositoryImpl) Update(item *models.WardrobeItem) error {
	result := r.db.Model(item).Updates(map[string]interface{}{
		"title":              item.Title,
		"description":        item.Description,
		"brand":              item.Brand,
		"category":           item.Category,
		"condition":          item.Condition,
		"size":               item.Size,
		"color":              item.Color,
		"available_for_swap": item.AvailableForSwap,
		"for_sale":           item.ForSale,
		"sale_price_cents":   item.SalePriceCents,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *WardrobeRepositoryImpl) List(filter ItemFilter) ([]models.WardrobeItem, int64, error) {
	query := r.db.Model(&models.WardrobeItem{}).Where("status <> ?", models.ItemStatusDeleted)

	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Size != "" {
		query = query.Where("size = ?", filter.Size)
	}
	if filter.Color != "" {
		query = query.Where("color = ?", filter.Color)
	}
	if filter.AvailableForSwap != nil {
		query = query.Where("available_for_swap = ?", *filter.AvailableForSwap)
	}
	if filter.ForSale != nil {
		query = query.Where("for_sale = ?", *filter.ForSale)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR brand ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.WardrobeItem
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *WardrobeRepositoryImpl) CountActiveByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.WardrobeItem{}).
		Where("owner_id = ? AND status <> ?", ownerID, models.ItemStatusDeleted).
		Count(&count).Error
	return count, err
}

func (r *WardrobeRepositoryImpl) UpdateStatusIfCurrent(itemID string, expected, next models.ItemStatus) error {
	result := r.db.Model(&models.WardrobeItem{}).
		Where("id = ? AND status = ?", itemID, expected).
		Updates(map[string]interface{}{"status": next, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemStateConflict
	}
	return nil
}

func (r *WardrobeRepositoryImpl) SoftDelete(itemID string) error {
	result := r.db.Model(&models.WardrobeItem{}).
		Where("id = ? AND status <> ?", itemID, models.ItemStatusDeleted).
		Updates(map[string]interface{}{"status": models.ItemStatusDeleted, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Images

func (r *WardrobeRepositoryImpl) AddImage(image *models.ItemImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if image.IsPrimary {
			if err := tx.Model(&models.ItemImage{}).
				Where("item_id = ?", image.ItemID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(image).Error
	})
}

func (r *WardrobeRepositoryImpl) CountImages(itemID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ItemImage{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}

func (r *WardrobeRepositoryImpl) SetPrimaryImage(itemID, imageID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ItemImage{}).
			Where("item_id = ?", itemID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		result := tx.Model(&models.ItemImage{}).
			Where("id = ? AND item_id = ?", imageID, itemID).
			Update("is_primary", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrImageNotFound
		}
		return nil
	})
}

func (r *WardrobeRepositoryImpl) DeleteImage(itemID, imageID string) error {
	result := r.db.Where("id = ? AND item_id = ?", imageID, itemID).Delete(&models.ItemImage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}

// History

func (r *WardrobeRepositoryImpl) AppendHistory(entry *models.ItemHistory) error {
	return r.db.Create(entry).Error
}

func (r *WardrobeRepositoryImpl) ListHistory(itemID string) ([]models.ItemHistory, error) {
	var entries []models.ItemHistory
	err := r.db.Where("item_id = ?", itemID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
