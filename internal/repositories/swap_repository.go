package repositories

import (
	"errors"
	"time"

	"threadswap_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSwapNotFound      = errors.New("swap request not found")
	ErrSwapStateConflict = errors.New("swap status changed concurrently")
)

// SwapListFilter narrows swap listing queries.
type SwapListFilter struct {
	UserID string
	Role   string // "requester", "owner" or "" for both
	Status models.SwapStatus
	Limit  int
	Offset int
}

// SwapRepository owns the swap lifecycle writes. Every transition pairs the
// swap-status flip, the item side effects and the history append inside one
// transaction, so a crash between steps cannot leave the records disagreeing.
type SwapRepository interface {
	FindByID(id string) (*models.SwapRequest, error)
	List(filter SwapListFilter) ([]models.SwapRequest, int64, error)
	CountActiveByRequester(requesterID string) (int64, error)

	// CreateWithReservation inserts the swap and reserves the item
	// (AVAILABLE -> ON_LOAN) as one unit.
	CreateWithReservation(swap *models.SwapRequest, history *models.ItemHistory) error

	// Accept flips PENDING -> ACCEPTED; the item stays reserved.
	Accept(swapID string) error
	// Decline flips PENDING -> DECLINED and releases the item.
	Decline(swapID, itemID string, history *models.ItemHistory) error
	// Cancel flips the given current status -> CANCELED and releases the item.
	Cancel(swapID, itemID string, current models.SwapStatus, history *models.ItemHistory) error
	// Complete flips ACCEPTED -> COMPLETED, transfers the item to the new
	// owner, releases it and bumps its swap counter.
	Complete(swapID, itemID, newOwnerID string, history *models.ItemHistory) error

	CreateMessage(message *models.SwapMessage) error
	ListMessages(swapID string) ([]models.SwapMessage, error)
}

type SwapRepositoryImpl struct {
	db *gorm.DB
}

func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &SwapRepositoryImpl{db: db}
}

func (r *SwapRepositoryImpl) FindByID(id string) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	err := r.db.
		Preload("Item").
		Preload("Requester").
		Preload("Owner").
		First(&swap, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		return nil, err
	}
	return &swap, nil
}

func (r *SwapRepositoryImpl) List(filter SwapListFilter) ([]models.SwapRequest, int64, error) {
	query := r.db.Model(&models.SwapRequest{})

	switch filter.Role {
	case "requester":
		query = query.Where("requester_id = ?", filter.UserID)
	case "owner":
		query = query.Where("owner_id = ?", filter.UserID)
	default:
		query = query.Where("requester_id = ? OR owner_id = ?", filter.UserID, filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var swaps []models.SwapRequest
	err := query.
		Preload("Item").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&swaps).Error
	if err != nil {
		return nil, 0, err
	}
	return swaps, total, nil
}

func (r *SwapRepositoryImpl) CountActiveByRequester(requesterID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SwapRequest{}).
		Where("requester_id = ? AND status IN ?", requesterID,
			[]models.SwapStatus{models.SwapStatusPending, models.SwapStatusAccepted}).
		Count(&count).Error
	return count, err
}

func (r *SwapRepositoryImpl) CreateWithReservation(swap *models.SwapRequest, history *models.ItemHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WardrobeItem{}).
			Where("id = ? AND status = ?", swap.ItemID, models.ItemStatusAvailable).
			Updates(map[string]interface{}{"status": models.ItemStatusOnLoan, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrItemStateConflict
		}
		if err := tx.Create(swap).Error; err != nil {
			return err
		}
		history.ItemID = swap.ItemID
		return tx.Create(history).Error
	})
}

func (r *SwapRepositoryImpl) Accept(swapID string) error {
	result := r.db.Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", swapID, models.SwapStatusPending).
		Updates(map[string]interface{}{"status": models.SwapStatusAccepted, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSwapStateConflict
	}
	return nil
}

func (r *SwapRepositoryImpl) Decline(swapID, itemID string, history *models.ItemHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SwapRequest{}).
			Where("id = ? AND status = ?", swapID, models.SwapStatusPending).
			Updates(map[string]interface{}{"status": models.SwapStatusDeclined, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSwapStateConflict
		}
		if err := releaseItem(tx, itemID); err != nil {
			return err
		}
		history.ItemID = itemID
		return tx.Create(history).Error
	})
}

func (r *SwapRepositoryImpl) Cancel(swapID, itemID string, current models.SwapStatus, history *models.ItemHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SwapRequest{}).
			Where("id = ? AND status = ?", swapID, current).
			Updates(map[string]interface{}{"status": models.SwapStatusCanceled, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSwapStateConflict
		}
		if err := releaseItem(tx, itemID); err != nil {
			return err
		}
		history.ItemID = itemID
		return tx.Create(history).Error
	})
}

func (r *SwapRepositoryImpl) Complete(swapID, itemID, newOwnerID string, history *models.ItemHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SwapRequest{}).
			Where("id = ? AND status = ?", swapID, models.SwapStatusAccepted).
			Updates(map[string]interface{}{"status": models.SwapStatusComplete, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSwapStateConflict
		}

		result = tx.Model(&models.WardrobeItem{}).
			Where("id = ?", itemID).
			Updates(map[string]interface{}{
				"owner_id":   newOwnerID,
				"status":     models.ItemStatusAvailable,
				"swap_count": gorm.Expr("swap_count + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrItemNotFound
		}

		history.ItemID = itemID
		return tx.Create(history).Error
	})
}

// releaseItem puts a reserved item back on the shelf.
func releaseItem(tx *gorm.DB, itemID string) error {
	result := tx.Model(&models.WardrobeItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{"status": models.ItemStatusAvailable, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Messages

func (r *SwapRepositoryImpl) CreateMessage(message *models.SwapMessage) error {
	return r.db.Create(message).Error
}

func (r *SwapRepositoryImpl) ListMessages(swapID string) ([]models.SwapMessage, error) {
	var messages []models.SwapMessage
	err := r.db.
		Preload("Sender").
		Where("swap_id = ?", swapID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
