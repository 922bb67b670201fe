package repositories

import (
	"errors"
	"time"

	"threadswap_backend/internal/models"

	"gorm.io/gorm"
)

var ErrShipmentNotFound = errors.New("shipment not found")

type ShipmentRepository interface {
	Create(shipment *models.Shipment) error
	FindByID(id string) (*models.Shipment, error)
	FindByTracking(trackingNumber string) (*models.Shipment, error)
	ListBySwap(swapID string) ([]models.Shipment, error)
	UpdateStatus(id string, status models.ShipmentStatus) error
}

type ShipmentRepositoryImpl struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &ShipmentRepositoryImpl{db: db}
}

func (r *ShipmentRepositoryImpl) Create(shipment *models.Shipment) error {
	return r.db.Create(shipment).Error
}

func (r *ShipmentRepositoryImpl) FindByID(id string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.First(&shipment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

func (r *ShipmentRepositoryImpl) FindByTracking(trackingNumber string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.First(&shipment, "tracking_number = ?", trackingNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

func (r *ShipmentRepositoryImpl) ListBySwap(swapID string) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.Where("swap_id = ?", swapID).Order("created_at DESC").Find(&shipments).Error
	return shipments, err
}

func (r *ShipmentRepositoryImpl) UpdateStatus(id string, status models.ShipmentStatus) error {
	result := r.db.Model(&models.Shipment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShipmentNotFound
	}
	return nil
}
