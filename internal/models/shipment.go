package models

import "gorm.io/datatypes"

// Shipment records one label bought for an item transaction. Addresses are
// stored as opaque structured data; the core never interprets them beyond
// the estimator's state/region fields.
type Shipment struct {
	BaseModel
	ItemID string `gorm:"type:uuid;not null;index" json:"item_id"`
	SwapID string `gorm:"type:uuid;index" json:"swap_id,omitempty"`

	Carrier        string         `gorm:"not null" json:"carrier"`
	Service        string         `gorm:"not null" json:"service"`
	TrackingNumber string         `gorm:"uniqueIndex;not null" json:"tracking_number"`
	Status         ShipmentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PriceCents     int64          `json:"price_cents"`
	LabelURL       string         `json:"label_url"`

	FromAddress datatypes.JSON `gorm:"type:jsonb" json:"from_address"`
	ToAddress   datatypes.JSON `gorm:"type:jsonb" json:"to_address"`
}
