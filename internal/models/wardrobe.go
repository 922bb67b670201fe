package models

import (
	"gorm.io/datatypes"
)

// WardrobeItem is owned by exactly one user at a time. Ownership is
// reassigned, never duplicated, on swap completion; status on_loan implies an
// outstanding swap references the item.
type WardrobeItem struct {
	BaseModel
	OwnerID     string     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Brand       string     `json:"brand"`
	Status      ItemStatus `gorm:"type:varchar(20);default:'available';index" json:"status"`
	Category    string     `gorm:"index" json:"category"`
	// Condition scale: new, like_new, good, fair, worn
	Condition string `json:"condition"`
	Size      string `json:"size"`
	Color     string `json:"color"`

	AvailableForSwap bool  `gorm:"default:true" json:"available_for_swap"`
	ForSale          bool  `gorm:"default:false" json:"for_sale"`
	SalePriceCents   int64 `gorm:"default:0" json:"sale_price_cents"`

	SwapCount int `gorm:"default:0" json:"swap_count"`

	// Relations
	Owner   *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Images  []ItemImage   `gorm:"foreignKey:ItemID" json:"images,omitempty"`
	History []ItemHistory `gorm:"foreignKey:ItemID" json:"history,omitempty"`
}

// ItemImage is one image of an item; exactly one per item is flagged primary.
type ItemImage struct {
	BaseModel
	ItemID    string `gorm:"type:uuid;not null;index" json:"item_id"`
	URL       string `gorm:"not null" json:"url"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`
	Position  int    `gorm:"default:0" json:"position"`
}

// ItemHistory is an append-only event log per item. Rows are never updated
// or deleted once written.
type ItemHistory struct {
	BaseModel
	ItemID    string         `gorm:"type:uuid;not null;index" json:"item_id"`
	EventType string         `gorm:"type:varchar(50);not null" json:"event_type"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
}

// Item history event types.
const (
	HistoryEventCreated       = "ITEM_CREATED"
	HistoryEventUpdated       = "ITEM_UPDATED"
	HistoryEventSwapRequested = "SWAP_REQUESTED"
	HistoryEventSwapDeclined  = "SWAP_DECLINED"
	HistoryEventSwapCanceled  = "SWAP_CANCELED"
	HistoryEventOwnerChanged  = "OWNER_TRANSFERRED"
	HistoryEventDeleted       = "ITEM_DELETED"
)
