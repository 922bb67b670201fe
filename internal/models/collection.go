package models

// Collection is a user-curated, ordered set of items.
type Collection struct {
	BaseModel
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `gorm:"default:true" json:"is_public"`

	Items []CollectionItem `gorm:"foreignKey:CollectionID" json:"items,omitempty"`
}

// CollectionItem is the join row carrying the explicit ordering. The
// (collection_id, item_id) pair appears at most once.
type CollectionItem struct {
	BaseModel
	CollectionID string `gorm:"type:uuid;not null;uniqueIndex:idx_collection_item" json:"collection_id"`
	ItemID       string `gorm:"type:uuid;not null;uniqueIndex:idx_collection_item" json:"item_id"`
	Position     int    `gorm:"default:0" json:"position"`

	Item *WardrobeItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
