package models

// SwapRequest links a requester, the item's owner and one wardrobe item.
// Status moves pending → accepted → completed, or to declined/canceled;
// declined, completed and canceled are terminal.
type SwapRequest struct {
	BaseModel
	RequesterID string     `gorm:"type:uuid;not null;index" json:"requester_id"`
	OwnerID     string     `gorm:"type:uuid;not null;index" json:"owner_id"`
	ItemID      string     `gorm:"type:uuid;not null;index" json:"item_id"`
	Status      SwapStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	// Delivery method: ship or meetup
	DeliveryMethod string `gorm:"type:varchar(20);default:'ship'" json:"delivery_method"`
	Note           string `json:"note"`

	// Relations
	Requester *User         `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Owner     *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Item      *WardrobeItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Messages  []SwapMessage `gorm:"foreignKey:SwapID" json:"messages,omitempty"`
}

// SwapMessage is immutable once created and strictly ordered by creation
// time. Messaging is never status-gated: participants can message a
// declined or completed swap.
type SwapMessage struct {
	BaseModel
	SwapID   string `gorm:"type:uuid;not null;index" json:"swap_id"`
	SenderID string `gorm:"type:uuid;not null;index" json:"sender_id"`
	Body     string `gorm:"not null" json:"body"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
