package models

import (
	"github.com/google/uuid"
)

// Cart is the mutable working state of a user's shopping session. ItemsCount
// mirrors the number of CartItems and is reset to zero when an order commits.
type Cart struct {
	BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	ItemsCount int        `json:"items_count"`
	Items      []CartItem `json:"items,omitempty"`
}

type CartItem struct {
	BaseModel
	CartID           uuid.UUID `gorm:"type:uuid;index" json:"cart_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Product          *Product  `json:"product,omitempty"`
	Quantity         int       `json:"quantity"`
	UnitPrice        int64     `json:"unit_price"`
	TotalPrice       int64     `json:"total_price"`
	DiscountedAmount int64     `json:"discounted_amount"`
}
