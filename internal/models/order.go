package models

import (
	"github.com/google/uuid"
)

// Order is immutable history once committed. The delivery address is a
// snapshot taken at submit time, not a reference to the user's profile.
type Order struct {
	BaseModel
	UserID           uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User             *User       `json:"user,omitempty"`
	VoucherID        *uuid.UUID  `gorm:"type:uuid" json:"voucher_id"`
	ProvisionalPrice int64       `json:"provisional_price"`
	DeliveryCost     int64       `json:"delivery_cost"`
	TotalPrice       int64       `json:"total_price"`
	PaymentMethod    string      `json:"payment_method"`
	AdditionalNote   string      `json:"additional_note"`
	ProvinceCity     string      `json:"province_city"`
	District         string      `json:"district"`
	CommuneWard      string      `json:"commune_ward"`
	AddressDetail    string      `json:"address_detail"`
	Items            []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID          uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Quantity         int       `json:"quantity"`
	TotalPrice       int64     `json:"total_price"`
	DiscountedAmount int64     `json:"discounted_amount"`
}
