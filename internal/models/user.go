package models

// User represents an authenticated customer. The address columns hold the
// default delivery address used to detect changes at checkout time.
type User struct {
	BaseModel
	FullName      string  `json:"full_name"`
	Phone         string  `gorm:"uniqueIndex" json:"phone"`
	Email         string  `gorm:"uniqueIndex" json:"email"`
	PasswordHash  string  `json:"-"`
	ProvinceCity  string  `json:"province_city"`
	District      string  `json:"district"`
	CommuneWard   string  `json:"commune_ward"`
	AddressDetail string  `json:"address_detail"`
	Cart          *Cart   `json:"cart,omitempty"`
	Orders        []Order `json:"orders,omitempty"`
}
