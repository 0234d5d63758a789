package checkout

import "github.com/example/orchid/internal/models"

// Address is the delivery address submitted with an order.
type Address struct {
	ProvinceCity  string `json:"province_city"`
	District      string `json:"district"`
	CommuneWard   string `json:"commune_ward"`
	AddressDetail string `json:"address_detail"`
}

// Complete reports whether the three location levels are all present.
func (a Address) Complete() bool {
	return a.ProvinceCity != "" && a.District != "" && a.CommuneWard != ""
}

// AddressChanged reports whether the submitted address differs from the
// user's stored default in province, district or ward. Exact string
// comparison, no normalization.
func AddressChanged(user models.User, addr Address) bool {
	return user.ProvinceCity != addr.ProvinceCity ||
		user.District != addr.District ||
		user.CommuneWard != addr.CommuneWard
}
