package models

// Product carries the sellable catalog entry. StockQuantity never goes below
// zero; order submission decrements it with a guarded update.
type Product struct {
	BaseModel
	Name          string `json:"name"`
	Slug          string `gorm:"uniqueIndex" json:"slug"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	Type          int    `json:"type"`
	ImageURL      string `json:"image_url"`
}
