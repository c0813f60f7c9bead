package domain

import "time"

// Product represents a catalog item. Price is stored in whole CFA units.
type Product struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"size:256;index" json:"name"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	ImageURL    string     `gorm:"size:512" json:"imageUrl"`
	Sizes       StringList `gorm:"type:text" json:"sizes"`
	Colors      StringList `gorm:"type:text" json:"colors"`
	Stock       int        `json:"stock"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Product) TableName() string {
	return "product"
}

// ProductToCategory links a product to a category (many-to-many).
type ProductToCategory struct {
	ProductID  int64     `gorm:"primaryKey;index:product_category_idx" json:"productId"`
	CategoryID int64     `gorm:"primaryKey;index:product_category_idx" json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (ProductToCategory) TableName() string {
	return "products_to_categories"
}

// PricedProduct is a product annotated with the discount of the currently
// active announcement. The discount fields are derived on every read and
// never persisted; they are omitted entirely when HasDiscount is false so
// consumers branch on hasDiscount, not on zero values.
type PricedProduct struct {
	Product
	HasDiscount        bool   `json:"hasDiscount"`
	DiscountedPrice    *int64 `json:"discountedPrice,omitempty"`
	DiscountPercentage *int64 `json:"discountPercentage,omitempty"`
}
