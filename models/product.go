package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`
	Brand       string    `json:"brand"`
	Price       float64   `gorm:"not null" json:"price"`
	SalePrice   *float64  `json:"sale_price"`
	Stock       int       `json:"stock"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// No column defaults on the flags: a default tag makes GORM drop an
	// explicit false from the INSERT. Creation paths set IsActive themselves.
	IsActive   bool      `json:"is_active"`
	IsFeatured bool      `json:"is_featured"`
	IsNew      bool      `json:"is_new"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CurrentPrice is the price a buyer pays right now.
func (p *Product) CurrentPrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// CategoryName avoids nil checks scattered through cart/order serialisation.
func (p *Product) CategoryName() string {
	if p.Category != nil {
		return p.Category.Name
	}
	return ""
}
