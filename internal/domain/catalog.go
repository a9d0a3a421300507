package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products; Slug is what product filters use.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Parent       *int64 `json:"parent,omitempty"`
	ProductCount int    `json:"product_count"`
}

// ProductImage is one gallery entry of a product.
type ProductImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"image"`
	IsPrimary bool   `json:"is_primary"`
}

// Product is a catalog entry. Price and DiscountPrice come over the wire as
// decimal strings.
type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Stock         int              `json:"stock"`
	InStock       bool             `json:"in_stock"`
	Category      int64            `json:"category"`
	CategoryName  string           `json:"category_name"`
	Shop          int64            `json:"shop"`
	ShopName      string           `json:"shop_name"`
	Images        []ProductImage   `json:"images"`
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int              `json:"review_count"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EffectivePrice is the discount price when one is set and lower than the
// list price, otherwise the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() && p.DiscountPrice.LessThan(p.Price) {
		return *p.DiscountPrice
	}
	return p.Price
}

// ProductSuggestion is one autocomplete hit.
type ProductSuggestion struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Shop is a seller storefront.
type Shop struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Owner        int64     `json:"owner"`
	OwnerName    string    `json:"owner_name"`
	Logo         string    `json:"logo,omitempty"`
	Rating       float64   `json:"rating"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}
