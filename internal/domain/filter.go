package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// ProductFilter is the query of the product listing. Its JSON form doubles
// as the search cache key, so field order is part of the key format.
type ProductFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Shop     int64  `json:"shop,omitempty"`
	MinPrice string `json:"min_price,omitempty"`
	MaxPrice string `json:"max_price,omitempty"`
	Ordering string `json:"ordering,omitempty"`
	Page     int    `json:"page,omitempty"`
}

// Normalize trims free-text fields so equivalent queries share a cache key.
func (f ProductFilter) Normalize() ProductFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	f.MinPrice = strings.TrimSpace(f.MinPrice)
	f.MaxPrice = strings.TrimSpace(f.MaxPrice)
	f.Ordering = strings.TrimSpace(f.Ordering)
	if f.Page < 0 {
		f.Page = 0
	}
	return f
}

// Values renders the filter as the backend's query parameters.
func (f ProductFilter) Values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Shop > 0 {
		v.Set("shop", strconv.FormatInt(f.Shop, 10))
	}
	if f.MinPrice != "" {
		v.Set("min_price", f.MinPrice)
	}
	if f.MaxPrice != "" {
		v.Set("max_price", f.MaxPrice)
	}
	if f.Ordering != "" {
		v.Set("ordering", f.Ordering)
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}
