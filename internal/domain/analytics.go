package domain

import "github.com/shopspring/decimal"

// SalesPoint is one day of shop sales.
type SalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// TopProduct is a best seller of a shop over the analytics window.
type TopProduct struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ShopAnalytics is the owner dashboard summary.
type ShopAnalytics struct {
	ShopID        int64           `json:"shop_id"`
	Days          int             `json:"days"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int             `json:"total_orders"`
	TotalProducts int             `json:"total_products"`
	AverageRating float64         `json:"average_rating"`
	Sales         []SalesPoint    `json:"sales"`
	TopProducts   []TopProduct    `json:"top_products"`
}
