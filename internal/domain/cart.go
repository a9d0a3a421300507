package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of the cart.
type CartItem struct {
	ID       int64           `json:"id"`
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart is the server-side cart of the current user.
type Cart struct {
	ID         int64           `json:"id"`
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Clone returns a copy that shares no item storage with c.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// Recalculate derives subtotals and totals from item prices and quantities.
func (c *Cart) Recalculate() {
	c.TotalItems = 0
	c.TotalPrice = decimal.Zero
	for i := range c.Items {
		it := &c.Items[i]
		it.Subtotal = it.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(it.Quantity)))
		c.TotalItems += it.Quantity
		c.TotalPrice = c.TotalPrice.Add(it.Subtotal)
	}
}

// Item returns the line with the given id.
func (c Cart) Item(id int64) (CartItem, int, bool) {
	for i, it := range c.Items {
		if it.ID == id {
			return it, i, true
		}
	}
	return CartItem{}, -1, false
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

// WishlistItem is one saved product.
type WishlistItem struct {
	ID        int64     `json:"id"`
	Product   Product   `json:"product"`
	CreatedAt time.Time `json:"created_at"`
}
