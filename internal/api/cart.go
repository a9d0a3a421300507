package api

import (
	"context"

	"storefront/internal/domain"
)

func (c *Client) GetCart(ctx context.Context) (domain.Cart, error) {
	var out domain.Cart
	if err := c.get(ctx, "/api/cart/", nil, &out); err != nil {
		return domain.Cart{Items: []domain.CartItem{}}, err
	}
	return normalizeCart(out), nil
}

func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) (domain.Cart, error) {
	in := struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}{productID, quantity}
	return c.cartCall(ctx, "/api/cart/add_item/", in)
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (domain.Cart, error) {
	in := struct {
		ItemID   int64 `json:"item_id"`
		Quantity int   `json:"quantity"`
	}{itemID, quantity}
	return c.cartCall(ctx, "/api/cart/update_item/", in)
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) (domain.Cart, error) {
	in := struct {
		ItemID int64 `json:"item_id"`
	}{itemID}
	return c.cartCall(ctx, "/api/cart/remove_item/", in)
}

func (c *Client) ClearCart(ctx context.Context) (domain.Cart, error) {
	return c.cartCall(ctx, "/api/cart/clear/", struct{}{})
}

func (c *Client) cartCall(ctx context.Context, path string, in any) (domain.Cart, error) {
	var out domain.Cart
	if err := c.post(ctx, path, in, &out); err != nil {
		return domain.Cart{Items: []domain.CartItem{}}, err
	}
	return normalizeCart(out), nil
}

func normalizeCart(c domain.Cart) domain.Cart {
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	for i := range c.Items {
		normalizeProduct(&c.Items[i].Product)
	}
	return c
}

var _ domain.CartAPI = (*Client)(nil)
