package api

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

func (c *Client) ListWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	return getList[domain.WishlistItem](ctx, c, "/api/wishlists/", nil)
}

func (c *Client) AddToWishlist(ctx context.Context, productID int64) (domain.WishlistItem, error) {
	var out domain.WishlistItem
	in := struct {
		ProductID int64 `json:"product_id"`
	}{productID}
	if err := c.post(ctx, "/api/wishlists/", in, &out); err != nil {
		return domain.WishlistItem{}, err
	}
	return out, nil
}

func (c *Client) RemoveFromWishlist(ctx context.Context, itemID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/wishlists/%d/", itemID))
}

var _ domain.WishlistAPI = (*Client)(nil)
