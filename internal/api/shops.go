package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"storefront/internal/domain"
)

func (c *Client) GetShop(ctx context.Context, id int64) (domain.Shop, error) {
	var out domain.Shop
	if err := c.get(ctx, fmt.Sprintf("/api/shops/%d/", id), nil, &out); err != nil {
		return domain.Shop{}, err
	}
	return out, nil
}

// MyShop returns the shop owned by the current user.
func (c *Client) MyShop(ctx context.Context) (domain.Shop, error) {
	var out domain.Shop
	if err := c.get(ctx, "/api/shops/my_shop/", nil, &out); err != nil {
		return domain.Shop{}, err
	}
	return out, nil
}

func (c *Client) ShopAnalytics(ctx context.Context, id int64, days int) (domain.ShopAnalytics, error) {
	var out domain.ShopAnalytics
	var q url.Values
	if days > 0 {
		q = url.Values{"days": {strconv.Itoa(days)}}
	}
	if err := c.get(ctx, fmt.Sprintf("/api/shops/%d/analytics/", id), q, &out); err != nil {
		return domain.ShopAnalytics{}, err
	}
	if out.Sales == nil {
		out.Sales = []domain.SalesPoint{}
	}
	if out.TopProducts == nil {
		out.TopProducts = []domain.TopProduct{}
	}
	return out, nil
}

var _ domain.ShopAPI = (*Client)(nil)
