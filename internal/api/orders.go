package api

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return getList[domain.Order](ctx, c, "/api/orders/", nil)
}

func (c *Client) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var out domain.Order
	if err := c.get(ctx, fmt.Sprintf("/api/orders/%d/", id), nil, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

// Checkout turns the current cart into an order.
func (c *Client) Checkout(ctx context.Context, in domain.CheckoutInput) (domain.Order, error) {
	var out domain.Order
	if err := c.post(ctx, "/api/orders/", in, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

var _ domain.OrderAPI = (*Client)(nil)
