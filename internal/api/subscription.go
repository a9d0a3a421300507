package api

import (
	"context"

	"storefront/internal/domain"
)

func (c *Client) Subscribe(ctx context.Context, email string) error {
	in := struct {
		Email string `json:"email"`
	}{email}
	return c.post(ctx, "/api/email-subscription/subscribe/", in, nil)
}

var _ domain.SubscriptionAPI = (*Client)(nil)
