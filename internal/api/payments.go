package api

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

func (c *Client) CreatePaymentIntent(ctx context.Context, orderID int64) (domain.Payment, error) {
	var out domain.Payment
	in := struct {
		OrderID int64 `json:"order_id"`
	}{orderID}
	if err := c.post(ctx, "/api/payments/create_intent/", in, &out); err != nil {
		return domain.Payment{}, err
	}
	return out, nil
}

// ConfirmPayment confirms an intent with one of the test provider's card numbers.
func (c *Client) ConfirmPayment(ctx context.Context, paymentID int64, testCard string) (domain.Payment, error) {
	var out domain.Payment
	in := struct {
		TestCard string `json:"test_card"`
	}{testCard}
	if err := c.post(ctx, fmt.Sprintf("/api/payments/%d/confirm/", paymentID), in, &out); err != nil {
		return domain.Payment{}, err
	}
	return out, nil
}

func (c *Client) GetPayment(ctx context.Context, id int64) (domain.Payment, error) {
	var out domain.Payment
	if err := c.get(ctx, fmt.Sprintf("/api/payments/%d/", id), nil, &out); err != nil {
		return domain.Payment{}, err
	}
	return out, nil
}

var _ domain.PaymentAPI = (*Client)(nil)
