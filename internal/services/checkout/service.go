package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/logx"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingAddress  = errors.New("shipping address is required")
	ErrPaymentFailed   = errors.New("payment failed")
	ErrOrderNotPayable = errors.New("order is not awaiting payment")
)

// CartState is the part of the cart service checkout needs.
type CartState interface {
	Refresh(ctx context.Context) (domain.Cart, error)
}

type Service struct {
	orders   domain.OrderAPI
	payments domain.PaymentAPI
	cart     CartState
}

func New(orders domain.OrderAPI, payments domain.PaymentAPI, cart CartState) *Service {
	return &Service{orders: orders, payments: payments, cart: cart}
}

// Checkout places an order for the current cart. The cart is re-fetched
// first so an empty cart fails locally, and again afterwards since the
// backend empties it.
func (s *Service) Checkout(ctx context.Context, shippingAddress string) (domain.Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return domain.Order{}, ErrMissingAddress
	}

	c, err := s.cart.Refresh(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	if c.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}

	o, err := s.orders.Checkout(ctx, domain.CheckoutInput{ShippingAddress: shippingAddress})
	if err != nil {
		return domain.Order{}, err
	}
	if _, err := s.cart.Refresh(ctx); err != nil {
		logx.Warn().Err(err).Int64("order", o.ID).Msg("cart refresh after checkout failed")
	}
	return o, nil
}

// Pay creates a payment intent for the order and confirms it with the test
// card. An empty card means domain.TestCardSuccess. A declined payment is
// returned together with an error wrapping ErrPaymentFailed.
func (s *Service) Pay(ctx context.Context, orderID int64, testCard string) (domain.Payment, error) {
	if testCard == "" {
		testCard = domain.TestCardSuccess
	}

	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Payment{}, err
	}
	if o.Status != domain.OrderPending {
		return domain.Payment{}, fmt.Errorf("%w (status %s)", ErrOrderNotPayable, o.Status)
	}

	intent, err := s.payments.CreatePaymentIntent(ctx, orderID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("create intent: %w", err)
	}
	p, err := s.payments.ConfirmPayment(ctx, intent.ID, testCard)
	if err != nil {
		return intent, fmt.Errorf("confirm payment: %w", err)
	}

	logx.Info().Int64("order", orderID).Int64("payment", p.ID).Str("status", p.Status).Msg("payment confirmed")
	if p.Status != domain.PaymentSucceeded {
		reason := p.FailureReason
		if reason == "" {
			reason = p.Status
		}
		return p, fmt.Errorf("%w: %s", ErrPaymentFailed, reason)
	}
	return p, nil
}

func (s *Service) Orders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

func (s *Service) Order(ctx context.Context, id int64) (domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *Service) Payment(ctx context.Context, id int64) (domain.Payment, error) {
	return s.payments.GetPayment(ctx, id)
}
