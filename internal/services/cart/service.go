package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

var (
	// ErrInvalidQuantity is returned by Add for a quantity below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrUnknownItem is returned when the item id is not in the snapshot.
	ErrUnknownItem = errors.New("item is not in the cart")
)

// Service holds the cart snapshot. It is safe for concurrent use.
type Service struct {
	api domain.CartAPI

	mu     sync.RWMutex
	cart   domain.Cart
	loaded bool
}

func New(api domain.CartAPI) *Service {
	return &Service{api: api, cart: domain.Cart{Items: []domain.CartItem{}}}
}

// Refresh replaces the snapshot with the server cart.
func (s *Service) Refresh(ctx context.Context) (domain.Cart, error) {
	c, err := s.api.GetCart(ctx)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.replace(c), nil
}

// Add puts quantity units of a product in the cart. The snapshot changes
// only once the server answers, since the product details come from it.
func (s *Service) Add(ctx context.Context, productID int64, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return s.Snapshot(), ErrInvalidQuantity
	}
	c, err := s.api.AddCartItem(ctx, productID, quantity)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.replace(c), nil
}

// UpdateQuantity sets a line's quantity; quantity <= 0 removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, itemID int64, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, itemID)
	}
	return s.optimistic(ctx, func(c *domain.Cart) error {
		_, i, ok := c.Item(itemID)
		if !ok {
			return ErrUnknownItem
		}
		c.Items[i].Quantity = quantity
		return nil
	}, func(ctx context.Context) (domain.Cart, error) {
		return s.api.UpdateCartItem(ctx, itemID, quantity)
	})
}

// Remove drops a line from the cart.
func (s *Service) Remove(ctx context.Context, itemID int64) (domain.Cart, error) {
	return s.optimistic(ctx, func(c *domain.Cart) error {
		_, i, ok := c.Item(itemID)
		if !ok {
			return ErrUnknownItem
		}
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	}, func(ctx context.Context) (domain.Cart, error) {
		return s.api.RemoveCartItem(ctx, itemID)
	})
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) (domain.Cart, error) {
	return s.optimistic(ctx, func(c *domain.Cart) error {
		c.Items = c.Items[:0]
		return nil
	}, s.api.ClearCart)
}

// Snapshot returns a copy of the current cart.
func (s *Service) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Loaded reports whether the snapshot has come from the server at least once.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Totals returns the item count and total price of the snapshot.
func (s *Service) Totals() (int, decimal.Decimal) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalItems, s.cart.TotalPrice
}

func (s *Service) optimistic(
	ctx context.Context,
	apply func(*domain.Cart) error,
	call func(context.Context) (domain.Cart, error),
) (domain.Cart, error) {
	s.mu.Lock()
	prev := s.cart.Clone()
	next := s.cart.Clone()
	if err := apply(&next); err != nil {
		s.mu.Unlock()
		return prev, err
	}
	next.Recalculate()
	s.cart = next
	s.mu.Unlock()

	c, err := call(ctx)
	if err != nil {
		s.mu.Lock()
		s.cart = prev
		s.mu.Unlock()
		return prev.Clone(), err
	}
	return s.replace(c), nil
}

func (s *Service) replace(c domain.Cart) domain.Cart {
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	s.mu.Lock()
	s.cart = c.Clone()
	s.loaded = true
	s.mu.Unlock()
	return c
}
