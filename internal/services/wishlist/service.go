package wishlist

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/domain"
)

// ErrNotInWishlist is returned by Remove for a product that is not saved.
var ErrNotInWishlist = errors.New("product is not in the wishlist")

type Service struct {
	api domain.WishlistAPI

	mu    sync.RWMutex
	items []domain.WishlistItem
}

func New(api domain.WishlistAPI) *Service {
	return &Service{api: api, items: []domain.WishlistItem{}}
}

// Refresh replaces the local list with the server's.
func (s *Service) Refresh(ctx context.Context) ([]domain.WishlistItem, error) {
	items, err := s.api.ListWishlist(ctx)
	if err != nil {
		return s.Items(), err
	}
	s.mu.Lock()
	s.items = append([]domain.WishlistItem{}, items...)
	s.mu.Unlock()
	return items, nil
}

// Items returns a copy of the local list.
func (s *Service) Items() []domain.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.WishlistItem{}, s.items...)
}

// Contains reports whether productID is saved locally.
func (s *Service) Contains(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(productID) >= 0
}

// Toggle saves the product if absent and removes it if present. The local
// list changes before the call and is reverted if the call fails. It
// reports whether the product is saved afterwards.
func (s *Service) Toggle(ctx context.Context, productID int64) (bool, error) {
	if s.Contains(productID) {
		return false, s.Remove(ctx, productID)
	}
	_, err := s.Add(ctx, productID)
	return err == nil, err
}

// Add saves a product. A placeholder entry is shown until the server
// returns the real one.
func (s *Service) Add(ctx context.Context, productID int64) (domain.WishlistItem, error) {
	s.mu.Lock()
	if i := s.indexOf(productID); i >= 0 {
		it := s.items[i]
		s.mu.Unlock()
		return it, nil
	}
	s.items = append(s.items, domain.WishlistItem{Product: domain.Product{ID: productID}})
	s.mu.Unlock()

	it, err := s.api.AddToWishlist(ctx, productID)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(productID)
	switch {
	case err != nil && i >= 0:
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	case err == nil && i >= 0:
		s.items[i] = it
	case err == nil:
		s.items = append(s.items, it)
	}
	return it, err
}

// Remove unsaves a product, restoring it locally if the call fails.
func (s *Service) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotInWishlist
	}
	it := s.items[i]
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.mu.Unlock()

	if it.ID == 0 {
		// Placeholder from an add still in flight; nothing to delete remotely.
		return nil
	}
	if err := s.api.RemoveFromWishlist(ctx, it.ID); err != nil {
		s.mu.Lock()
		if s.indexOf(productID) < 0 {
			s.items = append(s.items, it)
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// indexOf finds a product in the local list. Callers hold s.mu.
func (s *Service) indexOf(productID int64) int {
	for i, it := range s.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}
