package shopsession

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/core/errx"
	"storefront/internal/domain"
)

var (
	// ErrNoShop is returned by Open when the user does not own a shop.
	ErrNoShop = errors.New("this account does not own a shop")
	// ErrNotOpen is returned by shop-scoped reads before Open.
	ErrNotOpen = errors.New("no shop session; run `storefront dashboard` first")
)

// Deps groups the APIs the dashboard reads from.
type Deps struct {
	Shops   domain.ShopAPI
	Catalog domain.CatalogAPI
	Reviews domain.ReviewAPI
	Store   domain.ShopSessionStore
}

type Service struct {
	deps Deps
	now  func() time.Time

	mu      sync.RWMutex
	current *domain.ShopSession
}

func New(deps Deps) *Service {
	return &Service{deps: deps, now: time.Now}
}

// Open fetches the caller's shop and makes it the current session.
func (s *Service) Open(ctx context.Context) (domain.Shop, error) {
	shop, err := s.deps.Shops.MyShop(ctx)
	if err != nil {
		if errx.IsNotFound(err) {
			return domain.Shop{}, ErrNoShop
		}
		return domain.Shop{}, err
	}

	sess := domain.ShopSession{ShopID: shop.ID, ShopName: shop.Name, OpenedAt: s.now().UTC()}
	if s.deps.Store != nil {
		if err := s.deps.Store.SaveShopSession(sess); err != nil {
			return shop, fmt.Errorf("save shop session: %w", err)
		}
	}
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return shop, nil
}

// Current returns the open session, falling back to the persisted one.
func (s *Service) Current() (domain.ShopSession, bool, error) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur != nil {
		return *cur, true, nil
	}
	if s.deps.Store == nil {
		return domain.ShopSession{}, false, nil
	}

	sess, ok, err := s.deps.Store.LoadShopSession()
	if err != nil || !ok {
		return domain.ShopSession{}, false, err
	}
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return sess, true, nil
}

// Close forgets the session locally and on disk.
func (s *Service) Close() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if s.deps.Store == nil {
		return nil
	}
	return s.deps.Store.ClearShopSession()
}

// Products lists the open shop's products.
func (s *Service) Products(ctx context.Context, page int) (domain.Page[domain.Product], error) {
	sess, err := s.require()
	if err != nil {
		return domain.Page[domain.Product]{Results: []domain.Product{}}, err
	}
	return s.deps.Catalog.ListProducts(ctx, domain.ProductFilter{Shop: sess.ShopID, Page: page})
}

// Analytics returns sales figures for the last days days of the open shop.
func (s *Service) Analytics(ctx context.Context, days int) (domain.ShopAnalytics, error) {
	sess, err := s.require()
	if err != nil {
		return domain.ShopAnalytics{}, err
	}
	return s.deps.Shops.ShopAnalytics(ctx, sess.ShopID, days)
}

// Reviews returns the open shop's reviews and their summary.
func (s *Service) Reviews(ctx context.Context) ([]domain.ShopReview, domain.ReviewSummary, error) {
	sess, err := s.require()
	if err != nil {
		return nil, domain.ReviewSummary{}, err
	}
	reviews, err := s.deps.Reviews.ShopReviews(ctx, sess.ShopID)
	if err != nil {
		return nil, domain.ReviewSummary{}, err
	}
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return reviews, domain.Summarize(ratings), nil
}

func (s *Service) require() (domain.ShopSession, error) {
	sess, ok, err := s.Current()
	if err != nil {
		return sess, err
	}
	if !ok {
		return sess, ErrNotOpen
	}
	return sess, nil
}
