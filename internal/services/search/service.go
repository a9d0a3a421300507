package search

import (
	"context"
	"encoding/json"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/logx"
	"storefront/internal/searchcache"
)

// DefaultTrendingLimit is used when Trending is called with limit <= 0.
const DefaultTrendingLimit = 5

type Service struct {
	api   domain.CatalogAPI
	cache searchcache.Cache
}

// New returns a search service. A nil cache disables caching.
func New(api domain.CatalogAPI, cache searchcache.Cache) *Service {
	return &Service{api: api, cache: cache}
}

// Search lists products matching the filter.
func (s *Service) Search(ctx context.Context, filter domain.ProductFilter) (domain.Page[domain.Product], error) {
	filter = filter.Normalize()
	key := searchcache.Key(searchcache.KindSearch, filter)
	return cached(ctx, s, key, func() (domain.Page[domain.Product], error) {
		return s.api.ListProducts(ctx, filter)
	})
}

// Autocomplete returns name suggestions for a prefix. A blank prefix
// returns no suggestions without calling the API.
func (s *Service) Autocomplete(ctx context.Context, query string) ([]domain.ProductSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.ProductSuggestion{}, nil
	}
	key := searchcache.Key(searchcache.KindAutocomplete, map[string]string{"q": strings.ToLower(query)})
	return cached(ctx, s, key, func() ([]domain.ProductSuggestion, error) {
		return s.api.Autocomplete(ctx, query)
	})
}

// Trending returns the most reviewed products.
func (s *Service) Trending(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	key := searchcache.Key(searchcache.KindTrending, map[string]int{"limit": limit})
	return cached(ctx, s, key, func() ([]domain.Product, error) {
		return s.api.Trending(ctx, limit)
	})
}

// cached serves key from the cache or calls fetch and stores its result.
// Cache failures are logged and treated as misses.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() (T, error)) (T, error) {
	if s.cache != nil {
		b, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			logx.Warn().Err(err).Str("key", key).Msg("search cache read failed")
		case ok:
			var v T
			if err := json.Unmarshal(b, &v); err == nil {
				logx.Debug().Str("key", key).Msg("search cache hit")
				return v, nil
			}
			logx.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if s.cache != nil {
		b, err := json.Marshal(v)
		if err == nil {
			err = s.cache.Set(ctx, key, b)
		}
		if err != nil {
			logx.Warn().Err(err).Str("key", key).Msg("search cache write failed")
		}
	}
	return v, nil
}
