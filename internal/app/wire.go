package app

import (
	"context"
	"errors"
	"net/http"
	"os"

	"storefront/internal/api"
	"storefront/internal/logx"
	"storefront/internal/searchcache"
	authsvc "storefront/internal/services/auth"
	cartsvc "storefront/internal/services/cart"
	catalogsvc "storefront/internal/services/catalog"
	checkoutsvc "storefront/internal/services/checkout"
	inboxsvc "storefront/internal/services/inbox"
	searchsvc "storefront/internal/services/search"
	shopsvc "storefront/internal/services/shopsession"
	wishlistsvc "storefront/internal/services/wishlist"
	"storefront/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config Config

	API   *api.Client
	Store *store.FileStore
	Cache searchcache.Cache

	Auth     *authsvc.Service
	Cart     *cartsvc.Service
	Wishlist *wishlistsvc.Service
	Inbox    *inboxsvc.Service
	Search   *searchsvc.Service
	Shop     *shopsvc.Service
	Catalog  *catalogsvc.Service
	Checkout *checkoutsvc.Service

	closers []func() error
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config) (*Wire, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
		if cfg.HTTPTimeout > 0 {
			httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
		}
	}

	w := &Wire{Config: cfg}
	w.API = api.New(cfg.APIBaseURL,
		api.WithHTTPClient(httpClient),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	w.Store = store.NewFileStore(cfg.Home)
	w.Cache = w.buildCache(ctx)

	w.Auth = authsvc.New(w.API, w.Store)
	w.Cart = cartsvc.New(w.API)
	w.Wishlist = wishlistsvc.New(w.API)
	w.Inbox = inboxsvc.New(w.API, inboxsvc.WithInterval(cfg.PollInterval))
	w.Search = searchsvc.New(w.API, w.Cache)
	w.Catalog = catalogsvc.New(w.API, w.API, w.API)
	w.Checkout = checkoutsvc.New(w.API, w.API, w.Cart)
	w.Shop = shopsvc.New(shopsvc.Deps{
		Shops:   w.API,
		Catalog: w.API,
		Reviews: w.API,
		Store:   w.Store,
	})
	return w, nil
}

// buildCache returns the Redis cache when configured and reachable, and the
// in-memory cache otherwise.
func (w *Wire) buildCache(ctx context.Context) searchcache.Cache {
	if w.Config.CacheDriver != CacheRedis {
		return searchcache.NewMemory(w.Config.CacheTTL)
	}
	client, err := w.Config.Redis.New(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("redis unavailable; using in-memory search cache")
		return searchcache.NewMemory(w.Config.CacheTTL)
	}
	w.closers = append(w.closers, client.Close)
	return searchcache.NewRedis(client, w.Config.CacheTTL)
}

// Close releases connections opened by NewWire.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c())
	}
	w.closers = nil
	return errors.Join(errs...)
}
