package searchcache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/redisclient"
	"storefront/internal/searchcache"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemory_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: time.Unix(0, 0)}
	m := searchcache.NewMemory(0, searchcache.WithClock(clk.now))

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}

	clk.advance(searchcache.DefaultTTL - time.Second)
	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("within ttl: %q ok=%v err=%v", got, ok, err)
	}

	clk.advance(time.Second)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("entry served at ttl")
	}
	if m.Len() != 0 {
		t.Fatalf("expired entry not deleted on read, len=%d", m.Len())
	}
}

func TestMemory_SetRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: time.Unix(0, 0)}
	m := searchcache.NewMemory(time.Minute, searchcache.WithClock(clk.now))

	_ = m.Set(ctx, "k", []byte("a"))
	clk.advance(50 * time.Second)
	_ = m.Set(ctx, "k", []byte("b"))
	clk.advance(50 * time.Second)

	got, ok, _ := m.Get(ctx, "k")
	if !ok || string(got) != "b" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestKey_EqualFiltersShareKey(t *testing.T) {
	a := searchcache.Key(searchcache.KindSearch, domain.ProductFilter{Search: "phone", Page: 2})
	b := searchcache.Key(searchcache.KindSearch, domain.ProductFilter{Page: 2, Search: "phone"})
	if a != b {
		t.Fatalf("%q != %q", a, b)
	}
	if a != `search:{"search":"phone","page":2}` {
		t.Fatalf("key = %q", a)
	}
	if searchcache.Key(searchcache.KindAutocomplete, "phone") == searchcache.Key(searchcache.KindSearch, "phone") {
		t.Fatal("kinds must not collide")
	}
}

// Runs only when STOREFRONT_TEST_REDIS_URL points at a disposable server.
func TestRedis_RoundTrip(t *testing.T) {
	url := os.Getenv("STOREFRONT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("STOREFRONT_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	cfg := redisclient.Config{URL: url, ReadTimeout: 3, WriteTimeout: 3, DialTimeout: 5}
	client, err := cfg.New(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	c := searchcache.NewRedis(client, time.Minute)
	key := "test:" + t.Name()
	if _, ok, err := c.Get(ctx, key+":missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, key, []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("get: %q ok=%v err=%v", got, ok, err)
	}
}
