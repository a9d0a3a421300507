package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/app"
	"storefront/internal/core"
	"storefront/internal/domain"
	"storefront/internal/searchcache"
)

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STOREFRONT_HOME", home)

	cfg, err := app.LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("api = %q", cfg.APIBaseURL)
	}
	if cfg.CacheTTL != 5*time.Minute || cfg.PollInterval != 30*time.Second || cfg.HTTPTimeout != 0 {
		t.Fatalf("durations: ttl=%s poll=%s timeout=%s", cfg.CacheTTL, cfg.PollInterval, cfg.HTTPTimeout)
	}
	if cfg.CacheDriver != app.CacheMemory || cfg.Env() != core.Development {
		t.Fatalf("driver=%s env=%s", cfg.CacheDriver, cfg.Env())
	}
	if cfg.Home != home {
		t.Fatalf("home = %q", cfg.Home)
	}
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	body := "STOREFRONT_API_BASE_URL=http://shop.test\nSTOREFRONT_CACHE_TTL=1m\nSTOREFRONT_REDIS_URL=redis://cache:6379/1\n"
	if err := os.WriteFile(envFile, []byte(body), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("STOREFRONT_HOME", dir)
	t.Setenv("STOREFRONT_ENVIRONMENT", "production")
	// godotenv.Load does not override variables that are already set.
	t.Setenv("STOREFRONT_API_BASE_URL", "http://from-env.test")
	t.Setenv("STOREFRONT_CACHE_TTL", "1m")
	t.Setenv("STOREFRONT_REDIS_URL", "redis://cache:6379/1")

	cfg, err := app.LoadConfig(envFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://from-env.test" {
		t.Fatalf("api = %q", cfg.APIBaseURL)
	}
	if cfg.CacheTTL != time.Minute || cfg.Redis.URL != "redis://cache:6379/1" {
		t.Fatalf("ttl=%s redis=%q", cfg.CacheTTL, cfg.Redis.URL)
	}
	if !cfg.Env().IsProduction() {
		t.Fatalf("env = %s", cfg.Env())
	}
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STOREFRONT_HOME", t.TempDir())
	t.Setenv("STOREFRONT_CACHE_DRIVER", "memcached")
	if _, err := app.LoadConfig(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewWire_RestoresEnvToken(t *testing.T) {
	cfg := app.Config{Home: t.TempDir(), APIBaseURL: "http://localhost:1", Token: "Bearer abc", CacheTTL: time.Minute}
	w, err := app.NewWire(context.Background(), cfg)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	defer w.Close()

	if _, ok := w.Cache.(*searchcache.Memory); !ok {
		t.Fatalf("cache = %T, want memory", w.Cache)
	}
	creds, ok, err := w.RestoreLogin()
	if err != nil || !ok || creds.Source != domain.SourceEnv {
		t.Fatalf("restore: %+v ok=%v err=%v", creds, ok, err)
	}
	if w.API.Token() != "abc" {
		t.Fatalf("token = %q", w.API.Token())
	}
}
