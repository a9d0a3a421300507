package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"storefront/internal/core"
	"storefront/internal/redisclient"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "storefront"

// Cache drivers.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Environment string `default:"development"`

	APIBaseURL  string        `split_words:"true" default:"http://localhost:8000"`
	Token       string        // overrides the stored credentials when set
	Home        string        // config directory, default $HOME/.storefront
	Passphrase  string        // encrypts the stored credentials when set
	HTTPTimeout time.Duration `split_words:"true" default:"0s"`
	RateLimit   float64       `split_words:"true" default:"0"`
	RateBurst   int           `split_words:"true" default:"1"`

	CacheTTL     time.Duration `split_words:"true" default:"5m"`
	CacheDriver  string        `split_words:"true" default:"memory"`
	PollInterval time.Duration `split_words:"true" default:"30s"`

	Debug bool

	Redis redisclient.Config

	HTTP *http.Client `ignored:"true"` // optional; built from HTTPTimeout when nil
}

// LoadConfig reads envFile (skipped when missing) and then the environment.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Env returns the parsed environment.
func (c Config) Env() core.Environment { return core.ParseEnvironment(c.Environment) }

func (c *Config) normalize() error {
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".storefront")
	}
	switch c.CacheDriver {
	case "":
		c.CacheDriver = CacheMemory
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache driver %q (want %s or %s)", c.CacheDriver, CacheMemory, CacheRedis)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout must not be negative, got %s", c.HTTPTimeout)
	}
	return nil
}
