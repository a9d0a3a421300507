package searchcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTTL is how long a cached result is served.
const DefaultTTL = 5 * time.Minute

// Lookup kinds used as key prefixes.
const (
	KindSearch       = "search"
	KindAutocomplete = "autocomplete"
	KindTrending     = "trending"
)

// Cache stores encoded lookup results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// Key builds "<kind>:<json of filter>". Struct fields keep declaration
// order and map keys are sorted, so equal filters give equal keys.
func Key(kind string, filter any) string {
	b, err := json.Marshal(filter)
	if err != nil {
		return kind + ":" + fmt.Sprint(filter)
	}
	return kind + ":" + string(b)
}
