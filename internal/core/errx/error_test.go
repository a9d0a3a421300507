package errx_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"

	"storefront/internal/core/errx"
)

func TestStatusOf_WrappedChain(t *testing.T) {
	base := errx.New(errors.New("no such product"), http.StatusNotFound, "api get /api/products/9/")
	err := fmt.Errorf("load product: %w", base)

	if got := errx.StatusOf(err); got != http.StatusNotFound {
		t.Fatalf("StatusOf = %d, want 404", got)
	}
	if !errx.IsNotFound(err) {
		t.Fatal("IsNotFound = false")
	}
	if errx.IsUnauthorized(err) {
		t.Fatal("IsUnauthorized = true for a 404")
	}
}

func TestError_MessageWithoutCause(t *testing.T) {
	e := errx.New(nil, http.StatusBadRequest, "bad input")
	if e.Error() != "bad input" {
		t.Fatalf("Error() = %q", e.Error())
	}
}

func TestWrapRedis(t *testing.T) {
	if errx.WrapRedis(nil) != nil {
		t.Fatal("WrapRedis(nil) must be nil")
	}
	if got := errx.StatusOf(errx.WrapRedis(redis.Nil)); got != http.StatusNotFound {
		t.Fatalf("redis.Nil status = %d", got)
	}
	err := errx.WrapRedis(errors.New("dial tcp: refused"))
	if got := errx.StatusOf(err); got != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", got)
	}
}
