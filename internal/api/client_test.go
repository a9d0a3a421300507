package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/api"
	"storefront/internal/core/errx"
	"storefront/internal/domain"
	"storefront/internal/mockapi"
)

func newClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(mockapi.New().Handler())
	t.Cleanup(srv.Close)
	return api.New(srv.URL + "/")
}

func loggedIn(t *testing.T, user, pass string) *api.Client {
	t.Helper()
	c := newClient(t)
	resp, err := c.Login(context.Background(), user, pass)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	c.SetToken(resp.Access)
	return c
}

func TestClient_SendsHeaders(t *testing.T) {
	var gotAuth, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(api.RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"unread_count": 3}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, api.WithToken("tok"))
	n, err := c.UnreadCount(context.Background())
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotID == "" {
		t.Fatal("missing request id")
	}
}

func TestClient_ErrorCarriesStatusAndDetail(t *testing.T) {
	c := newClient(t)
	_, err := c.GetProduct(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errx.IsNotFound(err) {
		t.Fatalf("status = %d, want 404", errx.StatusOf(err))
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Err == nil || e.Err.Error() != "Not found." {
		t.Fatalf("detail not preserved: %v", err)
	}
}

func TestClient_FieldErrorBody(t *testing.T) {
	c := loggedIn(t, mockapi.BuyerUsername, mockapi.BuyerPassword)
	_, err := c.CreateReview(context.Background(), domain.ReviewInput{Product: 1, Rating: 9})
	if errx.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", errx.StatusOf(err))
	}
}

func TestClient_UnauthenticatedCart(t *testing.T) {
	c := newClient(t)
	cart, err := c.GetCart(context.Background())
	if !errx.IsUnauthorized(err) {
		t.Fatalf("err = %v, want 401", err)
	}
	if cart.Items == nil {
		t.Fatal("failed cart call must still return a non-nil item slice")
	}
}

func TestClient_BareArrayAndPage(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	cats, err := c.ListCategories(ctx)
	if err != nil || len(cats) != 5 {
		t.Fatalf("categories: %d %v", len(cats), err)
	}

	page, err := c.ListProducts(ctx, domain.ProductFilter{Search: "  laptop ", Page: 1})
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if page.Count == 0 || page.HasNext() {
		t.Fatalf("laptop search: count=%d next=%v", page.Count, page.HasNext())
	}
	for _, p := range page.Results {
		if p.Images == nil {
			t.Fatal("images must be non-nil")
		}
	}
}

func TestClient_WishlistRoundTrip(t *testing.T) {
	c := loggedIn(t, mockapi.BuyerUsername, mockapi.BuyerPassword)
	ctx := context.Background()

	it, err := c.AddToWishlist(ctx, 5)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.AddToWishlist(ctx, 5); errx.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("duplicate add: %v", err)
	}
	if err := c.RemoveFromWishlist(ctx, it.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, err := c.ListWishlist(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("list after remove: %d %v", len(items), err)
	}
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	c := api.New("http://127.0.0.1:0", api.WithRateLimit(0.001, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.UnreadCount(ctx); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
