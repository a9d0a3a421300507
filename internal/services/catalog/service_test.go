package catalog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"storefront/internal/api"
	"storefront/internal/domain"
	"storefront/internal/mockapi"
	"storefront/internal/services/catalog"
)

func newService(t *testing.T) (*catalog.Service, *api.Client) {
	t.Helper()
	srv := httptest.NewServer(mockapi.New().Handler())
	t.Cleanup(srv.Close)
	client := api.New(srv.URL)
	return catalog.New(client, client, client), client
}

func TestProduct_WithReviewSummary(t *testing.T) {
	svc, _ := newService(t)
	d, err := svc.Product(context.Background(), 1)
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if len(d.Reviews) != 2 || d.Summary.TotalCount != 2 || d.Summary.AverageRating != 4.5 {
		t.Fatalf("summary = %+v", d.Summary)
	}
	if d.Summary.Distribution[5] != 1 || d.Summary.Distribution[4] != 1 {
		t.Fatalf("distribution = %v", d.Summary.Distribution)
	}
}

func TestCategoryAndShopPages(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	cp, err := svc.CategoryProducts(ctx, "audio", 1)
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	if cp.Category.ProductCount != 2 || cp.Products.Count != 2 {
		t.Fatalf("audio: count=%d products=%d", cp.Category.ProductCount, cp.Products.Count)
	}

	sp, err := svc.Shop(ctx, mockapi.AudioShopID, 1)
	if err != nil {
		t.Fatalf("shop: %v", err)
	}
	if sp.Shop.ProductCount != 3 || len(sp.Products.Results) != 3 {
		t.Fatalf("shop products = %d", len(sp.Products.Results))
	}
}

func TestReview_RejectsBadRatingLocally(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Review(context.Background(), domain.ReviewInput{Product: 1, Rating: 0})
	if !errors.Is(err, catalog.ErrInvalidRating) {
		t.Fatalf("err = %v", err)
	}
}

func TestReviewShop_Posts(t *testing.T) {
	ctx := context.Background()
	svc, client := newService(t)
	resp, err := client.Login(ctx, mockapi.BuyerUsername, mockapi.BuyerPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	client.SetToken(resp.Access)

	if _, err := svc.ReviewShop(ctx, domain.ShopReviewInput{Shop: mockapi.GadgetShopID, Rating: 5, Comment: " fast shipping "}); err != nil {
		t.Fatalf("review: %v", err)
	}
	reviews, sum, err := svc.ShopReviews(ctx, mockapi.GadgetShopID)
	if err != nil || len(reviews) != 1 || reviews[0].Comment != "fast shipping" || sum.AverageRating != 5 {
		t.Fatalf("reviews: %+v %v", reviews, err)
	}
}
