package catalog

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
)

// ErrInvalidRating is returned for ratings outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ProductDetail is a product with its reviews.
type ProductDetail struct {
	Product domain.Product
	Reviews []domain.Review
	Summary domain.ReviewSummary
}

// ShopPage is a shop with one page of its products and its reviews.
type ShopPage struct {
	Shop     domain.Shop
	Products domain.Page[domain.Product]
	Reviews  []domain.ShopReview
	Summary  domain.ReviewSummary
}

// CategoryPage is a category with one page of its products.
type CategoryPage struct {
	Category domain.Category
	Products domain.Page[domain.Product]
}

type Service struct {
	catalog domain.CatalogAPI
	shops   domain.ShopAPI
	reviews domain.ReviewAPI
}

func New(catalog domain.CatalogAPI, shops domain.ShopAPI, reviews domain.ReviewAPI) *Service {
	return &Service{catalog: catalog, shops: shops, reviews: reviews}
}

func (s *Service) Product(ctx context.Context, id int64) (ProductDetail, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return ProductDetail{}, err
	}
	reviews, summary, err := s.ProductReviews(ctx, id)
	if err != nil {
		return ProductDetail{Product: p}, err
	}
	return ProductDetail{Product: p, Reviews: reviews, Summary: summary}, nil
}

func (s *Service) ProductReviews(ctx context.Context, productID int64) ([]domain.Review, domain.ReviewSummary, error) {
	reviews, err := s.reviews.ProductReviews(ctx, productID)
	if err != nil {
		return nil, domain.ReviewSummary{}, err
	}
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return reviews, domain.Summarize(ratings), nil
}

func (s *Service) ShopReviews(ctx context.Context, shopID int64) ([]domain.ShopReview, domain.ReviewSummary, error) {
	reviews, err := s.reviews.ShopReviews(ctx, shopID)
	if err != nil {
		return nil, domain.ReviewSummary{}, err
	}
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return reviews, domain.Summarize(ratings), nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *Service) CategoryProducts(ctx context.Context, slug string, page int) (CategoryPage, error) {
	c, err := s.catalog.GetCategory(ctx, slug)
	if err != nil {
		return CategoryPage{}, err
	}
	products, err := s.catalog.ListProducts(ctx, domain.ProductFilter{Category: c.Slug, Page: page})
	if err != nil {
		return CategoryPage{Category: c}, err
	}
	return CategoryPage{Category: c, Products: products}, nil
}

func (s *Service) Shop(ctx context.Context, id int64, page int) (ShopPage, error) {
	shop, err := s.shops.GetShop(ctx, id)
	if err != nil {
		return ShopPage{}, err
	}
	out := ShopPage{Shop: shop}
	if out.Products, err = s.catalog.ListProducts(ctx, domain.ProductFilter{Shop: id, Page: page}); err != nil {
		return out, err
	}
	if out.Reviews, out.Summary, err = s.ShopReviews(ctx, id); err != nil {
		return out, err
	}
	return out, nil
}

// Review posts a product review.
func (s *Service) Review(ctx context.Context, in domain.ReviewInput) (domain.Review, error) {
	if !validRating(in.Rating) {
		return domain.Review{}, ErrInvalidRating
	}
	in.Comment = strings.TrimSpace(in.Comment)
	return s.reviews.CreateReview(ctx, in)
}

// ReviewShop posts a shop review.
func (s *Service) ReviewShop(ctx context.Context, in domain.ShopReviewInput) (domain.ShopReview, error) {
	if !validRating(in.Rating) {
		return domain.ShopReview{}, ErrInvalidRating
	}
	in.Comment = strings.TrimSpace(in.Comment)
	return s.reviews.CreateShopReview(ctx, in)
}

func validRating(r int) bool { return r >= domain.MinRating && r <= domain.MaxRating }
