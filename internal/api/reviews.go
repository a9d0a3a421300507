package api

import (
	"context"
	"net/url"
	"strconv"

	"storefront/internal/domain"
)

func (c *Client) ProductReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	q := url.Values{"product": {strconv.FormatInt(productID, 10)}}
	return getList[domain.Review](ctx, c, "/api/reviews/", q)
}

func (c *Client) CreateReview(ctx context.Context, in domain.ReviewInput) (domain.Review, error) {
	var out domain.Review
	if err := c.post(ctx, "/api/reviews/", in, &out); err != nil {
		return domain.Review{}, err
	}
	return out, nil
}

func (c *Client) ShopReviews(ctx context.Context, shopID int64) ([]domain.ShopReview, error) {
	q := url.Values{"shop_id": {strconv.FormatInt(shopID, 10)}}
	return getList[domain.ShopReview](ctx, c, "/api/shop-reviews/by_shop/", q)
}

func (c *Client) CreateShopReview(ctx context.Context, in domain.ShopReviewInput) (domain.ShopReview, error) {
	var out domain.ShopReview
	if err := c.post(ctx, "/api/shop-reviews/", in, &out); err != nil {
		return domain.ShopReview{}, err
	}
	return out, nil
}

var _ domain.ReviewAPI = (*Client)(nil)
