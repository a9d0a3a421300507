package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"storefront/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.Page[domain.Product], error) {
	page, err := getPage[domain.Product](ctx, c, "/api/products/", filter.Values())
	for i := range page.Results {
		normalizeProduct(&page.Results[i])
	}
	return page, err
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, fmt.Sprintf("/api/products/%d/", id), nil, &p); err != nil {
		return domain.Product{}, err
	}
	normalizeProduct(&p)
	return p, nil
}

func (c *Client) Autocomplete(ctx context.Context, query string) ([]domain.ProductSuggestion, error) {
	return getList[domain.ProductSuggestion](ctx, c, "/api/products/autocomplete/", url.Values{"q": {query}})
}

func (c *Client) Trending(ctx context.Context, limit int) ([]domain.Product, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	out, err := getList[domain.Product](ctx, c, "/api/products/trending/", q)
	for i := range out {
		normalizeProduct(&out[i])
	}
	return out, err
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return getList[domain.Category](ctx, c, "/api/categories/", nil)
}

func (c *Client) GetCategory(ctx context.Context, slug string) (domain.Category, error) {
	var out domain.Category
	if err := c.get(ctx, "/api/categories/"+url.PathEscape(slug)+"/", nil, &out); err != nil {
		return domain.Category{}, err
	}
	return out, nil
}

func normalizeProduct(p *domain.Product) {
	if p.Images == nil {
		p.Images = []domain.ProductImage{}
	}
}

var _ domain.CatalogAPI = (*Client)(nil)
