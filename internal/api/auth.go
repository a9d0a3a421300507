package api

import (
	"context"

	"storefront/internal/domain"
)

func (c *Client) Login(ctx context.Context, username, password string) (domain.LoginResponse, error) {
	var out domain.LoginResponse
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	if err := c.post(ctx, "/api/auth/login/", in, &out); err != nil {
		return domain.LoginResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	var out domain.User
	if err := c.post(ctx, "/api/auth/register/", req, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/api/auth/user/", nil, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout/", struct{}{}, nil)
}

var _ domain.AuthAPI = (*Client)(nil)
