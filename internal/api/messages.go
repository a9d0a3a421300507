package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"storefront/internal/domain"
)

func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	return getList[domain.Message](ctx, c, "/api/messages/", nil)
}

// Conversation returns the messages exchanged with userID, oldest first.
func (c *Client) Conversation(ctx context.Context, userID int64) ([]domain.Message, error) {
	q := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	return getList[domain.Message](ctx, c, "/api/messages/conversation/", q)
}

func (c *Client) SendMessage(ctx context.Context, in domain.MessageInput) (domain.Message, error) {
	var out domain.Message
	if err := c.post(ctx, "/api/messages/", in, &out); err != nil {
		return domain.Message{}, err
	}
	return out, nil
}

func (c *Client) MarkRead(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/api/messages/%d/mark_read/", id), struct{}{}, nil)
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out domain.UnreadCount
	if err := c.get(ctx, "/api/messages/unread_count/", nil, &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

var _ domain.MessageAPI = (*Client)(nil)
