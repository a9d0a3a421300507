package domain

import "time"

// Message is one buyer/shop-owner message.
type Message struct {
	ID            int64     `json:"id"`
	Sender        int64     `json:"sender"`
	SenderName    string    `json:"sender_name"`
	Recipient     int64     `json:"recipient"`
	RecipientName string    `json:"recipient_name"`
	Content       string    `json:"content"`
	Product       *int64    `json:"product,omitempty"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

// MessageInput is the body of POST /api/messages/.
type MessageInput struct {
	Recipient int64  `json:"recipient"`
	Content   string `json:"content"`
	Product   *int64 `json:"product,omitempty"`
}

// UnreadCount is the body of /api/messages/unread_count/.
type UnreadCount struct {
	UnreadCount int `json:"unread_count"`
}
