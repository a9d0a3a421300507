package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCancelled = "cancelled"
)

// OrderItem is a product line frozen at checkout time.
type OrderItem struct {
	Product     int64           `json:"product"`
	ProductName string          `json:"product_name"`
	Shop        int64           `json:"shop"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Order is a placed order.
type Order struct {
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CheckoutInput is the body of POST /api/orders/.
type CheckoutInput struct {
	ShippingAddress string `json:"shipping_address"`
}

// Payment statuses used by the test payment provider.
const (
	PaymentRequiresConfirmation = "requires_confirmation"
	PaymentSucceeded            = "succeeded"
	PaymentFailed               = "failed"
)

// Test card numbers understood by the backend's test provider.
const (
	TestCardSuccess = "4242424242424242"
	TestCardDecline = "4000000000000002"
)

// Payment is a payment attempt against an order.
type Payment struct {
	ID            int64           `json:"id"`
	Order         int64           `json:"order"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Provider      string          `json:"provider"`
	Status        string          `json:"status"`
	ClientSecret  string          `json:"client_secret,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
