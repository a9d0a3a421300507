package domain

import "context"

// AuthAPI talks to the account endpoints.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (User, error)
	CurrentUser(ctx context.Context) (User, error)
	Logout(ctx context.Context) error
	SetToken(token string)
	Token() string
}

// CatalogAPI lists and looks up products and categories.
type CatalogAPI interface {
	ListProducts(ctx context.Context, filter ProductFilter) (Page[Product], error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	Autocomplete(ctx context.Context, query string) ([]ProductSuggestion, error)
	Trending(ctx context.Context, limit int) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, slug string) (Category, error)
}

// ShopAPI reads shops and the owner's analytics.
type ShopAPI interface {
	GetShop(ctx context.Context, id int64) (Shop, error)
	MyShop(ctx context.Context) (Shop, error)
	ShopAnalytics(ctx context.Context, id int64, days int) (ShopAnalytics, error)
}

// ReviewAPI reads and writes product and shop reviews.
type ReviewAPI interface {
	ProductReviews(ctx context.Context, productID int64) ([]Review, error)
	CreateReview(ctx context.Context, in ReviewInput) (Review, error)
	ShopReviews(ctx context.Context, shopID int64) ([]ShopReview, error)
	CreateShopReview(ctx context.Context, in ShopReviewInput) (ShopReview, error)
}

// MessageAPI is the buyer/owner messaging endpoint set.
type MessageAPI interface {
	ListMessages(ctx context.Context) ([]Message, error)
	Conversation(ctx context.Context, userID int64) ([]Message, error)
	SendMessage(ctx context.Context, in MessageInput) (Message, error)
	MarkRead(ctx context.Context, id int64) error
	UnreadCount(ctx context.Context) (int, error)
}

// WishlistAPI manages saved products.
type WishlistAPI interface {
	ListWishlist(ctx context.Context) ([]WishlistItem, error)
	AddToWishlist(ctx context.Context, productID int64) (WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, itemID int64) error
}

// CartAPI mutates the server cart; every call returns the resulting cart.
type CartAPI interface {
	GetCart(ctx context.Context) (Cart, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) (Cart, error)
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) (Cart, error)
	RemoveCartItem(ctx context.Context, itemID int64) (Cart, error)
	ClearCart(ctx context.Context) (Cart, error)
}

// OrderAPI places and lists orders.
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
	Checkout(ctx context.Context, in CheckoutInput) (Order, error)
}

// PaymentAPI drives the test payment provider.
type PaymentAPI interface {
	CreatePaymentIntent(ctx context.Context, orderID int64) (Payment, error)
	ConfirmPayment(ctx context.Context, paymentID int64, testCard string) (Payment, error)
	GetPayment(ctx context.Context, id int64) (Payment, error)
}

// SubscriptionAPI is the newsletter signup.
type SubscriptionAPI interface {
	Subscribe(ctx context.Context, email string) error
}
