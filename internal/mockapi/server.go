package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"storefront/internal/domain"
	"storefront/internal/logx"
)

// PageSize is the product listing page size.
const PageSize = 10

type account struct {
	user     domain.User
	password string
}

// Server holds the whole backend state behind one mutex.
type Server struct {
	mu sync.Mutex

	nextID      int64
	users       map[int64]*account
	tokens      map[string]int64
	categories  []*domain.Category
	products    []*domain.Product
	shops       []*domain.Shop
	reviews     []domain.Review
	shopReviews []domain.ShopReview
	messages    []*domain.Message
	wishlists   map[int64][]domain.WishlistItem
	carts       map[int64]*domain.Cart
	orders      []*domain.Order
	payments    []*domain.Payment
	subscribers map[string]struct{}

	now    func() time.Time
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now for timestamps and analytics windows.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns a seeded server.
func New(opts ...Option) *Server {
	s := &Server{
		nextID:      1000,
		users:       make(map[int64]*account),
		tokens:      make(map[string]int64),
		wishlists:   make(map[int64][]domain.WishlistItem),
		carts:       make(map[int64]*domain.Cart),
		subscribers: make(map[string]struct{}),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Post("/api/auth/login/", s.login)
	r.Post("/api/auth/register/", s.register)

	r.Get("/api/products/", s.listProducts)
	r.Get("/api/products/autocomplete/", s.autocomplete)
	r.Get("/api/products/trending/", s.trending)
	r.Get("/api/products/{id}/", s.getProduct)
	r.Get("/api/categories/", s.listCategories)
	r.Get("/api/categories/{slug}/", s.getCategory)
	r.Get("/api/shops/{id}/", s.getShop)
	r.Get("/api/reviews/", s.listReviews)
	r.Get("/api/shop-reviews/by_shop/", s.listShopReviews)
	r.Post("/api/email-subscription/subscribe/", s.subscribe)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/api/auth/user/", s.currentUser)
		r.Post("/api/auth/logout/", s.logout)

		r.Get("/api/shops/my_shop/", s.myShop)
		r.Get("/api/shops/{id}/analytics/", s.shopAnalytics)

		r.Post("/api/reviews/", s.createReview)
		r.Post("/api/shop-reviews/", s.createShopReview)

		r.Get("/api/messages/", s.listMessages)
		r.Post("/api/messages/", s.sendMessage)
		r.Get("/api/messages/conversation/", s.conversation)
		r.Get("/api/messages/unread_count/", s.unreadCount)
		r.Post("/api/messages/{id}/mark_read/", s.markRead)

		r.Get("/api/wishlists/", s.listWishlist)
		r.Post("/api/wishlists/", s.addWishlist)
		r.Delete("/api/wishlists/{id}/", s.removeWishlist)

		r.Get("/api/cart/", s.getCart)
		r.Post("/api/cart/add_item/", s.addCartItem)
		r.Post("/api/cart/update_item/", s.updateCartItem)
		r.Post("/api/cart/remove_item/", s.removeCartItem)
		r.Post("/api/cart/clear/", s.clearCart)

		r.Get("/api/orders/", s.listOrders)
		r.Post("/api/orders/", s.checkout)
		r.Get("/api/orders/{id}/", s.getOrder)

		r.Post("/api/payments/create_intent/", s.createPaymentIntent)
		r.Post("/api/payments/{id}/confirm/", s.confirmPayment)
		r.Get("/api/payments/{id}/", s.getPayment)
	})
	return r
}

// ---------- middleware ----------

type ctxKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		s.mu.Lock()
		uid, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Given token not valid for any token type")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, uid)))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("bearer "):])
}

func userID(r *http.Request) int64 {
	uid, _ := r.Context().Value(ctxKey{}).(int64)
	return uid
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logx.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ---------- helpers ----------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeFieldError(w http.ResponseWriter, field, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string][]string{field: {msg}})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error - "+err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func queryID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) newID() int64 {
	s.nextID++
	return s.nextID
}
