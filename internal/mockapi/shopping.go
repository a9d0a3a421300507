package mockapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// ---------- wishlist ----------

func (s *Server) listWishlist(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	s.mu.Lock()
	out := append([]domain.WishlistItem{}, s.wishlists[uid]...)
	for i := range out {
		if p := s.productByID(out[i].Product.ID); p != nil {
			out[i].Product = *p
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addWishlist(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductID int64 `json:"product_id"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	uid := userID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.productByID(in.ProductID)
	if p == nil {
		writeFieldError(w, "product_id", "Invalid pk - object does not exist.")
		return
	}
	for _, it := range s.wishlists[uid] {
		if it.Product.ID == p.ID {
			writeDetail(w, http.StatusBadRequest, "Product already in wishlist.")
			return
		}
	}
	it := domain.WishlistItem{ID: s.newID(), Product: *p, CreatedAt: s.now()}
	s.wishlists[uid] = append(s.wishlists[uid], it)
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) removeWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	uid := userID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.wishlists[uid]
	for i, it := range items {
		if it.ID == id {
			s.wishlists[uid] = append(items[:i:i], items[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Not found.")
}

// ---------- cart ----------

// cartFor returns the user's cart, creating it on first use. Callers hold s.mu.
func (s *Server) cartFor(uid int64) *domain.Cart {
	c := s.carts[uid]
	if c == nil {
		c = &domain.Cart{ID: s.newID(), Items: []domain.CartItem{}, UpdatedAt: s.now()}
		s.carts[uid] = c
	}
	return c
}

// cartView refreshes product snapshots and totals. Callers hold s.mu.
func (s *Server) cartView(c *domain.Cart) domain.Cart {
	for i := range c.Items {
		if p := s.productByID(c.Items[i].Product.ID); p != nil {
			c.Items[i].Product = *p
		}
	}
	c.Recalculate()
	return c.Clone()
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := s.cartView(s.cartFor(userID(r)))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	in := struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}{Quantity: 1}
	if !readJSON(w, r, &in) {
		return
	}
	if in.Quantity < 1 {
		writeFieldError(w, "quantity", "Ensure this value is greater than or equal to 1.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.productByID(in.ProductID)
	if p == nil {
		writeFieldError(w, "product_id", "Invalid pk - object does not exist.")
		return
	}
	c := s.cartFor(userID(r))
	idx := -1
	want := in.Quantity
	for i, it := range c.Items {
		if it.Product.ID == p.ID {
			idx = i
			want += it.Quantity
			break
		}
	}
	if want > p.Stock {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Only %d left in stock.", p.Stock))
		return
	}
	if idx >= 0 {
		c.Items[idx].Quantity = want
	} else {
		c.Items = append(c.Items, domain.CartItem{ID: s.newID(), Product: *p, Quantity: want})
	}
	c.UpdatedAt = s.now()
	writeJSON(w, http.StatusOK, s.cartView(c))
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ItemID   int64 `json:"item_id"`
		Quantity int   `json:"quantity"`
	}
	if !readJSON(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(userID(r))
	it, idx, ok := c.Item(in.ItemID)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Cart item not found.")
		return
	}
	if in.Quantity <= 0 {
		c.Items = append(c.Items[:idx:idx], c.Items[idx+1:]...)
	} else {
		if p := s.productByID(it.Product.ID); p != nil && in.Quantity > p.Stock {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Only %d left in stock.", p.Stock))
			return
		}
		c.Items[idx].Quantity = in.Quantity
	}
	c.UpdatedAt = s.now()
	writeJSON(w, http.StatusOK, s.cartView(c))
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ItemID int64 `json:"item_id"`
	}
	if !readJSON(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(userID(r))
	_, idx, ok := c.Item(in.ItemID)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Cart item not found.")
		return
	}
	c.Items = append(c.Items[:idx:idx], c.Items[idx+1:]...)
	c.UpdatedAt = s.now()
	writeJSON(w, http.StatusOK, s.cartView(c))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(userID(r))
	c.Items = []domain.CartItem{}
	c.UpdatedAt = s.now()
	writeJSON(w, http.StatusOK, s.cartView(c))
}

// ---------- orders ----------

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	s.mu.Lock()
	out := []domain.Order{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].User == uid {
			out = append(out, *s.orders[i])
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	o := s.orderFor(userID(r), id)
	var out domain.Order
	if o != nil {
		out = *o
	}
	s.mu.Unlock()
	if o == nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var in domain.CheckoutInput
	if !readJSON(w, r, &in) {
		return
	}
	addr := strings.TrimSpace(in.ShippingAddress)
	if addr == "" {
		writeFieldError(w, "shipping_address", "This field may not be blank.")
		return
	}
	uid := userID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(uid)
	if c.IsEmpty() {
		writeDetail(w, http.StatusBadRequest, "Cart is empty.")
		return
	}
	for _, it := range c.Items {
		p := s.productByID(it.Product.ID)
		if p == nil || it.Quantity > p.Stock {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Not enough stock for %s.", it.Product.Name))
			return
		}
	}

	o := &domain.Order{
		ID:              s.newID(),
		User:            uid,
		Status:          domain.OrderPending,
		Items:           make([]domain.OrderItem, 0, len(c.Items)),
		TotalAmount:     decimal.Zero,
		ShippingAddress: addr,
		CreatedAt:       s.now(),
	}
	for _, it := range c.Items {
		p := s.productByID(it.Product.ID)
		p.Stock -= it.Quantity
		p.InStock = p.Stock > 0
		price := p.EffectivePrice()
		o.Items = append(o.Items, domain.OrderItem{
			Product:     p.ID,
			ProductName: p.Name,
			Shop:        p.Shop,
			Quantity:    it.Quantity,
			Price:       price,
		})
		o.TotalAmount = o.TotalAmount.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	s.orders = append(s.orders, o)
	c.Items = []domain.CartItem{}
	c.UpdatedAt = s.now()

	writeJSON(w, http.StatusCreated, o)
}

// orderFor returns the order if uid placed it. Callers hold s.mu.
func (s *Server) orderFor(uid, id int64) *domain.Order {
	for _, o := range s.orders {
		if o.ID == id && o.User == uid {
			return o
		}
	}
	return nil
}

// ---------- payments ----------

const (
	paymentCurrency = "THB"
	paymentProvider = "test"
)

func (s *Server) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OrderID int64 `json:"order_id"`
	}
	if !readJSON(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orderFor(userID(r), in.OrderID)
	if o == nil {
		writeDetail(w, http.StatusNotFound, "Order not found.")
		return
	}
	if o.Status != domain.OrderPending {
		writeDetail(w, http.StatusBadRequest, "Order is not awaiting payment.")
		return
	}
	p := &domain.Payment{
		ID:           s.newID(),
		Order:        o.ID,
		Amount:       o.TotalAmount,
		Currency:     paymentCurrency,
		Provider:     paymentProvider,
		Status:       domain.PaymentRequiresConfirmation,
		ClientSecret: "pi_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		CreatedAt:    s.now(),
	}
	s.payments = append(s.payments, p)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) confirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in struct {
		TestCard string `json:"test_card"`
	}
	if !readJSON(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, o := s.paymentFor(userID(r), id)
	if p == nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if p.Status != domain.PaymentRequiresConfirmation {
		writeDetail(w, http.StatusBadRequest, "Payment has already been processed.")
		return
	}
	switch strings.ReplaceAll(in.TestCard, " ", "") {
	case domain.TestCardSuccess:
		p.Status = domain.PaymentSucceeded
		o.Status = domain.OrderPaid
	case domain.TestCardDecline:
		p.Status = domain.PaymentFailed
		p.FailureReason = "card_declined"
	default:
		writeFieldError(w, "test_card", "Unknown test card.")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	p, _ := s.paymentFor(userID(r), id)
	var out domain.Payment
	if p != nil {
		out = *p
	}
	s.mu.Unlock()
	if p == nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// paymentFor returns the payment and its order if uid owns the order.
// Callers hold s.mu.
func (s *Server) paymentFor(uid, id int64) (*domain.Payment, *domain.Order) {
	for _, p := range s.payments {
		if p.ID != id {
			continue
		}
		if o := s.orderFor(uid, p.Order); o != nil {
			return p, o
		}
		return nil, nil
	}
	return nil, nil
}
