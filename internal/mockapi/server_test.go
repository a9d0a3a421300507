package mockapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/mockapi"
)

type harness struct {
	t   *testing.T
	srv *httptest.Server
}

func newHarness(t *testing.T, opts ...mockapi.Option) *harness {
	t.Helper()
	srv := httptest.NewServer(mockapi.New(opts...).Handler())
	t.Cleanup(srv.Close)
	return &harness{t: t, srv: srv}
}

func (h *harness) call(method, path, token string, in, out any) int {
	h.t.Helper()
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			h.t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, h.srv.URL+path, &body)
	if err != nil {
		h.t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.srv.Client().Do(req)
	if err != nil {
		h.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			h.t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (h *harness) login(user, pass string) string {
	h.t.Helper()
	var out domain.LoginResponse
	in := map[string]string{"username": user, "password": pass}
	if code := h.call(http.MethodPost, "/api/auth/login/", "", in, &out); code != http.StatusOK {
		h.t.Fatalf("login %s: status %d", user, code)
	}
	return out.Access
}

func TestLogin_BadPassword_Unauthorized(t *testing.T) {
	h := newHarness(t)
	in := map[string]string{"username": mockapi.BuyerUsername, "password": "nope"}
	if code := h.call(http.MethodPost, "/api/auth/login/", "", in, nil); code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	h := newHarness(t)
	tok := h.login(mockapi.BuyerUsername, mockapi.BuyerPassword)

	if code := h.call(http.MethodGet, "/api/auth/user/", tok, nil, nil); code != http.StatusOK {
		t.Fatalf("user before logout: %d", code)
	}
	if code := h.call(http.MethodPost, "/api/auth/logout/", tok, nil, nil); code != http.StatusNoContent {
		t.Fatalf("logout: %d", code)
	}
	if code := h.call(http.MethodGet, "/api/auth/user/", tok, nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("user after logout: %d, want 401", code)
	}
}

func TestProducts_Pagination(t *testing.T) {
	h := newHarness(t)

	var first domain.Page[domain.Product]
	if code := h.call(http.MethodGet, "/api/products/", "", nil, &first); code != http.StatusOK {
		t.Fatalf("list: %d", code)
	}
	if first.Count != 12 || len(first.Results) != mockapi.PageSize || first.Next == nil || first.Previous != nil {
		t.Fatalf("page 1: count=%d len=%d next=%v prev=%v", first.Count, len(first.Results), first.Next, first.Previous)
	}

	var second domain.Page[domain.Product]
	h.call(http.MethodGet, "/api/products/?page=2", "", nil, &second)
	if len(second.Results) != 2 || second.Next != nil || second.Previous == nil {
		t.Fatalf("page 2: len=%d", len(second.Results))
	}

	if code := h.call(http.MethodGet, "/api/products/?page=3", "", nil, nil); code != http.StatusNotFound {
		t.Fatalf("page 3: %d, want 404", code)
	}
}

func TestProducts_FilterAndOrder(t *testing.T) {
	h := newHarness(t)

	var page domain.Page[domain.Product]
	h.call(http.MethodGet, "/api/products/?category=laptops&max_price=29000&ordering=price", "", nil, &page)
	if page.Count != 3 {
		t.Fatalf("count = %d, want 3", page.Count)
	}
	for i := 1; i < len(page.Results); i++ {
		if page.Results[i].Price.LessThan(page.Results[i-1].Price) {
			t.Fatalf("not ordered by price at %d", i)
		}
	}
}

func TestCart_AddUpdateRemove(t *testing.T) {
	h := newHarness(t)
	tok := h.login(mockapi.BuyerUsername, mockapi.BuyerPassword)

	var cart domain.Cart
	in := map[string]any{"product_id": 1, "quantity": 2}
	if code := h.call(http.MethodPost, "/api/cart/add_item/", tok, in, &cart); code != http.StatusOK {
		t.Fatalf("add: %d", code)
	}
	if cart.TotalItems != 2 || cart.TotalPrice.String() != "79800" {
		t.Fatalf("after add: items=%d total=%s", cart.TotalItems, cart.TotalPrice)
	}

	itemID := cart.Items[0].ID
	h.call(http.MethodPost, "/api/cart/update_item/", tok, map[string]any{"item_id": itemID, "quantity": 0}, &cart)
	if !cart.IsEmpty() {
		t.Fatalf("update to 0 should remove line, got %d items", len(cart.Items))
	}

	in = map[string]any{"product_id": 3, "quantity": 1}
	if code := h.call(http.MethodPost, "/api/cart/add_item/", tok, in, nil); code != http.StatusBadRequest {
		t.Fatalf("out of stock add: %d, want 400", code)
	}
}

func TestCheckout_PayWithTestCards(t *testing.T) {
	h := newHarness(t)
	tok := h.login(mockapi.BuyerUsername, mockapi.BuyerPassword)

	if code := h.call(http.MethodPost, "/api/orders/", tok, domain.CheckoutInput{ShippingAddress: "1 Main St"}, nil); code != http.StatusBadRequest {
		t.Fatalf("empty cart checkout: %d, want 400", code)
	}

	h.call(http.MethodPost, "/api/cart/add_item/", tok, map[string]any{"product_id": 6, "quantity": 1}, nil)
	var order domain.Order
	if code := h.call(http.MethodPost, "/api/orders/", tok, domain.CheckoutInput{ShippingAddress: "1 Main St"}, &order); code != http.StatusCreated {
		t.Fatalf("checkout: %d", code)
	}
	if order.Status != domain.OrderPending || order.TotalAmount.String() != "10900" {
		t.Fatalf("order: status=%s total=%s", order.Status, order.TotalAmount)
	}

	var intent domain.Payment
	h.call(http.MethodPost, "/api/payments/create_intent/", tok, map[string]any{"order_id": order.ID}, &intent)
	if intent.Status != domain.PaymentRequiresConfirmation {
		t.Fatalf("intent status = %s", intent.Status)
	}

	var declined domain.Payment
	h.call(http.MethodPost, "/api/payments/"+itoa(intent.ID)+"/confirm/", tok, map[string]string{"test_card": domain.TestCardDecline}, &declined)
	if declined.Status != domain.PaymentFailed || declined.FailureReason == "" {
		t.Fatalf("decline: %+v", declined)
	}

	h.call(http.MethodPost, "/api/payments/create_intent/", tok, map[string]any{"order_id": order.ID}, &intent)
	var paid domain.Payment
	h.call(http.MethodPost, "/api/payments/"+itoa(intent.ID)+"/confirm/", tok, map[string]string{"test_card": domain.TestCardSuccess}, &paid)
	if paid.Status != domain.PaymentSucceeded {
		t.Fatalf("success card: %s", paid.Status)
	}

	var got domain.Order
	h.call(http.MethodGet, "/api/orders/"+itoa(order.ID)+"/", tok, nil, &got)
	if got.Status != domain.OrderPaid {
		t.Fatalf("order status = %s, want paid", got.Status)
	}
}

func TestAnalytics_OwnerOnly(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	h := newHarness(t, mockapi.WithClock(func() time.Time { return now }))

	buyer := h.login(mockapi.BuyerUsername, mockapi.BuyerPassword)
	h.call(http.MethodPost, "/api/cart/add_item/", buyer, map[string]any{"product_id": 1, "quantity": 1}, nil)
	h.call(http.MethodPost, "/api/cart/add_item/", buyer, map[string]any{"product_id": 4, "quantity": 2}, nil)
	h.call(http.MethodPost, "/api/orders/", buyer, domain.CheckoutInput{ShippingAddress: "x"}, nil)

	path := "/api/shops/" + itoa(mockapi.GadgetShopID) + "/analytics/?days=7"
	if code := h.call(http.MethodGet, path, buyer, nil, nil); code != http.StatusForbidden {
		t.Fatalf("buyer analytics: %d, want 403", code)
	}

	owner := h.login(mockapi.OwnerUsername, mockapi.OwnerPassword)
	var a domain.ShopAnalytics
	if code := h.call(http.MethodGet, path, owner, nil, &a); code != http.StatusOK {
		t.Fatalf("owner analytics: %d", code)
	}
	if len(a.Sales) != 7 || a.TotalOrders != 1 || a.TotalRevenue.String() != "39900" {
		t.Fatalf("analytics: sales=%d orders=%d revenue=%s", len(a.Sales), a.TotalOrders, a.TotalRevenue)
	}
	if last := a.Sales[len(a.Sales)-1]; last.Date != "2026-03-10" || last.Orders != 1 {
		t.Fatalf("last bucket: %+v", last)
	}
}

func TestMessages_UnreadAndMarkRead(t *testing.T) {
	h := newHarness(t)
	buyer := h.login(mockapi.BuyerUsername, mockapi.BuyerPassword)

	var n domain.UnreadCount
	h.call(http.MethodGet, "/api/messages/unread_count/", buyer, nil, &n)
	if n.UnreadCount != 1 {
		t.Fatalf("unread = %d, want 1", n.UnreadCount)
	}

	var msgs []domain.Message
	h.call(http.MethodGet, "/api/messages/", buyer, nil, &msgs)
	if code := h.call(http.MethodPost, "/api/messages/"+itoa(msgs[0].ID)+"/mark_read/", buyer, nil, nil); code != http.StatusOK {
		t.Fatalf("mark read: %d", code)
	}
	h.call(http.MethodGet, "/api/messages/unread_count/", buyer, nil, &n)
	if n.UnreadCount != 0 {
		t.Fatalf("unread after mark = %d", n.UnreadCount)
	}

	self := domain.MessageInput{Recipient: 1, Content: "hi me"}
	if code := h.call(http.MethodPost, "/api/messages/", buyer, self, nil); code != http.StatusBadRequest {
		t.Fatalf("message to self: %d, want 400", code)
	}
}

func TestReview_RatingBounds(t *testing.T) {
	h := newHarness(t)
	tok := h.login(mockapi.OwnerUsername, mockapi.OwnerPassword)

	bad := domain.ReviewInput{Product: 2, Rating: 6}
	if code := h.call(http.MethodPost, "/api/reviews/", tok, bad, nil); code != http.StatusBadRequest {
		t.Fatalf("rating 6: %d, want 400", code)
	}
	ok := domain.ReviewInput{Product: 2, Rating: 4, Comment: "fine"}
	if code := h.call(http.MethodPost, "/api/reviews/", tok, ok, nil); code != http.StatusCreated {
		t.Fatalf("rating 4: %d", code)
	}

	var p domain.Product
	h.call(http.MethodGet, "/api/products/2/", "", nil, &p)
	if p.ReviewCount != 1 || p.AverageRating != 4 {
		t.Fatalf("product rating: count=%d avg=%v", p.ReviewCount, p.AverageRating)
	}
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
