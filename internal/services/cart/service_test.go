package cart_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/internal/api"
	"storefront/internal/domain"
	"storefront/internal/mockapi"
	"storefront/internal/services/cart"
)

// blockingCart lets a test observe the snapshot while a call is in flight.
type blockingCart struct {
	domain.CartAPI
	started chan struct{}
	release chan error
	result  domain.Cart
}

func (b *blockingCart) UpdateCartItem(ctx context.Context, itemID int64, qty int) (domain.Cart, error) {
	close(b.started)
	if err := <-b.release; err != nil {
		return domain.Cart{}, err
	}
	return b.result, nil
}

type staticCart struct {
	domain.CartAPI
	cart domain.Cart
}

func (s staticCart) GetCart(context.Context) (domain.Cart, error) { return s.cart, nil }

func seeded() domain.Cart {
	c := domain.Cart{Items: []domain.CartItem{
		{ID: 1, Product: domain.Product{ID: 10, Price: decimal.NewFromInt(100)}, Quantity: 1},
		{ID: 2, Product: domain.Product{ID: 11, Price: decimal.NewFromInt(50)}, Quantity: 2},
	}}
	c.Recalculate()
	return c
}

func TestUpdateQuantity_RevertsOnFailure(t *testing.T) {
	ctx := context.Background()
	fake := &blockingCart{started: make(chan struct{}), release: make(chan error, 1)}
	svc := cart.New(&mixedCart{get: seeded(), blocking: fake})
	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.UpdateQuantity(ctx, 1, 5)
		done <- err
	}()

	<-fake.started
	if n, total := svc.Totals(); n != 7 || !total.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("optimistic totals: %d %s", n, total)
	}

	fake.release <- errors.New("boom")
	if err := <-done; err == nil {
		t.Fatal("expected error")
	}
	if n, total := svc.Totals(); n != 3 || !total.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("reverted totals: %d %s", n, total)
	}
}

func TestUpdateQuantity_AdoptsServerCart(t *testing.T) {
	ctx := context.Background()
	server := seeded()
	server.Items[0].Quantity = 4
	server.Recalculate()

	fake := &blockingCart{started: make(chan struct{}), release: make(chan error, 1), result: server}
	fake.release <- nil
	svc := cart.New(&mixedCart{get: seeded(), blocking: fake})
	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	got, err := svc.UpdateQuantity(ctx, 1, 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Items[0].Quantity != 4 || svc.Snapshot().Items[0].Quantity != 4 {
		t.Fatal("server response should replace the optimistic value")
	}
}

func TestUpdateQuantity_UnknownItem(t *testing.T) {
	svc := cart.New(staticCart{cart: seeded()})
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := svc.UpdateQuantity(context.Background(), 99, 1); !errors.Is(err, cart.ErrUnknownItem) {
		t.Fatalf("err = %v", err)
	}
}

func TestCart_AgainstBackend(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(mockapi.New().Handler())
	defer srv.Close()
	client := api.New(srv.URL)
	resp, err := client.Login(ctx, mockapi.BuyerUsername, mockapi.BuyerPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	client.SetToken(resp.Access)

	svc := cart.New(client)
	c, err := svc.Add(ctx, 1, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, 4, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if n, _ := svc.Totals(); n != 3 {
		t.Fatalf("items = %d, want 3", n)
	}

	if _, err := svc.UpdateQuantity(ctx, c.Items[0].ID, 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if got := svc.Snapshot(); len(got.Items) != 1 || got.Items[0].Product.ID != 4 {
		t.Fatalf("after remove: %+v", got.Items)
	}

	if _, err := svc.Add(ctx, 3, 1); err == nil {
		t.Fatal("out-of-stock add should fail")
	}
	if n, _ := svc.Totals(); n != 2 {
		t.Fatalf("failed add changed the snapshot: %d", n)
	}

	if _, err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !svc.Snapshot().IsEmpty() {
		t.Fatal("cart not empty after clear")
	}
}

type mixedCart struct {
	domain.CartAPI
	get      domain.Cart
	blocking *blockingCart
}

func (m *mixedCart) GetCart(context.Context) (domain.Cart, error) { return m.get, nil }

func (m *mixedCart) UpdateCartItem(ctx context.Context, itemID int64, qty int) (domain.Cart, error) {
	return m.blocking.UpdateCartItem(ctx, itemID, qty)
}
