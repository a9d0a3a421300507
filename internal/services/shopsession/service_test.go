package shopsession_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"storefront/internal/api"
	"storefront/internal/mockapi"
	"storefront/internal/services/shopsession"
	"storefront/internal/store"
)

func newService(t *testing.T, user, pass string) (*shopsession.Service, shopsession.Deps) {
	t.Helper()
	srv := httptest.NewServer(mockapi.New().Handler())
	t.Cleanup(srv.Close)
	client := api.New(srv.URL)
	resp, err := client.Login(context.Background(), user, pass)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	client.SetToken(resp.Access)
	deps := shopsession.Deps{Shops: client, Catalog: client, Reviews: client, Store: store.NewFileStore(t.TempDir())}
	return shopsession.New(deps), deps
}

func TestOpen_NonOwner(t *testing.T) {
	svc, _ := newService(t, mockapi.BuyerUsername, mockapi.BuyerPassword)
	if _, err := svc.Open(context.Background()); !errors.Is(err, shopsession.ErrNoShop) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.Analytics(context.Background(), 7); !errors.Is(err, shopsession.ErrNotOpen) {
		t.Fatalf("analytics without session: %v", err)
	}
}

func TestOpen_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	svc, deps := newService(t, mockapi.OwnerUsername, mockapi.OwnerPassword)

	shop, err := svc.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if shop.ID != mockapi.GadgetShopID {
		t.Fatalf("shop = %d", shop.ID)
	}

	again := shopsession.New(deps)
	sess, ok, err := again.Current()
	if err != nil || !ok || sess.ShopID != shop.ID {
		t.Fatalf("current: %+v ok=%v err=%v", sess, ok, err)
	}

	page, err := again.Products(ctx, 1)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	for _, p := range page.Results {
		if p.Shop != shop.ID {
			t.Fatalf("product %d belongs to shop %d", p.ID, p.Shop)
		}
	}

	a, err := again.Analytics(ctx, 14)
	if err != nil || len(a.Sales) != 14 {
		t.Fatalf("analytics: %d %v", len(a.Sales), err)
	}

	if err := again.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok, _ := shopsession.New(deps).Current(); ok {
		t.Fatal("session survived close")
	}
}
