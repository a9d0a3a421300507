package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

func TestCart_Recalculate_UsesDiscountPrice(t *testing.T) {
	discount := decimal.RequireFromString("90.00")
	c := domain.Cart{Items: []domain.CartItem{
		{ID: 1, Quantity: 2, Product: domain.Product{Price: decimal.RequireFromString("100.00"), DiscountPrice: &discount}},
		{ID: 2, Quantity: 1, Product: domain.Product{Price: decimal.RequireFromString("15.50")}},
	}}
	c.Recalculate()

	if c.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3", c.TotalItems)
	}
	if want := decimal.RequireFromString("195.50"); !c.TotalPrice.Equal(want) {
		t.Fatalf("TotalPrice = %s, want %s", c.TotalPrice, want)
	}
	if want := decimal.RequireFromString("180"); !c.Items[0].Subtotal.Equal(want) {
		t.Fatalf("subtotal = %s, want %s", c.Items[0].Subtotal, want)
	}
}

func TestCart_CloneIsIndependent(t *testing.T) {
	c := domain.Cart{Items: []domain.CartItem{{ID: 1, Quantity: 1}}}
	cp := c.Clone()
	cp.Items[0].Quantity = 5
	if c.Items[0].Quantity != 1 {
		t.Fatal("clone shares item storage")
	}
}

func TestProduct_EffectivePrice_IgnoresHigherDiscount(t *testing.T) {
	higher := decimal.RequireFromString("120")
	p := domain.Product{Price: decimal.RequireFromString("100"), DiscountPrice: &higher}
	if !p.EffectivePrice().Equal(p.Price) {
		t.Fatalf("EffectivePrice = %s", p.EffectivePrice())
	}
}

func TestProduct_DecodesDecimalStrings(t *testing.T) {
	var p domain.Product
	if err := json.Unmarshal([]byte(`{"id":3,"price":"42900.00","discount_price":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Price.Equal(decimal.NewFromInt(42900)) {
		t.Fatalf("price = %s", p.Price)
	}
	if p.DiscountPrice != nil {
		t.Fatal("null discount should stay nil")
	}
}

func TestSummarize(t *testing.T) {
	s := domain.Summarize([]int{5, 4, 4, 0, 9})
	if s.TotalCount != 3 {
		t.Fatalf("TotalCount = %d", s.TotalCount)
	}
	if s.Distribution[4] != 2 || s.Distribution[5] != 1 {
		t.Fatalf("Distribution = %v", s.Distribution)
	}
	if s.AverageRating < 4.33 || s.AverageRating > 4.34 {
		t.Fatalf("AverageRating = %f", s.AverageRating)
	}
	if empty := domain.Summarize(nil); empty.AverageRating != 0 || empty.TotalCount != 0 {
		t.Fatalf("empty summary = %+v", empty)
	}
}

func TestProductFilter_Values(t *testing.T) {
	f := domain.ProductFilter{Search: "  laptop ", Category: "laptops", Shop: 2, Page: 1}.Normalize()
	v := f.Values()
	if v.Get("search") != "laptop" || v.Get("category") != "laptops" || v.Get("shop") != "2" {
		t.Fatalf("values = %v", v)
	}
	if v.Has("page") {
		t.Fatal("page 1 should be omitted")
	}
}
