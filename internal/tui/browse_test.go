package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type fakeSearch struct {
	filters []domain.ProductFilter
}

func (f *fakeSearch) Search(_ context.Context, filter domain.ProductFilter) (domain.Page[domain.Product], error) {
	f.filters = append(f.filters, filter)
	return domain.Page[domain.Product]{
		Count:   2,
		Results: []domain.Product{{ID: 1, Name: "Phone", Price: decimal.NewFromInt(10), InStock: true}, {ID: 2, Name: "Pad", Price: decimal.NewFromInt(20)}},
	}, nil
}

type fakeCart struct{ added []int64 }

func (f *fakeCart) Add(_ context.Context, id int64, qty int) (domain.Cart, error) {
	f.added = append(f.added, id)
	return domain.Cart{TotalItems: len(f.added)}, nil
}

type fakeWishlist struct{ fail bool }

func (f fakeWishlist) Toggle(context.Context, int64) (bool, error) {
	if f.fail {
		return false, errors.New("down")
	}
	return true, nil
}
func (fakeWishlist) Contains(int64) bool { return false }

func typeRune(t *testing.T, m Model, r rune) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model), cmd
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestBrowse_DebouncesTyping(t *testing.T) {
	search := &fakeSearch{}
	m := New(context.Background(), Deps{Search: search})

	m, cmd := typeRune(t, m, 'p')
	if cmd == nil || m.seq != 1 {
		t.Fatalf("typing should schedule a debounce, seq=%d", m.seq)
	}
	m, _ = typeRune(t, m, 'h')
	if m.seq != 2 {
		t.Fatalf("seq = %d, want 2", m.seq)
	}

	if _, cmd := update(t, m, debounceMsg{seq: 1}); cmd != nil {
		t.Fatal("stale debounce tick must not search")
	}
	_, cmd = update(t, m, debounceMsg{seq: 2})
	if cmd == nil {
		t.Fatal("current debounce tick should search")
	}
	res, ok := cmd().(resultsMsg)
	if !ok {
		t.Fatalf("cmd returned %T", cmd())
	}
	if len(search.filters) != 1 || search.filters[0].Search != "ph" {
		t.Fatalf("searched %+v", search.filters)
	}

	m, _ = update(t, m, res)
	if len(m.list.Items()) != 2 {
		t.Fatalf("items = %d", len(m.list.Items()))
	}

	m, _ = update(t, m, resultsMsg{seq: 1, page: domain.Page[domain.Product]{}})
	if len(m.list.Items()) != 2 {
		t.Fatal("stale results replaced the list")
	}
}

func TestBrowse_AddToCartAndBadge(t *testing.T) {
	search := &fakeSearch{}
	carts := &fakeCart{}
	m := New(context.Background(), Deps{Search: search, Cart: carts, Wishlist: fakeWishlist{}})

	m, _ = update(t, m, m.searchCmd()())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching {
		t.Fatal("enter should leave the search box")
	}
	m, _ = update(t, m, m.searchCmd()())

	m, cmd := typeRune(t, m, 'a')
	if cmd == nil {
		t.Fatal("a should add the selected product")
	}
	m, _ = update(t, m, cmd())
	if len(carts.added) != 1 || carts.added[0] != 1 || m.cartItems != 1 {
		t.Fatalf("added=%v cartItems=%d", carts.added, m.cartItems)
	}

	m, cmd = typeRune(t, m, 'w')
	m, _ = update(t, m, cmd())
	if it := m.list.Items()[0].(productItem); !it.saved {
		t.Fatal("wishlist toggle not reflected")
	}

	m, _ = update(t, m, UnreadMsg(3))
	if !strings.Contains(m.View(), "3 unread") {
		t.Fatal("unread badge missing")
	}
}

func TestBrowse_LoggedOutKeys(t *testing.T) {
	m := New(context.Background(), Deps{Search: &fakeSearch{}})
	m, _ = update(t, m, m.searchCmd()())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	_, cmd := typeRune(t, m, 'a')
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.err {
		t.Fatalf("got %#v", msg)
	}
}
