package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storefront/internal/domain"
)

// DebounceDelay is how long typing must pause before a search is sent.
const DebounceDelay = 300 * time.Millisecond

type Searcher interface {
	Search(ctx context.Context, filter domain.ProductFilter) (domain.Page[domain.Product], error)
}

type CartAdder interface {
	Add(ctx context.Context, productID int64, quantity int) (domain.Cart, error)
}

type WishlistToggler interface {
	Toggle(ctx context.Context, productID int64) (bool, error)
	Contains(productID int64) bool
}

type Poller interface {
	Poll(ctx context.Context, onCount func(int)) error
}

// Deps are the services the browser calls. Cart, Wishlist and Inbox may be
// nil when the user is not logged in; their keys then report that.
type Deps struct {
	Search   Searcher
	Cart     CartAdder
	Wishlist WishlistToggler
	Inbox    Poller
}

// UnreadMsg carries a new unread-message count into the program.
type UnreadMsg int

type debounceMsg struct{ seq int }

type resultsMsg struct {
	seq  int
	page domain.Page[domain.Product]
	err  error
}

type statusMsg struct {
	text string
	err  bool
}

type productItem struct {
	p     domain.Product
	saved bool
}

func (i productItem) Title() string       { return i.p.Name }
func (i productItem) Description() string { return "" }
func (i productItem) FilterValue() string { return i.p.Name }

type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(productItem)
	heart := MutedStyle.Render("♡")
	if it.saved {
		heart = ErrorStyle.Render("♥")
	}
	price := it.p.EffectivePrice().StringFixed(2)
	stock := SuccessStyle.Render("in stock")
	if !it.p.InStock {
		stock = PendingStyle.Render("sold out")
	}
	line := fmt.Sprintf("%s %-32s %12s  %s  %s", heart, it.p.Name, price, MutedStyle.Render(it.p.ShopName), stock)

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

var (
	addKey      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to cart"))
	wishKey     = key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wishlist"))
	searchKey   = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	nextPageKey = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next page"))
	prevPageKey = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev page"))
	quitKey     = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// Model is the browse screen.
type Model struct {
	ctx  context.Context
	deps Deps

	list      list.Model
	input     textinput.Model
	searching bool

	seq     int
	page    int
	hasNext bool
	count   int

	cartItems int
	unread    int
	status    string
	statusErr bool
	width     int
}

// New builds the browse model with the search box focused.
func New(ctx context.Context, deps Deps) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Products"
	l.Styles.Title = TitleStyle
	l.Styles.HelpStyle = helpStyle
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	l.KeyMap.Quit.SetEnabled(false)
	bindings := func() []key.Binding {
		return []key.Binding{addKey, wishKey, searchKey, nextPageKey, prevPageKey, quitKey}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "search> "
	ti.Placeholder = "name, category or description"
	ti.CharLimit = 100
	ti.Focus()

	return Model{ctx: ctx, deps: deps, list: l, input: ti, searching: true, page: 1}
}

// Init loads the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width-4, max0(msg.Height-8))
		return m, nil

	case UnreadMsg:
		m.unread = int(msg)
		return m, nil

	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.searchCmd()

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.setStatus("search failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.count = msg.page.Count
		m.hasNext = msg.page.HasNext()
		items := make([]list.Item, 0, len(msg.page.Results))
		for _, p := range msg.page.Results {
			items = append(items, productItem{p: p, saved: m.deps.Wishlist != nil && m.deps.Wishlist.Contains(p.ID)})
		}
		cmd := m.list.SetItems(items)
		m.list.ResetSelected()
		m.setStatus(fmt.Sprintf("%d products, page %d", m.count, m.page), false)
		return m, cmd

	case statusMsg:
		m.setStatus(msg.text, msg.err)
		return m, nil

	case cartMsg:
		m.cartItems = msg.items
		m.setStatus(msg.text, false)
		return m, nil

	case wishMsg:
		items := m.list.Items()
		for i, it := range items {
			if pi, ok := it.(productItem); ok && pi.p.ID == msg.productID {
				pi.saved = msg.saved
				_ = m.list.SetItem(i, pi)
			}
		}
		m.setStatus(msg.text, false)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.searching {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.input.Blur()
		m.seq++
		m.page = 1
		return m, m.searchCmd()
	case "esc", "tab":
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.seq++
	m.page = 1
	seq := m.seq
	return m, tea.Batch(cmd, tea.Tick(DebounceDelay, func(time.Time) tea.Msg { return debounceMsg{seq: seq} }))
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, quitKey):
		return m, tea.Quit
	case key.Matches(msg, searchKey):
		m.searching = true
		return m, m.input.Focus()
	case key.Matches(msg, nextPageKey):
		if !m.hasNext {
			return m, nil
		}
		m.page++
		m.seq++
		return m, m.searchCmd()
	case key.Matches(msg, prevPageKey):
		if m.page <= 1 {
			return m, nil
		}
		m.page--
		m.seq++
		return m, m.searchCmd()
	case key.Matches(msg, addKey):
		if it, ok := m.list.SelectedItem().(productItem); ok {
			return m, m.addToCartCmd(it.p)
		}
		return m, nil
	case key.Matches(msg, wishKey):
		if it, ok := m.list.SelectedItem().(productItem); ok {
			return m, m.toggleWishlistCmd(it.p)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status, m.statusErr = text, isErr
}

// Filter is the query the next search will send.
func (m Model) Filter() domain.ProductFilter {
	return domain.ProductFilter{Search: strings.TrimSpace(m.input.Value()), Page: m.page}
}

func (m Model) searchCmd() tea.Cmd {
	seq, filter := m.seq, m.Filter()
	ctx, search := m.ctx, m.deps.Search
	return func() tea.Msg {
		page, err := search.Search(ctx, filter)
		return resultsMsg{seq: seq, page: page, err: err}
	}
}

type cartMsg struct {
	items int
	text  string
}

type wishMsg struct {
	productID int64
	saved     bool
	text      string
}

func (m Model) addToCartCmd(p domain.Product) tea.Cmd {
	if m.deps.Cart == nil {
		return statusCmd("log in to use the cart", true)
	}
	ctx, carts := m.ctx, m.deps.Cart
	return func() tea.Msg {
		c, err := carts.Add(ctx, p.ID, 1)
		if err != nil {
			return statusMsg{text: "add to cart: " + err.Error(), err: true}
		}
		return cartMsg{items: c.TotalItems, text: "added " + p.Name}
	}
}

func (m Model) toggleWishlistCmd(p domain.Product) tea.Cmd {
	if m.deps.Wishlist == nil {
		return statusCmd("log in to use the wishlist", true)
	}
	ctx, wl := m.ctx, m.deps.Wishlist
	return func() tea.Msg {
		saved, err := wl.Toggle(ctx, p.ID)
		if err != nil {
			return statusMsg{text: "wishlist: " + err.Error(), err: true}
		}
		text := "removed " + p.Name + " from wishlist"
		if saved {
			text = "saved " + p.Name
		}
		return wishMsg{productID: p.ID, saved: saved, text: text}
	}
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, err: isErr} }
}

func (m Model) View() string {
	header := TitleStyle.Render("Storefront")
	header += "   " + AccentStyle.Render("cart") + fmt.Sprintf(" %d", m.cartItems)
	if m.unread > 0 {
		header += "   " + badgeStyle.Render(fmt.Sprintf("%d unread", m.unread))
	}

	status := MutedStyle.Render(m.status)
	if m.statusErr {
		status = ErrorStyle.Render(m.status)
	}

	body := strings.Join([]string{header, m.input.View(), m.list.View(), status}, "\n")
	return panelStyle.Render(body)
}

// Run starts the browser full-screen and, when deps.Inbox is set, feeds the
// unread badge from its poller until the program exits.
func Run(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if deps.Inbox != nil {
		go func() {
			_ = deps.Inbox.Poll(ctx, func(n int) { p.Send(UnreadMsg(n)) })
		}()
	}
	_, err := p.Run()
	return err
}
