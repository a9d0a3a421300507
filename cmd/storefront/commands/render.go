package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/tui"
)

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func stars(avg float64) string {
	n := int(avg + 0.5)
	n = min(max(n, 0), domain.MaxRating)
	return strings.Repeat("★", n) + strings.Repeat("☆", domain.MaxRating-n)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printProducts(products []domain.Product) {
	if len(products) == 0 {
		fmt.Println(tui.MutedStyle.Render("no products"))
		return
	}
	tw := newTable()
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSHOP\tRATING\tSTOCK")
	for _, p := range products {
		price := money(p.EffectivePrice())
		if p.EffectivePrice().LessThan(p.Price) {
			price += " (was " + money(p.Price) + ")"
		}
		stock := "in stock"
		if !p.InStock {
			stock = "sold out"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s (%d)\t%s\n", p.ID, p.Name, price, p.ShopName, stars(p.AverageRating), p.ReviewCount, stock)
	}
	_ = tw.Flush()
}

func printPage(page domain.Page[domain.Product], n int) {
	printProducts(page.Results)
	footer := fmt.Sprintf("%d results, page %d", page.Count, max(n, 1))
	if page.HasNext() {
		footer += fmt.Sprintf(" (next: --page %d)", max(n, 1)+1)
	}
	fmt.Println(tui.MutedStyle.Render(footer))
}

func printSummary(w io.Writer, s domain.ReviewSummary) {
	fmt.Fprintf(w, "%s %.1f from %d reviews\n", stars(s.AverageRating), s.AverageRating, s.TotalCount)
	top := 0
	for _, n := range s.Distribution {
		top = max(top, n)
	}
	for r := domain.MaxRating; r >= domain.MinRating; r-- {
		n := s.Distribution[r]
		fmt.Fprintf(w, "  %d %s %d\n", r, tui.Bar(float64(n), float64(top), 20), n)
	}
}

func printReviews(reviews []domain.Review) {
	for _, r := range reviews {
		fmt.Printf("%s  %s  %s\n", stars(float64(r.Rating)), tui.AccentStyle.Render(r.Username), tui.MutedStyle.Render(r.CreatedAt.Format(time.DateOnly)))
		if r.Comment != "" {
			fmt.Println("    " + r.Comment)
		}
	}
}

func printCart(c domain.Cart) {
	if c.IsEmpty() {
		fmt.Println(tui.MutedStyle.Render("cart is empty"))
		return
	}
	tw := newTable()
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range c.Items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", it.ID, it.Product.Name, it.Quantity, money(it.Product.EffectivePrice()), money(it.Subtotal))
	}
	_ = tw.Flush()
	fmt.Println(tui.TitleStyle.Render(fmt.Sprintf("%d items, total %s", c.TotalItems, money(c.TotalPrice))))
}

func printOrder(o domain.Order) {
	lines := []string{
		tui.TitleStyle.Render(fmt.Sprintf("Order #%d", o.ID)) + "  " + statusStyle(o.Status),
		"ship to: " + o.ShippingAddress,
	}
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("  %d x %s @ %s", it.Quantity, it.ProductName, money(it.Price)))
	}
	lines = append(lines, "total: "+money(o.TotalAmount))
	tui.Panel(os.Stdout, lines)
}

func statusStyle(status string) string {
	switch status {
	case domain.OrderPaid, domain.OrderShipped, domain.PaymentSucceeded:
		return tui.SuccessStyle.Render(status)
	case domain.OrderCancelled, domain.PaymentFailed:
		return tui.ErrorStyle.Render(status)
	default:
		return tui.PendingStyle.Render(status)
	}
}
