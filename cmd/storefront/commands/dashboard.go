package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storefront/internal/tui"
)

func dashboardCmd() *cobra.Command {
	var days int
	var closeSession bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Sales, products and reviews for the shop you own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if closeSession {
				if err := wire.Shop.Close(); err != nil {
					return err
				}
				tui.OK("shop session closed")
				return nil
			}
			if err := requireLogin(); err != nil {
				return err
			}
			shop, err := wire.Shop.Open(cmd.Context())
			if err != nil {
				return err
			}
			a, err := wire.Shop.Analytics(cmd.Context(), days)
			if err != nil {
				return err
			}
			reviews, summary, err := wire.Shop.Reviews(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := printJSON(map[string]any{"shop": shop, "analytics": a, "reviews": reviews, "summary": summary}); ok {
				return err
			}

			tui.Panel(os.Stdout, []string{
				tui.TitleStyle.Render(shop.Name),
				fmt.Sprintf("revenue (%dd): %s", a.Days, money(a.TotalRevenue)),
				fmt.Sprintf("orders:       %d", a.TotalOrders),
				fmt.Sprintf("products:     %d", a.TotalProducts),
				fmt.Sprintf("rating:       %s %.1f", stars(a.AverageRating), a.AverageRating),
			})

			top := 0.0
			for _, p := range a.Sales {
				top = max(top, p.Revenue.InexactFloat64())
			}
			fmt.Println(tui.TitleStyle.Render("Daily sales"))
			for _, p := range a.Sales {
				fmt.Printf("  %s %s %s (%d)\n", p.Date, tui.Bar(p.Revenue.InexactFloat64(), top, 30), money(p.Revenue), p.Orders)
			}

			if len(a.TopProducts) > 0 {
				fmt.Println(tui.TitleStyle.Render("Top products"))
				tw := newTable()
				fmt.Fprintln(tw, "  PRODUCT\tSOLD\tREVENUE")
				for _, p := range a.TopProducts {
					fmt.Fprintf(tw, "  %s\t%d\t%s\n", p.Name, p.UnitsSold, money(p.Revenue))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			fmt.Println(tui.TitleStyle.Render("Reviews"))
			printSummary(os.Stdout, summary)
			for _, r := range reviews {
				fmt.Printf("%s  %s  %s\n", stars(float64(r.Rating)), tui.AccentStyle.Render(r.Username), r.Comment)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "days of sales history")
	cmd.Flags().BoolVar(&closeSession, "close", false, "forget the open shop session")
	return cmd
}
