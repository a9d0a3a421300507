package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storefront/internal/domain"
	"storefront/internal/services/search"
	"storefront/internal/tui"
)

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}

func productsCmd() *cobra.Command {
	var f domain.ProductFilter
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := wire.Search.Search(cmd.Context(), f)
			if err != nil {
				return err
			}
			if ok, err := printJSON(page); ok {
				return err
			}
			printPage(page, f.Page)
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "text to match in name or description")
	cmd.Flags().StringVarP(&f.Category, "category", "c", "", "category slug")
	cmd.Flags().Int64Var(&f.Shop, "shop", 0, "shop id")
	cmd.Flags().StringVar(&f.MinPrice, "min", "", "minimum price")
	cmd.Flags().StringVar(&f.MaxPrice, "max", "", "maximum price")
	cmd.Flags().StringVar(&f.Ordering, "ordering", "", "sort field, e.g. price, -price, -created_at")
	cmd.Flags().IntVar(&f.Page, "page", 1, "page number")
	return cmd
}

func searchCmd() *cobra.Command {
	var pageN int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := wire.Search.Search(cmd.Context(), domain.ProductFilter{Search: args[0], Page: pageN})
			if err != nil {
				return err
			}
			if ok, err := printJSON(page); ok {
				return err
			}
			printPage(page, pageN)
			return nil
		},
	}
	cmd.Flags().IntVar(&pageN, "page", 1, "page number")
	return cmd
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Autocomplete product names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := wire.Search.Autocomplete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ok, err := printJSON(out); ok {
				return err
			}
			for _, s := range out {
				fmt.Printf("%d\t%s\n", s.ID, s.Name)
			}
			return nil
		},
	}
}

func trendingCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := wire.Search.Trending(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if ok, err := printJSON(out); ok {
				return err
			}
			printProducts(out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultTrendingLimit, "number of products")
	return cmd
}

func productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			d, err := wire.Catalog.Product(cmd.Context(), id)
			if err != nil {
				return err
			}
			if ok, err := printJSON(d); ok {
				return err
			}
			p := d.Product
			price := money(p.EffectivePrice())
			if p.EffectivePrice().LessThan(p.Price) {
				price += tui.MutedStyle.Render(" was " + money(p.Price))
			}
			lines := []string{
				tui.TitleStyle.Render(p.Name),
				"price:    " + price,
				fmt.Sprintf("shop:     %s (#%d)", p.ShopName, p.Shop),
				"category: " + p.CategoryName,
				fmt.Sprintf("stock:    %d", p.Stock),
			}
			if wire.Auth.LoggedIn() {
				if _, err := wire.Wishlist.Refresh(cmd.Context()); err == nil && wire.Wishlist.Contains(p.ID) {
					lines = append(lines, tui.AccentStyle.Render("♥ in your wishlist"))
				}
			}
			if p.Description != "" {
				lines = append(lines, "", p.Description)
			}
			tui.Panel(os.Stdout, lines)
			printSummary(os.Stdout, d.Summary)
			printReviews(d.Reviews)
			return nil
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := wire.Catalog.Categories(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := printJSON(cats); ok {
				return err
			}
			tw := newTable()
			fmt.Fprintln(tw, "SLUG\tNAME\tPRODUCTS")
			for _, c := range cats {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Slug, c.Name, c.ProductCount)
			}
			return tw.Flush()
		},
	}
}

func categoryCmd() *cobra.Command {
	var pageN int
	cmd := &cobra.Command{
		Use:   "category <slug>",
		Short: "Show a category and its products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp, err := wire.Catalog.CategoryProducts(cmd.Context(), args[0], pageN)
			if err != nil {
				return err
			}
			if ok, err := printJSON(cp); ok {
				return err
			}
			fmt.Println(tui.TitleStyle.Render(cp.Category.Name))
			if cp.Category.Description != "" {
				fmt.Println(cp.Category.Description)
			}
			printPage(cp.Products, pageN)
			return nil
		},
	}
	cmd.Flags().IntVar(&pageN, "page", 1, "page number")
	return cmd
}

func shopCmd() *cobra.Command {
	var pageN int
	cmd := &cobra.Command{
		Use:   "shop <id>",
		Short: "Show a shop, its products and rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "shop")
			if err != nil {
				return err
			}
			sp, err := wire.Catalog.Shop(cmd.Context(), id, pageN)
			if err != nil {
				return err
			}
			if ok, err := printJSON(sp); ok {
				return err
			}
			tui.Panel(os.Stdout, []string{
				tui.TitleStyle.Render(sp.Shop.Name),
				"owner:  " + sp.Shop.OwnerName,
				fmt.Sprintf("rating: %s %.1f", stars(sp.Shop.Rating), sp.Shop.Rating),
				sp.Shop.Description,
			})
			printPage(sp.Products, pageN)
			return nil
		},
	}
	cmd.Flags().IntVar(&pageN, "page", 1, "page of products")
	return cmd
}

func shopReviewsCmd() *cobra.Command {
	var rating int
	var comment string
	cmd := &cobra.Command{
		Use:   "shop-reviews <shop>",
		Short: "List a shop's reviews, or add one with --rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "shop")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rating") {
				if err := requireLogin(); err != nil {
					return err
				}
				r, err := wire.Catalog.ReviewShop(cmd.Context(), domain.ShopReviewInput{Shop: id, Rating: rating, Comment: comment})
				if err != nil {
					return err
				}
				tui.OK(fmt.Sprintf("reviewed shop #%d with %d stars", r.Shop, r.Rating))
				return nil
			}
			reviews, summary, err := wire.Catalog.ShopReviews(cmd.Context(), id)
			if err != nil {
				return err
			}
			if ok, err := printJSON(map[string]any{"reviews": reviews, "summary": summary}); ok {
				return err
			}
			printSummary(os.Stdout, summary)
			for _, r := range reviews {
				fmt.Printf("%s  %s  %s\n", stars(float64(r.Rating)), tui.AccentStyle.Render(r.Username), r.Comment)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "post a review with this rating (1-5)")
	cmd.Flags().StringVar(&comment, "comment", "", "review text")
	return cmd
}

func reviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews <product>",
		Short: "List a product's reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			reviews, summary, err := wire.Catalog.ProductReviews(cmd.Context(), id)
			if err != nil {
				return err
			}
			if ok, err := printJSON(map[string]any{"reviews": reviews, "summary": summary}); ok {
				return err
			}
			printSummary(os.Stdout, summary)
			printReviews(reviews)
			return nil
		},
	}
}

func reviewCmd() *cobra.Command {
	var in domain.ReviewInput
	cmd := &cobra.Command{
		Use:   "review <product>",
		Short: "Review a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			in.Product = id
			r, err := wire.Catalog.Review(cmd.Context(), in)
			if err != nil {
				return err
			}
			tui.OK(fmt.Sprintf("reviewed product #%d with %d stars", r.Product, r.Rating))
			return nil
		},
	}
	cmd.Flags().IntVarP(&in.Rating, "rating", "r", 0, "rating 1-5")
	cmd.Flags().StringVarP(&in.Comment, "comment", "m", "", "review text")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}
