package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"storefront/internal/tui"
)

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the shopping cart",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireLogin()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Cart.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := printJSON(c); ok {
				return err
			}
			printCart(c)
			return nil
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <product>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			c, err := wire.Cart.Add(cmd.Context(), id, qty)
			if err != nil {
				return err
			}
			tui.OK(fmt.Sprintf("added; cart has %d items (%s)", c.TotalItems, money(c.TotalPrice)))
			return nil
		},
	}
	add.Flags().IntVarP(&qty, "quantity", "q", 1, "quantity to add")

	set := &cobra.Command{
		Use:   "set <item> <quantity>",
		Short: "Set a cart line's quantity (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "item")
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			if _, err := wire.Cart.Refresh(cmd.Context()); err != nil {
				return err
			}
			c, err := wire.Cart.UpdateQuantity(cmd.Context(), id, n)
			if err != nil {
				return err
			}
			printCart(c)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <item>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "item")
			if err != nil {
				return err
			}
			if _, err := wire.Cart.Refresh(cmd.Context()); err != nil {
				return err
			}
			c, err := wire.Cart.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			printCart(c)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if _, err := wire.Cart.Clear(cmd.Context()); err != nil {
				return err
			}
			tui.OK("cart cleared")
			return nil
		},
	}

	cmd.AddCommand(add, set, rm, clearCmd)
	return cmd
}

func wishlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show or change the wishlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			items, err := wire.Wishlist.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := printJSON(items); ok {
				return err
			}
			if len(items) == 0 {
				fmt.Println(tui.MutedStyle.Render("wishlist is empty"))
				return nil
			}
			tw := newTable()
			fmt.Fprintln(tw, "PRODUCT\tNAME\tPRICE\tSTOCK")
			for _, it := range items {
				stock := "in stock"
				if !it.Product.InStock {
					stock = "sold out"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.Product.ID, it.Product.Name, money(it.Product.EffectivePrice()), stock)
			}
			return tw.Flush()
		},
	}

	mutate := func(use, short string, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <product>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireLogin(); err != nil {
					return err
				}
				id, err := parseID(args[0], "product")
				if err != nil {
					return err
				}
				if _, err := wire.Wishlist.Refresh(cmd.Context()); err != nil {
					return err
				}
				return run(cmd, id)
			},
		}
	}

	cmd.AddCommand(
		mutate("add", "Save a product", func(cmd *cobra.Command, id int64) error {
			if _, err := wire.Wishlist.Add(cmd.Context(), id); err != nil {
				return err
			}
			tui.OK(fmt.Sprintf("saved product #%d", id))
			return nil
		}),
		mutate("rm", "Unsave a product", func(cmd *cobra.Command, id int64) error {
			if err := wire.Wishlist.Remove(cmd.Context(), id); err != nil {
				return err
			}
			tui.OK(fmt.Sprintf("removed product #%d", id))
			return nil
		}),
		mutate("toggle", "Save or unsave a product", func(cmd *cobra.Command, id int64) error {
			saved, err := wire.Wishlist.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			if saved {
				tui.OK(fmt.Sprintf("saved product #%d", id))
			} else {
				tui.OK(fmt.Sprintf("removed product #%d", id))
			}
			return nil
		}),
	)
	return cmd
}
