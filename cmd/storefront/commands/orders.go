package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/domain"
	"storefront/internal/services/checkout"
	"storefront/internal/tui"
)

func checkoutCmd() *cobra.Command {
	var address, card string
	var pay bool
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Turn the cart into an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			o, err := wire.Checkout.Checkout(cmd.Context(), address)
			if err != nil {
				return err
			}
			if ok, err := printJSON(o); ok && err != nil {
				return err
			} else if !ok {
				printOrder(o)
			}
			if !pay {
				return nil
			}
			return payOrder(cmd, o.ID, card)
		},
	}
	cmd.Flags().StringVarP(&address, "address", "a", "", "shipping address")
	cmd.Flags().BoolVar(&pay, "pay", false, "pay immediately with --card")
	cmd.Flags().StringVar(&card, "card", domain.TestCardSuccess, "test card number")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func ordersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders [id]",
		Short: "List orders or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if len(args) == 1 {
				id, err := parseID(args[0], "order")
				if err != nil {
					return err
				}
				o, err := wire.Checkout.Order(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ok, err := printJSON(o); ok {
					return err
				}
				printOrder(o)
				return nil
			}
			orders, err := wire.Checkout.Orders(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := printJSON(orders); ok {
				return err
			}
			if len(orders) == 0 {
				fmt.Println(tui.MutedStyle.Render("no orders yet"))
				return nil
			}
			tw := newTable()
			fmt.Fprintln(tw, "ORDER\tDATE\tSTATUS\tITEMS\tTOTAL")
			for _, o := range orders {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", o.ID, o.CreatedAt.Format(time.DateOnly), o.Status, len(o.Items), money(o.TotalAmount))
			}
			return tw.Flush()
		},
	}
}

func payCmd() *cobra.Command {
	var card string
	cmd := &cobra.Command{
		Use:   "pay <order>",
		Short: "Pay a pending order with a test card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "order")
			if err != nil {
				return err
			}
			return payOrder(cmd, id, card)
		},
	}
	cmd.Flags().StringVar(&card, "card", domain.TestCardSuccess,
		fmt.Sprintf("test card number (%s succeeds, %s declines)", domain.TestCardSuccess, domain.TestCardDecline))
	return cmd
}

func payOrder(cmd *cobra.Command, orderID int64, card string) error {
	p, err := wire.Checkout.Pay(cmd.Context(), orderID, card)
	if errors.Is(err, checkout.ErrPaymentFailed) {
		return fmt.Errorf("payment #%d: %w", p.ID, err)
	}
	if err != nil {
		return err
	}
	if ok, err := printJSON(p); ok {
		return err
	}
	tui.OK(fmt.Sprintf("paid order #%d: %s %s", orderID, money(p.Amount), p.Currency))
	return nil
}
