package commands

import (
	"github.com/spf13/cobra"

	"storefront/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive product browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := tui.Deps{Search: wire.Search}
			if wire.Auth.LoggedIn() {
				if _, err := wire.Wishlist.Refresh(cmd.Context()); err != nil {
					return err
				}
				deps.Cart = wire.Cart
				deps.Wishlist = wire.Wishlist
				deps.Inbox = wire.Inbox
			}
			return tui.Run(cmd.Context(), deps)
		},
	}
}
