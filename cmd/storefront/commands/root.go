package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storefront/internal/app"
	"storefront/internal/logx"
	"storefront/internal/services/auth"
	"storefront/internal/store"
	"storefront/internal/tui"
)

var (
	home       string
	passphrase string
	apiURL     string
	envFile    string
	jsonOut    bool
	debug      bool

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront client: browse, shop, message and manage your shop",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("home") {
				cfg.Home = home
			}
			if cmd.Flags().Changed("api") {
				cfg.APIBaseURL = apiURL
			}
			if cmd.Flags().Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			if debug {
				cfg.Debug = true
			}
			logx.Init(logx.LoggerOpts{Environment: cfg.Env(), Debug: cfg.Debug})

			w, err := app.NewWire(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			wire = w
			if _, _, err := wire.RestoreLogin(); err != nil {
				if !errors.Is(err, store.ErrPassphraseRequired) {
					return fmt.Errorf("restore login: %w", err)
				}
				logx.Warn().Msg("saved credentials are encrypted; pass --passphrase to use them")
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.storefront)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to encrypt stored credentials")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL (default http://localhost:8000)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "print raw JSON instead of formatted output")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log every API call")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(), registerCmd(),
		productsCmd(), productCmd(), searchCmd(), suggestCmd(), trendingCmd(),
		categoriesCmd(), categoryCmd(), shopCmd(), shopReviewsCmd(),
		reviewsCmd(), reviewCmd(),
		cartCmd(), wishlistCmd(),
		checkoutCmd(), ordersCmd(), payCmd(),
		messagesCmd(), sendCmd(), readCmd(), unreadCmd(),
		dashboardCmd(), subscribeCmd(), browseCmd(),
	)

	ctx, stop := signalContext(context.Background())
	defer stop()

	err := root.ExecuteContext(ctx)
	if err != nil {
		tui.Fail(friendly(err))
	}
	return err
}

// requireLogin fails fast when no token is installed.
func requireLogin() error {
	if !wire.Auth.LoggedIn() {
		return auth.ErrNotLoggedIn
	}
	return nil
}

// printJSON writes v as indented JSON when --json is set and reports
// whether it did.
func printJSON(v any) (bool, error) {
	if !jsonOut {
		return false, nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}

func friendly(err error) string {
	if errors.Is(err, context.Canceled) {
		return "interrupted"
	}
	return err.Error()
}
