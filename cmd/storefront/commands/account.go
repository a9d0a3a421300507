package commands

import (
	"bufio"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"storefront/internal/domain"
	"storefront/internal/tui"
)

func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := readLine("password: ")
				if err != nil {
					return err
				}
				password = p
			}
			u, err := wire.Auth.Login(cmd.Context(), wire.Config.Passphrase, args[0], password)
			if err != nil {
				return err
			}
			where := "credentials.json"
			if wire.Config.Passphrase != "" {
				where = "credentials.enc"
			}
			tui.OK(fmt.Sprintf("logged in as %s (saved to %s)", u.DisplayName(), where))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and delete stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			if err := wire.Shop.Close(); err != nil {
				return err
			}
			tui.OK("logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := wire.Auth.Current(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := printJSON(u); ok {
				return err
			}
			role := "buyer"
			if u.IsShopOwner {
				role = "shop owner"
			}
			tui.Panel(os.Stdout, []string{
				tui.TitleStyle.Render(u.DisplayName()),
				"username: " + u.Username,
				"email:    " + u.Email,
				"role:     " + role,
				"token:    " + wire.Auth.Source(),
			})
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var req domain.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register <username> <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username, req.Email = args[0], args[1]
			if req.Password == "" {
				p, err := readLine("password: ")
				if err != nil {
					return err
				}
				req.Password = p
			}
			u, err := wire.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			tui.OK(fmt.Sprintf("registered %s; run `storefront login %s`", u.Username, u.Username))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	return cmd
}

func subscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Subscribe an address to the newsletter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := mail.ParseAddress(args[0])
			if err != nil {
				return fmt.Errorf("invalid email %q", args[0])
			}
			if err := wire.API.Subscribe(cmd.Context(), addr.Address); err != nil {
				return err
			}
			tui.OK("subscribed " + addr.Address)
			return nil
		},
	}
}

func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
