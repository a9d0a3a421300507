package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/domain"
	"storefront/internal/tui"
)

func printMessages(msgs []domain.Message) {
	if len(msgs) == 0 {
		fmt.Println(tui.MutedStyle.Render("no messages"))
		return
	}
	for _, m := range msgs {
		head := fmt.Sprintf("#%d %s -> %s  %s", m.ID, m.SenderName, m.RecipientName, m.CreatedAt.Format(time.DateTime))
		if !m.IsRead {
			head = tui.AccentStyle.Render(head + "  new")
		} else {
			head = tui.MutedStyle.Render(head)
		}
		fmt.Println(head)
		if m.Product != nil {
			fmt.Printf("    about product #%d\n", *m.Product)
		}
		fmt.Println("    " + m.Content)
	}
}

func messagesCmd() *cobra.Command {
	var with int64
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List messages, or one conversation with --with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			var (
				msgs []domain.Message
				err  error
			)
			if with > 0 {
				msgs, err = wire.Inbox.Conversation(cmd.Context(), with)
			} else {
				msgs, err = wire.Inbox.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			if ok, err := printJSON(msgs); ok {
				return err
			}
			printMessages(msgs)
			return nil
		},
	}
	cmd.Flags().Int64Var(&with, "with", 0, "user id of the other party")
	return cmd
}

func sendCmd() *cobra.Command {
	var product int64
	cmd := &cobra.Command{
		Use:   "send <user> <text...>",
		Short: "Send a message to a user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			to, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			var about *int64
			if product > 0 {
				about = &product
			}
			m, err := wire.Inbox.Send(cmd.Context(), to, strings.Join(args[1:], " "), about)
			if err != nil {
				return err
			}
			tui.OK(fmt.Sprintf("sent message #%d to %s", m.ID, m.RecipientName))
			return nil
		},
	}
	cmd.Flags().Int64Var(&product, "product", 0, "product the message is about")
	return cmd
}

func readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <message>",
		Short: "Mark a message read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "message")
			if err != nil {
				return err
			}
			if err := wire.Inbox.MarkRead(cmd.Context(), id); err != nil {
				return err
			}
			tui.OK(fmt.Sprintf("message #%d marked read", id))
			return nil
		},
	}
}

func unreadCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "unread",
		Short: "Show the unread message count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if !watch {
				n, err := wire.Inbox.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				if ok, err := printJSON(domain.UnreadCount{UnreadCount: n}); ok {
					return err
				}
				fmt.Println(n)
				return nil
			}
			last := -1
			err := wire.Inbox.Poll(cmd.Context(), func(n int) {
				if n == last {
					return
				}
				last = n
				fmt.Printf("%s unread: %d\n", time.Now().Format(time.TimeOnly), n)
			})
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling until interrupted")
	return cmd
}
