// Package tui is the interactive product browser: a debounced search box
// over a product list, with keys to add to the cart and toggle the
// wishlist, and an unread-messages badge fed by the inbox poller. It also
// holds the lipgloss styles shared with the CLI output.
package tui
