// Package commands defines the storefront CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login, logout, whoami, register   Account
//   - products, product, search, suggest, trending, categories, category
//   - shop, shop-reviews, reviews, review
//   - cart [add|set|rm|clear], wishlist [add|rm|toggle]
//   - checkout, orders, pay
//   - messages, send, read, unread [--watch]
//   - dashboard                          Owner shop and sales analytics
//   - subscribe                          Newsletter
//   - browse                             Interactive product browser
//
// # Implementation
//
// The root command loads configuration from STOREFRONT_* variables (and
// .env), applies flag overrides, and builds the dependency graph before any
// subcommand runs. A saved login is restored at the same point.
package commands
