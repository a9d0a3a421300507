// Package wishlist keeps the saved-products list and toggles entries
// optimistically.
package wishlist
