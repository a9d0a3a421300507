// Package cart keeps a local snapshot of the server cart.
//
// Quantity changes, removals and clears are applied to the snapshot before
// the request goes out. A failed request restores the snapshot taken just
// before it; a successful one replaces the snapshot with the server's cart.
// Concurrent mutations are not coordinated: the last response applied wins.
package cart
