// Package shopsession is the shop owner's dashboard state: which shop is
// open, persisted between runs, and the reads scoped to it.
package shopsession
