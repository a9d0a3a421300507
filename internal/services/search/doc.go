// Package search answers product search, autocomplete and trending lookups
// from the search cache when it can and from the API otherwise.
package search
