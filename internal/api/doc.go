// Package api is the HTTP client for the storefront REST backend.
//
// One Client serves every resource: products, categories, shops, reviews,
// shop reviews, messages, wishlist, cart, orders, payments, auth and the
// email subscription. All requests are JSON over HTTP, take a context for
// cancellation and deadlines, and carry a Bearer token when one is set.
//
// Non-2xx statuses are returned as *errx.Error holding the status code, the
// method and path, and the backend's "detail" message when it sent one.
// There are no retries: a failed call is simply returned to the caller.
package api
