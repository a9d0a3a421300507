// Package checkout turns the cart into an order and drives the backend's
// test payment provider: create an intent for the order, then confirm it
// with a test card number.
package checkout
