// Package inbox wraps the messaging endpoints and runs the unread-count
// poller.
//
// Poll fetches the count once immediately and then on every tick of a fixed
// interval (30 seconds by default) until its context is cancelled. Failed
// fetches are logged and the loop carries on at the same interval.
package inbox
