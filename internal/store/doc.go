// Package store keeps the client's local state on disk under the storefront
// home directory: the login credentials (plain or passphrase-encrypted) and
// the owner dashboard's shop session. Files are written atomically with
// owner-only permissions.
package store
