// Package auth holds the signed-in user.
//
// It resolves the Bearer token (environment first, then the credential
// store), keeps the API client's token in sync, and caches the current user
// after the first /api/auth/user/ fetch.
package auth
