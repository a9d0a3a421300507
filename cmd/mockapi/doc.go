// Package main runs the in-memory storefront backend used during
// development and by the client's contract tests. It serves the same REST
// endpoints as the production backend from seeded data.
//
// Configuration
//
//	MOCKAPI_ADDR         listen address (default :8000, --addr overrides)
//	MOCKAPI_ENVIRONMENT  logging environment (default development)
//	MOCKAPI_VERBOSE      log every request at debug level
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - SIGINT or SIGTERM drains in-flight requests for up to five seconds
//     before the process exits.
//   - Seeded accounts: alice/alice-pass (buyer), bob/bob-pass (owns Gadget
//     Hub) and carol/carol-pass (owns Sound & Time).
package main
