// Package app wires application dependencies for the CLI.
//
// Config is read from STOREFRONT_* environment variables (a .env file is
// loaded first when present). NewWire builds the API client, the file store,
// the search cache and the services from it, exposing them via the Wire
// struct for commands to use.
package app
