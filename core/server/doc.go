// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// listen port, the API key protecting the inventory endpoints, and the path
// prefixes (health, metrics, swagger) that stay reachable without the key.
package server
