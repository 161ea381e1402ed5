// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings: the listen port, the
// API key that protects the matching endpoints, and the upper bound applied to
// external CRM pulls triggered by a request.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the matching feature for its fetch timeout.
package server
