// Package middleware provides the gin middleware chain for the
// simplemovies HTTP server.
package middleware
