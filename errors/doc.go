// Package errors provides the application error type shared by the
// simplemovies packages: a machine-readable code, a user-facing message, the
// HTTP status it maps to and whether retrying can help.
package errors
