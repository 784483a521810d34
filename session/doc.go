// Package session manages the logged-in user.
//
// Authenticator checks credentials and issues a token. Manager keeps the
// current user, persists the token in a kvstore.Store and restores it on
// start. TokenVerifier checks tokens presented to the HTTP API.
package session
