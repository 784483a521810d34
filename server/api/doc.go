// Package api implements the simplemovies HTTP API: login, movie search
// and favorites.
//
// Handlers reach their collaborators through an Environment of lazily
// resolved di handles, so production code resolves from the registry and
// tests seed doubles with MockEnvironment.
package api
