package api

import (
	"github.com/kbukum/simplemovies/di"
	"github.com/kbukum/simplemovies/favorites"
	"github.com/kbukum/simplemovies/movies"
	"github.com/kbukum/simplemovies/session"
)

// Environment is the set of capabilities the API handlers use.
type Environment struct {
	Searcher  *di.Dependency[movies.Searcher]
	Favorites *di.Dependency[favorites.Store]
	Auth      *di.Dependency[session.Authenticator]
	Verifier  *di.Dependency[session.TokenVerifier]
}

// NewEnvironment returns an Environment resolving every capability from src
// on first use.
func NewEnvironment(src di.Source) *Environment {
	return &Environment{
		Searcher:  di.Lazy[movies.Searcher](src),
		Favorites: di.Lazy[favorites.Store](src),
		Auth:      di.Lazy[session.Authenticator](src),
		Verifier:  di.Lazy[session.TokenVerifier](src),
	}
}

// MockEnvironment returns an Environment seeded with the given doubles.
// Nil arguments stay unresolved and panic if a handler touches them.
func MockEnvironment(
	searcher movies.Searcher,
	favs favorites.Store,
	auth session.Authenticator,
	verifier session.TokenVerifier,
) *Environment {
	env := NewEnvironment(nil)
	if searcher != nil {
		env.Searcher = di.Resolved(searcher)
	}
	if favs != nil {
		env.Favorites = di.Resolved(favs)
	}
	if auth != nil {
		env.Auth = di.Resolved(auth)
	}
	if verifier != nil {
		env.Verifier = di.Resolved(verifier)
	}
	return env
}
