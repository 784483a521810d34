// Package di provides a typed dependency registry and lazily resolved
// dependency handles for simplemovies applications.
//
// Capabilities are identified by the type a consumer declares, usually an
// interface, so a production implementation and a test double registered for
// the same interface are interchangeable.
//
// # Registration
//
//	reg := di.NewRegistry()
//	di.Register[movies.Searcher](reg, movies.NewService(client, cfg, log))
//
// # Resolution
//
//	svc := di.Resolve[movies.Searcher](reg) // panics if nothing is registered
//
// # Lazy handles
//
//	env := Environment{Searcher: di.Lazy[movies.Searcher](reg)}
//	env.Searcher.Get() // looked up once, then cached
//
//	// in tests
//	env := Environment{Searcher: di.Resolved[movies.Searcher](stub)}
package di
