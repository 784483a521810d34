// Package movies searches the OMDb catalogue by title.
//
// Searcher is the capability consumers depend on; Service is the production
// implementation over an omdb.Fetcher with a read-through result cache. Test
// doubles live in movies/moviestest.
package movies
