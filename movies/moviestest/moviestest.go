// Package moviestest provides test doubles and fixtures for movies.Searcher.
package moviestest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kbukum/simplemovies/movies"
)

// MakeMovie returns a valid movie, customized by the given options.
func MakeMovie(opts ...func(*movies.Movie)) movies.Movie {
	m := movies.Movie{
		Title:  "title",
		Year:   "2001",
		ImdbID: "tt0000001",
		Type:   movies.TypeMovie,
		Poster: "https://example.com/poster.jpg",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// MakeMovies returns n distinct movies with sequential IDs.
func MakeMovies(n int) []movies.Movie {
	out := make([]movies.Movie, n)
	for i := range out {
		id := i + 1
		out[i] = MakeMovie(func(m *movies.Movie) {
			m.Title = fmt.Sprintf("title %d", id)
			m.ImdbID = fmt.Sprintf("tt%07d", id)
		})
	}
	return out
}

// Stub returns a canned result for every search.
type Stub struct {
	Results []movies.Movie
	Err     error
}

func (s *Stub) SearchMovies(context.Context, string) ([]movies.Movie, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]movies.Movie{}, s.Results...), nil
}

// Spy records every search and delegates to Next, or returns nothing.
type Spy struct {
	Next movies.Searcher

	mu     sync.Mutex
	titles []string
}

func (s *Spy) SearchMovies(ctx context.Context, title string) ([]movies.Movie, error) {
	s.mu.Lock()
	s.titles = append(s.titles, title)
	s.mu.Unlock()
	if s.Next == nil {
		return []movies.Movie{}, nil
	}
	return s.Next.SearchMovies(ctx, title)
}

// Titles returns the searched titles in call order.
func (s *Spy) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.titles...)
}

// Called reports whether any search was made.
func (s *Spy) Called() bool {
	return len(s.Titles()) > 0
}

// Fake is a working in-memory catalogue matching titles by
// case-insensitive substring.
type Fake struct {
	Catalogue []movies.Movie
}

func (f *Fake) SearchMovies(_ context.Context, title string) ([]movies.Movie, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &movies.ServiceError{Kind: movies.KindInvalidQuery}
	}
	q := strings.ToLower(title)
	out := []movies.Movie{}
	for _, m := range f.Catalogue {
		if strings.Contains(strings.ToLower(m.Title), q) {
			out = append(out, m)
		}
	}
	return out, nil
}

var (
	_ movies.Searcher = (*Stub)(nil)
	_ movies.Searcher = (*Spy)(nil)
	_ movies.Searcher = (*Fake)(nil)
)
