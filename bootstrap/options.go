package bootstrap

import (
	"time"

	"github.com/kbukum/simplemovies/di"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/omdb"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	registry        *di.Registry
	fetcher         omdb.Fetcher
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithRegistry registers into r instead of a fresh registry.
func WithRegistry(r *di.Registry) Option {
	return func(o *appOptions) {
		o.registry = r
	}
}

// WithFetcher replaces the OMDb client backing the movie service.
func WithFetcher(f omdb.Fetcher) Option {
	return func(o *appOptions) {
		o.fetcher = f
	}
}
