package movies

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/omdb"
)

const instrumentationName = "github.com/kbukum/simplemovies/movies"

// Searcher finds catalogue entries by title.
type Searcher interface {
	SearchMovies(ctx context.Context, title string) ([]Movie, error)
}

// Service is the production Searcher.
type Service struct {
	fetcher  omdb.Fetcher
	cfg      Config
	cache    *gocache.Cache
	log      *logger.Logger
	tracer   trace.Tracer
	searches metric.Int64Counter
}

// Option customizes a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	tp trace.TracerProvider
	mp metric.MeterProvider
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *serviceOptions) { o.tp = tp }
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *serviceOptions) { o.mp = mp }
}

// NewService creates a Service. cfg must already be validated.
func NewService(fetcher omdb.Fetcher, cfg Config, log *logger.Logger, opts ...Option) (*Service, error) {
	o := serviceOptions{tp: otel.GetTracerProvider(), mp: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}
	cfg.ApplyDefaults()

	searches, err := o.mp.Meter(instrumentationName).Int64Counter("movies.search.total",
		metric.WithDescription("Number of title searches by outcome"),
	)
	if err != nil {
		return nil, err
	}

	s := &Service{
		fetcher:  fetcher,
		cfg:      cfg,
		log:      log.WithComponent("movies"),
		tracer:   o.tp.Tracer(instrumentationName),
		searches: searches,
	}
	if cfg.CacheEnabled() {
		s.cache = gocache.New(cfg.CacheTTL, cfg.CacheCleanup)
	}
	return s, nil
}

// SearchMovies implements Searcher.
func (s *Service) SearchMovies(ctx context.Context, title string) ([]Movie, error) {
	title = strings.TrimSpace(title)
	ctx, span := s.tracer.Start(ctx, "movies.SearchMovies", trace.WithAttributes(
		attribute.String("movies.title", title),
	))
	defer span.End()

	results, cached, err := s.search(ctx, title)
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	span.SetAttributes(
		attribute.Bool("movies.cache_hit", cached),
		attribute.Int("movies.results", len(results)),
	)
	s.searches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("cache_hit", cached),
	))
	return results, err
}

func (s *Service) search(ctx context.Context, title string) ([]Movie, bool, error) {
	if title == "" {
		return nil, false, &ServiceError{Kind: KindInvalidQuery}
	}

	key := strings.ToLower(title)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if movies, ok := v.([]Movie); ok {
				s.log.WithContext(ctx).Debug("Search cache hit", logger.Fields(logger.FieldTitle, title))
				return clone(movies), true, nil
			}
		}
	}

	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, map[string]string{"apikey": s.cfg.APIKey, "s": title})
	if err != nil {
		serr := &ServiceError{Kind: KindNetwork, Err: err}
		if api, ok := omdb.AsAPIError(err); ok {
			serr = &ServiceError{Kind: KindAPI, API: api, Err: err}
		}
		s.log.WithContext(ctx).Warn("Search failed", logger.Fields(
			logger.FieldTitle, title,
			"kind", serr.Kind.String(),
			logger.FieldError, err.Error(),
		))
		return nil, false, serr
	}

	movies := []Movie{}
	if len(body) > 0 {
		var resp SearchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, false, &ServiceError{Kind: KindDecoding, Err: err}
		}
		if resp.Results != nil {
			movies = resp.Results
		}
	}

	if s.cache != nil {
		s.cache.Set(key, clone(movies), gocache.DefaultExpiration)
	}
	s.log.WithContext(ctx).Debug("Search completed", logger.Fields(
		logger.FieldTitle, title,
		"results", len(movies),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return movies, false, nil
}

// Flush drops every cached result.
func (s *Service) Flush() {
	if s.cache != nil {
		s.cache.Flush()
	}
}

func clone(in []Movie) []Movie {
	return append([]Movie{}, in...)
}

var _ Searcher = (*Service)(nil)

// IsAPIError reports whether err is a rejection from the catalogue itself.
func IsAPIError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == KindAPI
}
