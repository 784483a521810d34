package omdb

import (
	"context"
	"net/http"

	"github.com/kbukum/simplemovies/httpclient"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/observability"
	"github.com/kbukum/simplemovies/resilience"
)

var defaultHeaders = map[string]string{"content-type": "application/json"}

// Fetcher performs a catalogue GET with the given query parameters and
// returns the raw body, which may be empty.
type Fetcher interface {
	Fetch(ctx context.Context, query map[string]string) ([]byte, error)
}

// Client talks to the OMDb HTTP API.
type Client struct {
	http *httpclient.Client
	log  *logger.Logger
}

// New creates a Client from cfg.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL:        cfg.BaseURL,
		Timeout:        cfg.Timeout,
		Headers:        defaultHeaders,
		Retry:          cfg.Retry,
		CircuitBreaker: cfg.CircuitBreaker,
		TLS:            cfg.TLS,
	})
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, log: log.WithComponent("omdb")}, nil
}

// Fetch implements Fetcher.
func (c *Client) Fetch(ctx context.Context, query map[string]string) ([]byte, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Query: query})
	if err != nil {
		nerr := classify(err)
		c.log.WithContext(ctx).Debug("Catalogue request failed", logger.Fields(
			"kind", nerr.Kind.String(),
			logger.FieldStatus, nerr.StatusCode,
			logger.FieldError, err.Error(),
		))
		return nil, nerr
	}

	if apiErr, ok := decodeAPIError(resp.Body); ok {
		return nil, &NetworkError{Kind: KindAPI, StatusCode: resp.StatusCode, API: &apiErr}
	}
	return resp.Body, nil
}

func classify(err error) *NetworkError {
	herr, ok := httpclient.AsError(err)
	if !ok || herr.IsTransport() {
		return &NetworkError{Kind: KindRaw, Err: err}
	}

	status := herr.StatusCode
	if status < 400 || status > 499 || len(herr.Body) == 0 {
		return &NetworkError{Kind: KindUnexpected, StatusCode: status, Err: err}
	}

	apiErr, ok := decodeAPIError(herr.Body)
	if !ok {
		apiErr = UnknownAPIError
	}
	return &NetworkError{Kind: KindAPI, StatusCode: status, API: &apiErr}
}

// CheckHealth reports the catalogue as degraded while its circuit is not
// closed.
func (c *Client) CheckHealth(context.Context) observability.Health {
	state := c.http.CircuitState()
	h := observability.Health{
		Name:    "omdb",
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"circuit": state.String()},
	}
	if state != resilience.StateClosed {
		h.Status = observability.HealthStatusDegraded
		h.Message = "catalogue circuit is " + state.String()
	}
	return h
}
