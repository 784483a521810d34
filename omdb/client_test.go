package omdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/observability"
	"github.com/kbukum/simplemovies/resilience"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL: srv.URL,
		Timeout: time.Second,
		Retry:   &resilience.RetryConfig{MaxAttempts: 1},
		CircuitBreaker: &resilience.CircuitBreakerConfig{
			MaxFailures: 2,
			Timeout:     time.Minute,
		},
	}, logger.NewNop())
	require.NoError(t, err)
	return c
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestFetch_Success(t *testing.T) {
	var gotQuery, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("s")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"Search":[],"Response":"True"}`))
	})

	body, err := c.Fetch(context.Background(), map[string]string{"s": "alien"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Search":[],"Response":"True"}`, string(body))
	assert.Equal(t, "alien", gotQuery)
	assert.Equal(t, "application/json", gotContentType)
}

func TestFetch_EmptyBody(t *testing.T) {
	c := newTestClient(t, respond(http.StatusOK, ""))

	body, err := c.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestFetch_Classification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   Kind
		wantAPIMsg string
	}{
		{"api error in 200", http.StatusOK, `{"Response":"False","Error":"Movie not found!"}`, KindAPI, "Movie not found!"},
		{"api error in 401", http.StatusUnauthorized, `{"Response":"False","Error":"Invalid API key!"}`, KindAPI, "Invalid API key!"},
		{"undecodable 4xx", http.StatusBadRequest, `<html>bad</html>`, KindAPI, "Unknown error."},
		{"4xx without body", http.StatusNotFound, ``, KindUnexpected, ""},
		{"server error", http.StatusInternalServerError, `{"Response":"False","Error":"boom"}`, KindUnexpected, ""},
		{"redirect-ish status", http.StatusNotModified, ``, KindUnexpected, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, respond(tt.status, tt.body))

			_, err := c.Fetch(context.Background(), nil)
			require.Error(t, err)

			var ne *NetworkError
			require.True(t, errors.As(err, &ne))
			assert.Equal(t, tt.wantKind, ne.Kind)
			if tt.wantKind == KindAPI {
				api, ok := AsAPIError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantAPIMsg, api.Message)
				assert.Equal(t, "False", api.Response)
			}
		})
	}
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, ""))
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url, Retry: &resilience.RetryConfig{MaxAttempts: 1}}, logger.NewNop())
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), nil)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, KindRaw, ne.Kind)
	assert.Zero(t, ne.StatusCode)
	assert.NotNil(t, ne.Err)
}

func TestFetch_SuccessWithPartialEnvelope(t *testing.T) {
	// Only an object carrying both envelope fields counts as an API error.
	c := newTestClient(t, respond(http.StatusOK, `{"Response":"True","totalResults":"0"}`))

	body, err := c.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, string(body), "totalResults")
}

func TestCheckHealth_CircuitState(t *testing.T) {
	c := newTestClient(t, respond(http.StatusServiceUnavailable, ""))

	assert.Equal(t, observability.HealthStatusUp, c.CheckHealth(context.Background()).Status)

	for i := 0; i < 2; i++ {
		_, _ = c.Fetch(context.Background(), nil)
	}

	h := c.CheckHealth(context.Background())
	assert.Equal(t, observability.HealthStatusDegraded, h.Status)
	assert.Equal(t, "open", h.Details["circuit"])

	_, err := c.Fetch(context.Background(), nil)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, KindRaw, ne.Kind)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{BaseURL: "not a url"}
	cfg.ApplyDefaults()
	assert.Error(t, cfg.Validate())

	cfg = Config{}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "omdb", cfg.CircuitBreaker.Name)
}
