package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/simplemovies/resilience"
)

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.URL.Query().Get("s"); got != "batman" {
			t.Errorf("expected s=batman, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"Response": "True"})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{Query: map[string]string{"s": "batman"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected 2xx, got %d", resp.StatusCode)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected flattened content type, got %v", resp.Headers)
	}
	if !strings.Contains(string(resp.Body), "True") {
		t.Errorf("unexpected body %s", resp.Body)
	}
}

func TestClient_Do_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected default content-type, got %q", got)
		}
		if got := r.Header.Get("X-Request"); got != "override" {
			t.Errorf("expected request header to win, got %q", got)
		}
	}))
	defer srv.Close()

	c, _ := New(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"content-type": "application/json", "X-Request": "default"},
	})
	_, err := c.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Headers: map[string]string{"X-Request": "override"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_Bodies(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		contentType string
		raw         string
	}{
		{"json", map[string]string{"name": "Bob"}, "application/json", `{"name":"Bob"}`},
		{"string", "hello", "text/plain", "hello"},
		{"bytes", []byte("raw"), "", "raw"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Content-Type"); got != tc.contentType {
					t.Errorf("expected content type %q, got %q", tc.contentType, got)
				}
				raw, _ := io.ReadAll(r.Body)
				if strings.TrimSpace(string(raw)) != tc.raw {
					t.Errorf("expected body %q, got %q", tc.raw, string(raw))
				}
			}))
			defer srv.Close()

			c, _ := New(Config{BaseURL: srv.URL})
			if _, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/x", Body: tc.body}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestClient_Do_ErrorClassification(t *testing.T) {
	tests := []struct {
		status    int
		code      ErrorCode
		retryable bool
	}{
		{http.StatusUnauthorized, ErrCodeAuth, false},
		{http.StatusNotFound, ErrCodeNotFound, false},
		{http.StatusTooManyRequests, ErrCodeRateLimit, true},
		{http.StatusBadRequest, ErrCodeValidation, false},
		{http.StatusBadGateway, ErrCodeServer, true},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"Response":"False","Error":"nope"}`))
			}))
			defer srv.Close()

			c, _ := New(Config{BaseURL: srv.URL})
			resp, err := c.Do(context.Background(), Request{})
			e, ok := AsError(err)
			if !ok {
				t.Fatalf("expected *Error, got %v", err)
			}
			if e.Code != tc.code || e.Retryable != tc.retryable {
				t.Errorf("expected %s/%v, got %s/%v", tc.code, tc.retryable, e.Code, e.Retryable)
			}
			if resp == nil || resp.StatusCode != tc.status {
				t.Fatalf("expected response with status %d alongside error", tc.status)
			}
			if !strings.Contains(string(e.Body), "nope") {
				t.Errorf("expected error body to be kept, got %s", e.Body)
			}
		})
	}
}

func TestClient_Do_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New(Config{BaseURL: url})
	_, err := c.Do(context.Background(), Request{})
	e, ok := AsError(err)
	if !ok || e.Code != ErrCodeConnection || !e.IsTransport() {
		t.Fatalf("expected transport connection error, got %v", err)
	}
}

func TestClient_Do_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Do(ctx, Request{})
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestClient_Do_FullURLIgnoresBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/direct" {
			t.Errorf("expected /direct, got %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: "http://unused.invalid"})
	if _, err := c.Do(context.Background(), Request{Path: srv.URL + "/direct"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_Retry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	retry := DefaultRetryConfig()
	retry.InitialBackoff = time.Millisecond
	c, _ := New(Config{BaseURL: srv.URL, Retry: retry})

	resp, err := c.Do(context.Background(), Request{})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if string(resp.Body) != "ok" || calls.Load() != 3 {
		t.Errorf("expected 3 calls ending in ok, got %d calls body %q", calls.Load(), resp.Body)
	}
}

func TestClient_Do_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	retry := DefaultRetryConfig()
	retry.InitialBackoff = time.Millisecond
	c, _ := New(Config{BaseURL: srv.URL, Retry: retry})

	_, _ = c.Do(context.Background(), Request{})
	if calls.Load() != 1 {
		t.Errorf("expected a single call for 401, got %d", calls.Load())
	}
}

func TestClient_Do_CircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cb := DefaultCircuitBreakerConfig("omdb")
	cb.MaxFailures = 2
	c, _ := New(Config{BaseURL: srv.URL, CircuitBreaker: cb})

	for i := 0; i < 2; i++ {
		_, _ = c.Do(context.Background(), Request{})
	}
	if c.CircuitState() != resilience.StateOpen {
		t.Fatalf("expected open circuit, got %s", c.CircuitState())
	}

	_, err := c.Do(context.Background(), Request{})
	if !IsCircuitOpen(err) {
		t.Errorf("expected circuit open error, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("open circuit must not reach the server, got %d calls", calls.Load())
	}
}

func TestClient_Do_CircuitIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, CircuitBreaker: &resilience.CircuitBreakerConfig{MaxFailures: 1}})
	for i := 0; i < 3; i++ {
		_, _ = c.Do(context.Background(), Request{})
	}
	if c.CircuitState() != resilience.StateClosed {
		t.Errorf("4xx must not open the circuit, got %s", c.CircuitState())
	}
}

func TestClient_Do_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 || spans[0].Name() != "HTTP GET" {
		t.Fatalf("expected one HTTP GET span, got %d", len(spans))
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if err := (&Config{Timeout: -1}).Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestResponse_Helpers(t *testing.T) {
	if !(&Response{StatusCode: 204}).IsSuccess() {
		t.Error("204 is success")
	}
	if !(&Response{StatusCode: 404}).IsClientError() || (&Response{StatusCode: 500}).IsClientError() {
		t.Error("unexpected IsClientError result")
	}
}
