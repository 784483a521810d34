// Package httpclient provides the outbound HTTP client used to reach the
// movie catalogue, with retry, circuit breaking and a client span per
// request.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:        "https://www.omdbapi.com/",
//	    Timeout:        10 * time.Second,
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("omdb"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Query:  map[string]string{"s": "batman"},
//	})
package httpclient
