// Package resilience provides the failure-handling patterns used around
// calls to the movie catalogue: Retry with exponential backoff and jitter,
// and a CircuitBreaker that fails fast while the upstream is unhealthy.
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("omdb"))
//	err := cb.Execute(func() error {
//	    return resilience.RetryFunc(ctx, cfg, call)
//	})
package resilience
