// Package observability wires OpenTelemetry tracing and metrics for
// simplemovies and defines the health model served by /health.
//
//	tel, err := observability.Init(ctx, cfg.Observability, observability.ServiceInfo{Name: "simplemovies"})
//	defer tel.Shutdown(ctx)
//
// With telemetry disabled the otel globals stay no-op, so instrumented code
// never needs to check.
package observability
