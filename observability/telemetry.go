package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry owns the providers installed by Init.
type Telemetry struct {
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// Init installs the tracer and meter providers when cfg.Enabled is set. With
// telemetry disabled the otel globals stay no-op and Shutdown does nothing.
func Init(ctx context.Context, cfg Config, svc ServiceInfo) (*Telemetry, error) {
	t := &Telemetry{}
	if !cfg.Enabled {
		return t, nil
	}
	cfg.ApplyDefaults()

	tp, err := InitTracer(ctx, cfg, svc)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	t.tp = tp

	mp, err := InitMeter(ctx, cfg, svc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}
	t.mp = mp
	return t, nil
}

// Enabled reports whether exporters are installed.
func (t *Telemetry) Enabled() bool {
	return t.tp != nil
}

// Shutdown flushes and stops both providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
