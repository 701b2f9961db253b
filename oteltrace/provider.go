package oteltrace

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds the exporter settings read from the environment.
// SampleRatio is the fraction of gesture spans kept; touch input produces
// a span per event, so busy sessions usually want less than 1.
type Config struct {
	Enabled     string  `env:"GESTURE_OTEL_ENABLED"`
	Endpoint    string  `env:"GESTURE_OTEL_ENDPOINT"`
	SampleRatio float64 `env:"GESTURE_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Active reports whether an exporter should be installed.
func (c Config) Active() bool {
	return c.Endpoint != "" && !strings.EqualFold(c.Enabled, "false")
}

// Sampler returns the sampler for SampleRatio, respecting a sampled parent.
func (c Config) Sampler() sdktrace.Sampler {
	if c.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio))
}

// SetupOption adjusts the tracer provider built by Setup.
type SetupOption func(*setup)

type setup struct {
	version string
	sampler sdktrace.Sampler
	global  bool
}

// WithServiceVersion records version as the service.version resource attribute.
func WithServiceVersion(version string) SetupOption {
	return func(s *setup) { s.version = version }
}

// WithSampler overrides the sampler derived from GESTURE_OTEL_SAMPLE_RATIO.
func WithSampler(sampler sdktrace.Sampler) SetupOption {
	return func(s *setup) { s.sampler = sampler }
}

// WithoutGlobal leaves the global tracer provider and propagator untouched.
// Spans still flow through the returned Store.
func WithoutGlobal() SetupOption {
	return func(s *setup) { s.global = false }
}

// Tracing is the result of Setup.
type Tracing struct {
	// Store records gesture events as spans. Attach it with
	// Engine.AddEventStore.
	Store *Store
	// Shutdown flushes pending spans and should be deferred by the caller.
	Shutdown func(context.Context) error
	// Enabled reports whether spans are exported.
	Enabled bool
}

// Setup builds a gesture event store backed by an OTLP/HTTP exporter.
//
// Tracing is opt-in: when GESTURE_OTEL_ENDPOINT is empty or
// GESTURE_OTEL_ENABLED is "false", the store records into a no-op tracer,
// Shutdown does nothing and no global provider is registered.
func Setup(ctx context.Context, serviceName string, opts ...SetupOption) (Tracing, error) {
	off := Tracing{
		Store:    NewStore(ctx, noopTracer()),
		Shutdown: func(context.Context) error { return nil },
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return off, fmt.Errorf("oteltrace: parse env: %w", err)
	}
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		return off, fmt.Errorf("oteltrace: sample ratio %v outside [0, 1]", cfg.SampleRatio)
	}
	if !cfg.Active() {
		return off, nil
	}

	s := setup{sampler: cfg.Sampler(), global: true}
	for _, opt := range opts {
		opt(&s)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return off, fmt.Errorf("oteltrace: exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(serviceName, s.version)...))
	if err != nil {
		return off, fmt.Errorf("oteltrace: resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(s.sampler),
	)
	if s.global {
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}

	return Tracing{
		Store:    NewStore(ctx, tp.Tracer(instrumentationName)),
		Shutdown: tp.Shutdown,
		Enabled:  true,
	}, nil
}
