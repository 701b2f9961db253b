// Package oteltrace records gesture events as OpenTelemetry spans.
package oteltrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/phanxgames/gesture"
)

// instrumentationName names the tracer Setup hands to its Store.
const instrumentationName = "github.com/phanxgames/gesture/oteltrace"

// Store is a gesture.EventStore that starts and ends one span per event.
type Store struct {
	ctx    context.Context
	tracer trace.Tracer
}

// NewStore returns a Store creating spans with tracer under ctx.
func NewStore(ctx context.Context, tracer trace.Tracer) *Store {
	return &Store{ctx: ctx, tracer: tracer}
}

// EmitEvent implements gesture.EventStore.
func (s *Store) EmitEvent(ev gesture.Event) {
	_, span := s.tracer.Start(s.ctx, ev.Name, trace.WithAttributes(Attributes(ev)...))
	span.End()
}

// Attributes describes ev as span attributes. Computed values are included
// only when the emitting recognizer resolved them for the frame.
func Attributes(ev gesture.Event) []attribute.KeyValue {
	c := &ev.Computed
	attrs := []attribute.KeyValue{
		attribute.String("gesture.recognizer", ev.Recognizer),
		attribute.String("gesture.state", ev.State.String()),
		attribute.String("gesture.phase", c.Phase.String()),
		attribute.Int("gesture.point_length", c.PointLength),
		attribute.Int64("gesture.frame", int64(ev.Frame)),
	}
	if c.Has(gesture.FieldDistance) {
		attrs = append(attrs, attribute.Float64("gesture.distance", c.Distance))
	}
	if c.Has(gesture.FieldDirection) {
		attrs = append(attrs, attribute.String("gesture.direction", c.Direction.String()))
	}
	if c.Has(gesture.FieldVelocity) {
		attrs = append(attrs, attribute.Float64("gesture.velocity", c.Velocity))
	}
	if c.Has(gesture.FieldScale) {
		attrs = append(attrs, attribute.Float64("gesture.scale", c.Scale))
	}
	if c.Has(gesture.FieldAngle) {
		attrs = append(attrs, attribute.Float64("gesture.angle", c.Angle))
	}
	return attrs
}

func resourceAttributes(serviceName, version string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(serviceName)}
	if version != "" {
		attrs = append(attrs, semconv.ServiceVersion(version))
	}
	return attrs
}

func noopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(instrumentationName)
}
