package live

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/sortable/pkg/event"
)

// Default tracer name for the live bridge.
const defaultTracerName = "sortable"

// Tracer emits one span per drag session. A nil *Tracer is valid and
// traces nothing. The tracer uses the global OpenTelemetry tracer
// provider; configure it in main() before serving.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer on the global provider. An empty name uses
// the default.
func NewTracer(name string) *Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return &Tracer{tracer: otel.Tracer(name)}
}

// dragSpan tracks one in-flight drag session span.
type dragSpan struct {
	span trace.Span
}

// StartDrag opens the session span when a drag begins.
func (t *Tracer) StartDrag(ctx context.Context, sessionID, container string, e *event.Event) *dragSpan {
	if t == nil {
		return nil
	}
	_, span := t.tracer.Start(ctx, "sortable.drag", trace.WithAttributes(
		attribute.String("sortable.session_id", sessionID),
		attribute.String("sortable.container", container),
		attribute.Int("sortable.old_index", e.OldIndex),
	))
	return &dragSpan{span: span}
}

// Reorder annotates the span with one applied reorder step.
func (s *dragSpan) Reorder(e *event.Event) {
	if s == nil {
		return
	}
	s.span.AddEvent("reorder", trace.WithAttributes(
		attribute.Int("sortable.old_index", e.OldIndex),
		attribute.Int("sortable.new_index", e.NewIndex),
	))
}

// End closes the span with the final indices. Aborted sessions (client
// gone mid-drag) record an error status.
func (s *dragSpan) End(e *event.Event, aborted bool) {
	if s == nil {
		return
	}
	if e != nil {
		s.span.SetAttributes(
			attribute.Int("sortable.old_index", e.OldIndex),
			attribute.Int("sortable.new_index", e.NewIndex),
			attribute.Bool("sortable.moved", e.OldIndex != e.NewIndex),
		)
	}
	if aborted {
		s.span.SetStatus(codes.Error, "session aborted")
	}
	s.span.End()
}
