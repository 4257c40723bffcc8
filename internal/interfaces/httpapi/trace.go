package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("nfl-draft-league/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler methods only. Requests that
// otelhttp did not trace (health probes, /metrics) get the context back as is.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !strings.HasPrefix(name, handlerSpanPrefix) || !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}
