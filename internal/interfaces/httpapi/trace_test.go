package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func tracedContext() context.Context {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestStartSpan(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		span      string
		wantChild bool
	}{
		{name: "handler with parent", ctx: tracedContext(), span: "httpapi.Handler.ListWeeklyOdds", wantChild: true},
		{name: "helper with parent", ctx: tracedContext(), span: "httpapi.writeError"},
		{name: "handler without parent", ctx: context.Background(), span: "httpapi.Handler.Healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, span := startSpan(tt.ctx, tt.span)
			defer span.End()

			if got := span.SpanContext().IsValid(); got != tt.wantChild {
				t.Fatalf("startSpan(%q) child=%v want=%v", tt.span, got, tt.wantChild)
			}
		})
	}
}
