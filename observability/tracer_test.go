package observability

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// recordSpans swaps the global tracer provider for one that keeps finished
// spans in memory.
func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	spans := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return spans
}

func attrMap(s tracetest.SpanStub) map[string]string {
	m := make(map[string]string, len(s.Attributes))
	for _, kv := range s.Attributes {
		m[string(kv.Key)] = kv.Value.Emit()
	}
	return m
}

func TestExportDefaults(t *testing.T) {
	tc := DefaultTracerConfig("stt-webhook")
	if tc.ServiceName != "stt-webhook" || tc.Endpoint != "localhost:4318" || !tc.Insecure || tc.SampleRate != 1 {
		t.Errorf("unexpected tracer defaults %+v", tc)
	}

	res, err := tc.resource()
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	var service string
	for _, kv := range res.Attributes() {
		if string(kv.Key) == AttrServiceName {
			service = kv.Value.AsString()
		}
	}
	if service != "stt-webhook" {
		t.Errorf("expected service.name on the resource, got %q", service)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1, sdktrace.AlwaysSample().Description()},
		{2, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{-1, sdktrace.NeverSample().Description()},
		{0.25, "TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		if got := samplerFor(tt.rate).Description(); !strings.Contains(got, tt.want) {
			t.Errorf("samplerFor(%v) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestSpanHelpers(t *testing.T) {
	spans := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "archive.put")
	SetSpanAttribute(ctx, "object.key", "tx/abc.json")
	SetSpanAttribute(ctx, "object.size", 42)
	SetSpanAttribute(ctx, "object.size64", int64(42))
	SetSpanAttribute(ctx, "score", 0.98)
	SetSpanAttribute(ctx, "cached", true)
	SetSpanAttribute(ctx, "languages", []string{"en", "tr"})
	SetSpanAttribute(ctx, "ignored", struct{}{})
	SetSpanError(ctx, errors.New("bucket missing"))
	span.End()

	got := spans.GetSpans()
	if len(got) != 1 {
		t.Fatalf("expected one span, got %d", len(got))
	}
	if n := len(got[0].Attributes); n != 6 {
		t.Errorf("expected six typed attributes, got %d: %v", n, attrMap(got[0]))
	}
	if got[0].Status.Code != codes.Error {
		t.Error("expected error status")
	}

	// Without a span in the context the helpers are no-ops.
	bare := context.Background()
	SetSpanAttribute(bare, "k", "v")
	SetSpanError(bare, errors.New("ignored"))
	if trace.SpanFromContext(bare).IsRecording() {
		t.Error("expected a non-recording span")
	}
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	cfg := DefaultTracerConfig("stt-webhook")
	tp, err := InitTracer(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	if otel.GetTracerProvider() != tp {
		t.Error("expected the provider to be installed globally")
	}
	_ = tp.Shutdown(context.Background())
}
