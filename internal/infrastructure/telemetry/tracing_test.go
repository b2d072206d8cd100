package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupRecorder installs a recording tracer provider as the global provider
// and restores the previous one when the test finishes.
func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
	})

	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestStartSpan(t *testing.T) {
	t.Run("records span with name and attributes", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "statement.generate",
			WithAttribute("policies", 3),
			WithAttribute("tenant", "acme"),
		)
		span.End()

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "statement.generate", spans[0].Name())
		assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())

		attrs := attrMap(spans[0].Attributes())
		assert.Equal(t, int64(3), attrs["policies"].AsInt64())
		assert.Equal(t, "acme", attrs["tenant"].AsString())
	})

	t.Run("span kind option", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "ledger.parse",
			WithSpanKind(trace.SpanKindServer),
		)
		span.End()

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	})

	t.Run("context carries the span", func(t *testing.T) {
		setupRecorder(t)

		ctx, span := StartSpan(context.Background(), "statement.generate")
		defer span.End()

		assert.Equal(t, span, SpanFromContext(ctx))
	})
}

func TestStartServiceSpan(t *testing.T) {
	recorder := setupRecorder(t)

	_, span := StartServiceSpan(context.Background(), "statement", "generate")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "statement.generate", spans[0].Name())
}

func TestRecordError(t *testing.T) {
	recorder := setupRecorder(t)

	_, span := StartSpan(context.Background(), "ledger.parse")
	RecordError(span, assert.AnError)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, assert.AnError.Error(), spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)

	// nil span and nil error are no-ops
	RecordError(nil, assert.AnError)
	RecordError(span, nil)
}

func TestSetAttributes(t *testing.T) {
	recorder := setupRecorder(t)

	_, span := StartSpan(context.Background(), "statement.generate")
	SetAttributes(span,
		"events", 42,
		"policy", "per-active-user",
		"partial", true,
	)
	SetAttribute(span, "ratio", 0.5)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, int64(42), attrs["events"].AsInt64())
	assert.Equal(t, "per-active-user", attrs["policy"].AsString())
	assert.Equal(t, true, attrs["partial"].AsBool())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
}

func TestAddEvent(t *testing.T) {
	recorder := setupRecorder(t)

	_, span := StartSpan(context.Background(), "statement.generate")
	AddEvent(span, "policy_applied", "policy", "per-read-volume")
	SetOK(span)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "policy_applied", spans[0].Events()[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}
