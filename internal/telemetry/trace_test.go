package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/felixgeelhaar/treecheck/internal/structure"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		SetTracerProvider(nil)
	})
	return exporter
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestStartCommandSpan(t *testing.T) {
	exporter := setupTestTracer(t)

	_, span := StartCommandSpan(context.Background(), "validate")
	RecordSuccess(span)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "command.validate", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, "validate", attrMap(spans[0].Attributes)["command"].AsString())
}

func TestStartValidationSpan(t *testing.T) {
	exporter := setupTestTracer(t)

	ctx, parent := StartCommandSpan(context.Background(), "validate")
	_, span := StartValidationSpan(ctx, 12, 3)
	RecordSuccess(span, ResultAttributes(structure.Result{IsValid: true, Score: 95})...)
	span.End()
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	child := spans[0]
	assert.Equal(t, "treecheck.validate", child.Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), child.Parent.SpanID())

	attrs := attrMap(child.Attributes)
	assert.Equal(t, int64(12), attrs["tree.nodes"].AsInt64())
	assert.Equal(t, int64(95), attrs["result.score"].AsInt64())
	assert.True(t, attrs["result.valid"].AsBool())
}

func TestRecordError(t *testing.T) {
	exporter := setupTestTracer(t)

	_, span := StartCommandSpan(context.Background(), "fix")
	RecordError(span, nil)
	RecordError(span, errors.New("tree file not found"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "tree file not found", spans[0].Status.Description)
	assert.Len(t, spans[0].Events, 1)
}

func TestInitProvider_Disabled(t *testing.T) {
	t.Cleanup(func() { SetTracerProvider(nil) })

	shutdown, err := InitProvider(context.Background(), DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	_, span := StartCommandSpan(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestInitProvider_EnabledWithoutEndpoint(t *testing.T) {
	t.Cleanup(func() { SetTracerProvider(nil) })

	cfg := DefaultConfig()
	cfg.Enabled = true

	shutdown, err := InitProvider(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	_, span := StartCommandSpan(context.Background(), "sampled")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestGetTracerProvider_DefaultsToNoop(t *testing.T) {
	SetTracerProvider(nil)
	assert.NotNil(t, GetTracerProvider())
}
