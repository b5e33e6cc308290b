package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/treecheck/internal/structure"
)

// StartCommandSpan creates a span for a CLI command execution.
//
//	ctx, span := telemetry.StartCommandSpan(ctx, "validate")
//	defer span.End()
func StartCommandSpan(ctx context.Context, cmdName string) (context.Context, trace.Span) {
	ctx, span := GetTracerProvider().Tracer("commands").Start(ctx, "command."+cmdName)
	span.SetAttributes(
		attribute.String("command", cmdName),
		attribute.String("component", "cli"),
	)
	return ctx, span
}

// StartValidationSpan creates a span around one engine run over a tree of
// the given size.
func StartValidationSpan(ctx context.Context, nodes, depth int) (context.Context, trace.Span) {
	ctx, span := GetTracerProvider().Tracer("gate").Start(ctx, "treecheck.validate")
	span.SetAttributes(
		attribute.Int("tree.nodes", nodes),
		attribute.Int("tree.depth", depth),
		attribute.String("component", "gate"),
	)
	return ctx, span
}

// ResultAttributes summarises a validation result for a span.
func ResultAttributes(r structure.Result) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool("result.valid", r.IsValid),
		attribute.Int("result.score", r.Score),
		attribute.Int("result.errors", r.Count(structure.KindError)),
		attribute.Int("result.warnings", r.Count(structure.KindWarning)),
	}
}

// RecordSuccess marks a span as successful with optional result attributes.
func RecordSuccess(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
}

// RecordError records an error in a span and sets error status.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Bool("error", true))
}
