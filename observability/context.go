package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one outbound speech-to-text call across its span and
// metrics.
type Operation struct {
	RequestID string
	ModelID   string
	StartTime time.Time
	Metrics   *Metrics
}

// NewOperation creates an operation. If metrics is nil, metric recording is
// skipped.
func NewOperation(requestID, modelID string, metrics *Metrics) *Operation {
	return &Operation{
		RequestID: requestID,
		ModelID:   modelID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type operationKey struct{}

// WithOperation stores an Operation in the context.
func WithOperation(ctx context.Context, op *Operation) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext retrieves the Operation from context, or nil.
func OperationFromContext(ctx context.Context) *Operation {
	if op, ok := ctx.Value(operationKey{}).(*Operation); ok {
		return op
	}
	return nil
}

// Start opens the span and records the request start metric.
func (op *Operation) Start(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrModelID, op.ModelID),
		attribute.String(AttrRequestID, op.RequestID),
	)
	op.Metrics.RecordRequestStart(ctx)
	return WithOperation(ctx, op), span
}

// End finishes the span and records request-end metrics. statusCode is the
// HTTP status, or 0 when none was received. errKind is empty on success.
func (op *Operation) End(ctx context.Context, span trace.Span, statusCode int, errKind string, err error) {
	duration := time.Since(op.StartTime)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetAttributes(
			attribute.String(AttrErrorKind, errKind),
			attribute.String(AttrErrorMessage, err.Error()),
		)
		span.SetStatus(codes.Error, err.Error())
		op.Metrics.RecordError(ctx, errKind, op.ModelID)
	}
	if statusCode > 0 {
		span.SetAttributes(attribute.Int(AttrHTTPStatus, statusCode))
	}
	span.SetAttributes(attribute.Int64(AttrDurationMs, duration.Milliseconds()))
	span.End()

	op.Metrics.RecordRequestEnd(ctx, op.ModelID, status, duration)
}

// Duration returns the elapsed time since the operation started.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
