package sqlmonitor

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.opentelemetry.io/otel/trace"

	"go.nhat.io/sqlmonitor/intercept"
)

// eventTracer turns intercepted events into spans.
type eventTracer struct {
	tracer trace.Tracer

	allowRoot  bool
	traceArgs  bool
	attributes []attribute.KeyValue
}

// ShouldTrace checks whether the event is traced: either there is a parent span or root spans are allowed.
func (t *eventTracer) ShouldTrace(ctx context.Context) bool {
	return t.allowRoot || trace.SpanContextFromContext(ctx).IsValid()
}

// Trace records a span that starts and ends when the event did.
func (t *eventTracer) Trace(ctx context.Context, e intercept.Event) {
	if !t.ShouldTrace(ctx) {
		return
	}

	_, span := t.tracer.Start(ctx, formatSpanName(e.Category),
		trace.WithTimestamp(e.Start),
		trace.WithSpanKind(trace.SpanKindClient),
	)

	attrs := make([]attribute.KeyValue, 0, len(t.attributes)+3+len(e.Args))

	attrs = append(attrs, t.attributes...)
	attrs = append(attrs,
		semconv.DBOperationKey.String(string(e.Category)),
		dbSQLConnectionID.Int64(e.ConnectionID),
	)

	if e.Query != "" {
		attrs = append(attrs, semconv.DBStatementKey.String(e.Query))
	}

	if t.traceArgs {
		attrs = append(attrs, argsAttributes(e.Args)...)
	}

	code, desc := spanStatusFromError(e.Err)

	span.SetAttributes(attrs...)
	span.SetStatus(code, desc)

	if code == codes.Error {
		span.RecordError(e.Err)
	}

	span.End(trace.WithTimestamp(e.Start.Add(e.Elapsed)))
}

func newEventTracer(tracer trace.Tracer, opts TraceOptions, attrs ...attribute.KeyValue) *eventTracer {
	return &eventTracer{
		tracer:     tracer,
		allowRoot:  opts.AllowRoot,
		traceArgs:  opts.Args,
		attributes: attrs,
	}
}

func formatSpanName(category intercept.Category) string {
	var sb strings.Builder

	sb.Grow(len(category) + 4)
	sb.WriteString("sql:")
	sb.WriteString(string(category))

	return sb.String()
}

func spanStatusFromError(err error) (codes.Code, string) {
	if err == nil || errors.Is(err, driver.ErrSkip) {
		return codes.Ok, ""
	}

	return codes.Error, err.Error()
}
