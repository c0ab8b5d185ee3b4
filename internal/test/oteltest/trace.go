package oteltest

import (
	"go.opentelemetry.io/otel/attribute"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// NilTraceID is an empty trace id.
var NilTraceID trace.TraceID

// SampleTraceID is a sample of trace id.
var SampleTraceID = MustParseTraceID("25239e8a2ad5562d561f2ecd6a9744de")

// MustParseTraceID parse a string to trace id.
func MustParseTraceID(s string) trace.TraceID {
	r, err := trace.TraceIDFromHex(s)
	handleErr(err)

	return r
}

// NilSpanID is an empty span id.
var NilSpanID trace.SpanID

// SampleSpanID is a sample of span id.
var SampleSpanID = MustParseSpanID("1d256548fd1a0dba")

// MustParseSpanID parse a string to span id.
func MustParseSpanID(s string) trace.SpanID {
	r, err := trace.SpanIDFromHex(s)
	handleErr(err)

	return r
}

// Span represents an ended span.
type Span struct {
	Name        string
	SpanContext SpanContext
	Parent      SpanContext
	SpanKind    trace.SpanKind
	Status      tracesdk.Status
	Attributes  map[attribute.Key]any
}

// SpanContext represents a span context.
type SpanContext struct {
	TraceID string
	SpanID  string
}

func spanFromReadOnlySpan(s tracesdk.ReadOnlySpan) Span {
	attrs := make(map[attribute.Key]any, len(s.Attributes()))

	for _, kv := range s.Attributes() {
		attrs[kv.Key] = kv.Value.AsInterface()
	}

	return Span{
		Name:        s.Name(),
		SpanContext: spanContext(s.SpanContext()),
		Parent:      spanContext(s.Parent()),
		SpanKind:    s.SpanKind(),
		Status:      s.Status(),
		Attributes:  attrs,
	}
}

func spanContext(sc trace.SpanContext) SpanContext {
	return SpanContext{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}
