package sqlmonitor

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"go.nhat.io/sqlmonitor/intercept"
)

// statementRecorder counts the intercepted calls and records their latencies, by category and status.
type statementRecorder struct {
	latency metric.Float64Histogram
	calls   metric.Int64Counter

	attributes []attribute.KeyValue
}

func newStatementRecorder(meter metric.Meter, attrs ...attribute.KeyValue) statementRecorder {
	latency, err := meter.Float64Histogram(dbSQLStatementLatencyMs,
		metric.WithUnit("ms"),
		metric.WithDescription(`The distribution of latencies of intercepted calls in milliseconds`),
	)
	handleErr(err)

	if latency == nil {
		latency = noop.Float64Histogram{}
	}

	calls, err := meter.Int64Counter(dbSQLStatementCalls,
		metric.WithUnit("1"),
		metric.WithDescription(`The number of intercepted calls`),
	)
	handleErr(err)

	if calls == nil {
		calls = noop.Int64Counter{}
	}

	return statementRecorder{
		latency:    latency,
		calls:      calls,
		attributes: attrs,
	}
}

func (r statementRecorder) Record(ctx context.Context, e intercept.Event) {
	attrs := make([]attribute.KeyValue, 0, len(r.attributes)+3)

	attrs = append(attrs, r.attributes...)
	attrs = append(attrs, semconv.DBOperationKey.String(string(e.Category)))

	if e.Err == nil {
		attrs = append(attrs, dbSQLStatusOK)
	} else {
		attrs = append(attrs, dbSQLStatusERROR, dbSQLError.String(e.Err.Error()))
	}

	// The statement is done, its cancellation must not drop the measurement.
	ctx = context.WithoutCancel(ctx)
	set := metric.WithAttributeSet(attribute.NewSet(attrs...))

	r.calls.Add(ctx, 1, set)
	r.latency.Record(ctx, milliseconds(e.Elapsed), set)
}
