package sqlmonitor

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"go.nhat.io/sqlmonitor/intercept"
)

var _ intercept.Logger = (*StatementLogger)(nil)

// StatementLogger records metrics and spans for the intercepted statements, and logs them at debug level.
type StatementLogger struct {
	recorder statementRecorder
	tracer   *eventTracer
	logger   zerolog.Logger
}

// NewStatementLogger creates a new statement logger.
func NewStatementLogger(opts ...Option) *StatementLogger {
	return newStatementLogger(newOptions(opts...))
}

func newStatementLogger(o options) *StatementLogger {
	meter := o.meterProvider.Meter(instrumentationName, metric.WithInstrumentationVersion(Version()))

	tracer := o.tracerProvider.Tracer(instrumentationName,
		trace.WithInstrumentationVersion(Version()),
	)

	return &StatementLogger{
		recorder: newStatementRecorder(meter, o.defaultAttributes...),
		tracer:   newEventTracer(tracer, o.trace, o.defaultAttributes...),
		logger:   o.logger,
	}
}

// LogEvent records the event.
func (l *StatementLogger) LogEvent(ctx context.Context, e intercept.Event) {
	l.recorder.Record(ctx, e)
	l.tracer.Trace(ctx, e)

	evt := l.logger.Debug()
	if e.Err != nil {
		evt = l.logger.Warn().Err(e.Err)
	}

	evt.Int64("connection_id", e.ConnectionID).
		Str("category", string(e.Category)).
		Dur("elapsed", e.Elapsed).
		Str("query", e.Query).
		Msg("sql")
}
