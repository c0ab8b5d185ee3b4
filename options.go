package sqlmonitor

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"go.nhat.io/sqlmonitor/intercept"
)

const instrumentationName = "go.nhat.io/sqlmonitor"

// Option allows for managing sqlmonitor configuration using functional options.
type Option interface {
	applyOptions(o *options)
}

// options holds the configuration of the connection monitor and of its statement logger.
type options struct {
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	logger         zerolog.Logger

	timers          TimerRecorder
	interceptor     Interceptor
	console         ManagementConsole
	statementLogger intercept.Logger

	resolveMetadata MetadataResolver
	sanitize        Sanitizer

	trace TraceOptions

	// defaultAttributes will be set to each statement span and metric as default.
	defaultAttributes []attribute.KeyValue
}

// TraceOptions are options to enable the creation of spans on intercepted statements.
type TraceOptions struct {
	// AllowRoot, if set to true, will allow creating root spans in absence of existing spans.
	AllowRoot bool

	// Args, if set to true, will add the statement arguments to the spans.
	Args bool
}

func newOptions(opts ...Option) options {
	o := options{
		meterProvider:   otel.GetMeterProvider(),
		tracerProvider:  otel.GetTracerProvider(),
		logger:          log.Logger.With().Str("component", "sqlmonitor").Logger(),
		resolveMetadata: ResolveMetadata,
		sanitize:        SanitizeMetricSegment,
	}

	for _, opt := range opts {
		opt.applyOptions(&o)
	}

	if o.timers == nil {
		o.timers = NewMeterTimers(o.meterProvider)
	}

	if o.interceptor == nil {
		o.interceptor = intercept.Default()
	}

	if o.console == nil {
		o.console = intercept.DefaultConsole()
	}

	return o
}

// WithMeterProvider sets meter provider.
func WithMeterProvider(p metric.MeterProvider) Option {
	return optionFunc(func(o *options) {
		o.meterProvider = p
	})
}

// WithTracerProvider sets tracer provider.
func WithTracerProvider(p trace.TracerProvider) Option {
	return optionFunc(func(o *options) {
		o.tracerProvider = p
	})
}

// WithLogger sets the logger for diagnostics and statements.
func WithLogger(l zerolog.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithTimerRecorder sets where the connection acquisition durations are recorded. Default is an OpenTelemetry
// histogram per timer, see NewMeterTimers.
func WithTimerRecorder(r TimerRecorder) Option {
	return optionFunc(func(o *options) {
		o.timers = r
	})
}

// WithInterceptor sets the statement interception engine. Default is intercept.Default().
func WithInterceptor(i Interceptor) Option {
	return optionFunc(func(o *options) {
		o.interceptor = i
	})
}

// WithConsole sets the management console that holds the handles of the interception engine. Default is
// intercept.DefaultConsole().
func WithConsole(c ManagementConsole) Option {
	return optionFunc(func(o *options) {
		o.console = c
	})
}

// WithStatementLogger replaces the logger that is added to the interception engine.
func WithStatementLogger(l intercept.Logger) Option {
	return optionFunc(func(o *options) {
		o.statementLogger = l
	})
}

// WithMetadataResolver sets how the metadata of a connection source is resolved. Default is ResolveMetadata.
func WithMetadataResolver(r MetadataResolver) Option {
	return optionFunc(func(o *options) {
		o.resolveMetadata = r
	})
}

// WithSanitizer sets how the identity of a connection source is turned into a metric name segment. Default is
// SanitizeMetricSegment.
func WithSanitizer(s Sanitizer) Option {
	return optionFunc(func(o *options) {
		o.sanitize = s
	})
}

// WithInstanceName sets database instance name on statement spans and metrics.
func WithInstanceName(instanceName string) Option {
	return WithDefaultAttributes(dbInstance.String(instanceName))
}

// WithSystem sets database system name on statement spans and metrics.
// See: semconv.DBSystemKey.
func WithSystem(system attribute.KeyValue) Option {
	return WithDefaultAttributes(system)
}

// WithDefaultAttributes will be set to each statement span and metric as default.
func WithDefaultAttributes(attrs ...attribute.KeyValue) Option {
	return optionFunc(func(o *options) {
		o.defaultAttributes = append(o.defaultAttributes, attrs...)
	})
}

// AllowRoot allows creating root spans for statements in absence of existing spans.
func AllowRoot() Option {
	return optionFunc(func(o *options) {
		o.trace.AllowRoot = true
	})
}

// TraceStatementArgs adds the statement arguments to the spans.
func TraceStatementArgs() Option {
	return optionFunc(func(o *options) {
		o.trace.Args = true
	})
}

type optionFunc func(o *options)

func (f optionFunc) applyOptions(o *options) {
	f(o)
}
