package oteltest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	testassert "go.nhat.io/sqlmonitor/internal/test/assert"
)

// Suite is a test suite.
type Suite interface {
	Run(t *testing.T, f func(sc SuiteContext))
}

// SuiteContext represents a test suite context.
type SuiteContext interface {
	TracerProvider() trace.TracerProvider
	MeterProvider() metric.MeterProvider
}

type suiteContext struct {
	tracerProvider *tracesdk.TracerProvider
	meterProvider  *metricsdk.MeterProvider
}

// TracerProvider provides access to instrumentation Tracers.
func (s *suiteContext) TracerProvider() trace.TracerProvider {
	return s.tracerProvider
}

// MeterProvider supports named Meter instances.
func (s *suiteContext) MeterProvider() metric.MeterProvider {
	return s.meterProvider
}

// SuiteOption setups the test suite.
type SuiteOption func(c *suiteConfig)

type suiteConfig struct {
	assertTracesFuncs  []func(t assert.TestingT, actual []Span) bool
	assertMetricsFuncs []testassert.Func
}

type suite struct {
	assertTraces  []func(t assert.TestingT, actual []Span) bool
	assertMetrics testassert.Func
}

// Run runs the test with new providers then asserts what they recorded.
func (s *suite) Run(t *testing.T, f func(sc SuiteContext)) {
	t.Helper()

	reader := metricsdk.NewManualReader()
	recorder := tracetest.NewSpanRecorder()

	sc := &suiteContext{
		meterProvider: metricsdk.NewMeterProvider(metricsdk.WithReader(reader)),
		tracerProvider: tracesdk.NewTracerProvider(
			tracesdk.WithSampler(tracesdk.AlwaysSample()),
			tracesdk.WithSpanProcessor(recorder),
		),
	}

	f(sc)

	metrics, err := CollectMetrics(context.Background(), reader)
	handleErr(err)

	s.assertMetrics(t, metrics, "failed to assert metrics, actual:\n%s", metrics)

	spans := make([]Span, 0)

	for _, span := range recorder.Ended() {
		spans = append(spans, spanFromReadOnlySpan(span))
	}

	for _, f := range s.assertTraces {
		if !f(t, spans) {
			break
		}
	}

	ctx := context.Background()

	_ = sc.meterProvider.Shutdown(ctx)  // nolint: errcheck
	_ = sc.tracerProvider.Shutdown(ctx) // nolint: errcheck
}

// New creates a new test suite.
func New(opts ...SuiteOption) Suite {
	cfg := suiteConfig{}

	for _, o := range opts {
		o(&cfg)
	}

	return &suite{
		assertMetrics: chainAsserters(cfg.assertMetricsFuncs...),
		assertTraces:  cfg.assertTracesFuncs,
	}
}

// WithMetricsAsserters sets metrics asserter.
func WithMetricsAsserters(fs ...testassert.Func) SuiteOption {
	return func(c *suiteConfig) {
		c.assertMetricsFuncs = append(c.assertMetricsFuncs, fs...)
	}
}

// MetricsEqualJSON sets metrics asserter.
func MetricsEqualJSON(expect string) SuiteOption {
	return WithMetricsAsserters(testassert.EqualJSON(expect))
}

// MetricsEmpty sets metrics asserter.
func MetricsEmpty() SuiteOption {
	return WithMetricsAsserters(testassert.Empty())
}

// TracesMatch asserts traces by a callback.
func TracesMatch(f func(t assert.TestingT, actual []Span) bool) SuiteOption {
	return func(c *suiteConfig) {
		c.assertTracesFuncs = append(c.assertTracesFuncs, f)
	}
}

// TracesEmpty asserts that no span was ended.
func TracesEmpty() SuiteOption {
	return TracesMatch(func(t assert.TestingT, actual []Span) bool {
		return assert.Empty(t, actual)
	})
}

func handleErr(err error) {
	if err != nil {
		panic(err)
	}
}

func chainAsserters(fs ...testassert.Func) testassert.Func {
	return func(t assert.TestingT, actual string, msgAndArgs ...any) bool {
		for _, f := range fs {
			if !f(t, actual, msgAndArgs...) {
				return false
			}
		}

		return true
	}
}
