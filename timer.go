package sqlmonitor

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzpuzpuz/xsync/v3"
	"go.opentelemetry.io/otel/metric"
)

// TimerRecorder records durations under dot separated timer names, such as "getConnection.postgres_localhost-alice".
type TimerRecorder interface {
	RecordTimer(ctx context.Context, name string, d time.Duration)
}

// TimerRecorderFunc is an adapter to use an ordinary function as a TimerRecorder.
type TimerRecorderFunc func(ctx context.Context, name string, d time.Duration)

// RecordTimer calls f(ctx, name, d).
func (f TimerRecorderFunc) RecordTimer(ctx context.Context, name string, d time.Duration) {
	f(ctx, name, d)
}

var _ TimerRecorder = (*meterTimers)(nil)

type meterTimers struct {
	meter      metric.Meter
	histograms *xsync.MapOf[string, metric.Float64Histogram]
}

// NewMeterTimers records every timer into its own OpenTelemetry histogram, in milliseconds.
func NewMeterTimers(p metric.MeterProvider) TimerRecorder {
	return &meterTimers{
		meter:      p.Meter(instrumentationName, metric.WithInstrumentationVersion(Version())),
		histograms: xsync.NewMapOf[string, metric.Float64Histogram](),
	}
}

func (t *meterTimers) RecordTimer(ctx context.Context, name string, d time.Duration) {
	h, err := t.histogram(name)
	if err != nil {
		handleErr(err)

		return
	}

	h.Record(ctx, milliseconds(d))
}

func (t *meterTimers) histogram(name string) (metric.Float64Histogram, error) {
	if h, ok := t.histograms.Load(name); ok {
		return h, nil
	}

	h, err := t.meter.Float64Histogram(name,
		metric.WithUnit("ms"),
		metric.WithDescription(`The distribution of durations in milliseconds`),
	)
	if err != nil {
		return nil, err
	}

	actual, _ := t.histograms.LoadOrStore(name, h)

	return actual, nil
}

var _ TimerRecorder = (*prometheusTimers)(nil)

type prometheusTimers struct {
	durations *prometheus.HistogramVec
}

// NewPrometheusTimers records every timer into the sqlmonitor_timer_duration_seconds histogram, labeled by the timer
// name. The histogram is registered into r.
func NewPrometheusTimers(r prometheus.Registerer) (TimerRecorder, error) {
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sqlmonitor",
		Name:      "timer_duration_seconds",
		Help:      "The distribution of durations in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"name"})

	if err := r.Register(durations); err != nil {
		return nil, err
	}

	return &prometheusTimers{durations: durations}, nil
}

func (t *prometheusTimers) RecordTimer(_ context.Context, name string, d time.Duration) {
	t.durations.WithLabelValues(name).Observe(d.Seconds())
}
