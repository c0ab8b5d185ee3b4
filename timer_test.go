package sqlmonitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggest/assertjson"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"

	"go.nhat.io/sqlmonitor"
	"go.nhat.io/sqlmonitor/internal/test/oteltest"
)

func TestMeterTimers(t *testing.T) {
	t.Parallel()

	reader := metricsdk.NewManualReader()
	provider := metricsdk.NewMeterProvider(metricsdk.WithReader(reader))

	timers := sqlmonitor.NewMeterTimers(provider)
	ctx := context.Background()

	timers.RecordTimer(ctx, "getConnection.postgres_localhost_5432_app-alice", 2*time.Millisecond)
	timers.RecordTimer(ctx, "getConnection.postgres_localhost_5432_app-alice", 3*time.Millisecond)
	timers.RecordTimer(ctx, "getConnection", 500*time.Microsecond)

	actual, err := oteltest.CollectMetrics(ctx, reader)
	require.NoError(t, err)

	expected := `[
    {
        "Name": "getConnection{instrumentation.name=go.nhat.io/sqlmonitor}",
        "Sum": 0.5,
        "Count": 1
    },
    {
        "Name": "getConnection.postgres_localhost_5432_app-alice{instrumentation.name=go.nhat.io/sqlmonitor}",
        "Sum": 5,
        "Count": 2
    }
]`

	assertjson.Equal(t, []byte(expected), []byte(actual))
}

func TestMeterTimers_Error(t *testing.T) {
	t.Parallel()

	timers := sqlmonitor.NewMeterTimers(oteltest.NewMeterProviderWithError(errors.New("meter error")))

	assert.NotPanics(t, func() {
		timers.RecordTimer(context.Background(), "getConnection", time.Millisecond)
	})
}

func TestPrometheusTimers(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	timers, err := sqlmonitor.NewPrometheusTimers(reg)
	require.NoError(t, err)

	ctx := context.Background()

	timers.RecordTimer(ctx, "getConnection.postgres_localhost_5432_app-alice", 2*time.Millisecond)
	timers.RecordTimer(ctx, "getConnection.postgres_localhost_5432_app-bob", 3*time.Millisecond)
	timers.RecordTimer(ctx, "getConnection.postgres_localhost_5432_app-bob", 4*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "sqlmonitor_timer_duration_seconds")
	require.NoError(t, err)

	assert.Equal(t, 2, count)

	// The histogram cannot be registered twice.
	_, err = sqlmonitor.NewPrometheusTimers(reg)
	require.Error(t, err)
}

func TestTimerRecorderFunc(t *testing.T) {
	t.Parallel()

	var actual string

	r := sqlmonitor.TimerRecorderFunc(func(_ context.Context, name string, _ time.Duration) {
		actual = name
	})

	r.RecordTimer(context.Background(), "getConnection", time.Second)

	assert.Equal(t, "getConnection", actual)
}
