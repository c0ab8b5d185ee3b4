package oteltest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type metricData struct {
	Name  string `json:"Name"`
	Last  any    `json:"Last,omitempty"`
	Sum   any    `json:"Sum,omitempty"`
	Count any    `json:"Count,omitempty"`
}

// CollectMetrics collects the metrics of the reader and encodes them as a sorted JSON array.
func CollectMetrics(ctx context.Context, r metricsdk.Reader) (string, error) {
	var rm metricdata.ResourceMetrics

	if err := r.Collect(ctx, &rm); err != nil {
		return "", err
	}

	metrics := metricDataFromResourceMetrics(rm)

	if len(metrics) == 0 {
		return "", nil
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Name < metrics[j].Name
	})

	data, err := json.MarshalIndent(metrics, "", "    ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func metricDataFromResourceMetrics(rm metricdata.ResourceMetrics) []metricData {
	metrics := make([]metricData, 0)

	for _, scopedMetrics := range rm.ScopeMetrics {
		for _, scopedMetric := range scopedMetrics.Metrics {
			attrs := []attribute.KeyValue{attribute.String("instrumentation.name", scopedMetrics.Scope.Name)}

			switch smd := scopedMetric.Data.(type) {
			case metricdata.Gauge[int64]:
				metrics = append(metrics, metricDataFromGauge(scopedMetric.Name, smd, attrs)...)

			case metricdata.Gauge[float64]:
				metrics = append(metrics, metricDataFromGauge(scopedMetric.Name, smd, attrs)...)

			case metricdata.Sum[int64]:
				metrics = append(metrics, metricDataFromSum(scopedMetric.Name, smd, attrs)...)

			case metricdata.Sum[float64]:
				metrics = append(metrics, metricDataFromSum(scopedMetric.Name, smd, attrs)...)

			case metricdata.Histogram[int64]:
				metrics = append(metrics, metricDataFromHistogram(scopedMetric.Name, smd, attrs)...)

			case metricdata.Histogram[float64]:
				metrics = append(metrics, metricDataFromHistogram(scopedMetric.Name, smd, attrs)...)
			}
		}
	}

	return metrics
}

func metricDataFromGauge[N int64 | float64](name string, g metricdata.Gauge[N], attrs []attribute.KeyValue) []metricData {
	result := make([]metricData, 0, len(g.DataPoints))

	for _, dp := range g.DataPoints {
		result = append(result, metricData{
			Name: metricDataName(name, attrs, dp.Attributes),
			Last: dp.Value,
		})
	}

	return result
}

func metricDataFromSum[N int64 | float64](name string, g metricdata.Sum[N], attrs []attribute.KeyValue) []metricData {
	result := make([]metricData, 0, len(g.DataPoints))

	for _, dp := range g.DataPoints {
		result = append(result, metricData{
			Name: metricDataName(name, attrs, dp.Attributes),
			Sum:  dp.Value,
		})
	}

	return result
}

func metricDataFromHistogram[N int64 | float64](name string, g metricdata.Histogram[N], attrs []attribute.KeyValue) []metricData {
	result := make([]metricData, 0, len(g.DataPoints))

	for _, dp := range g.DataPoints {
		result = append(result, metricData{
			Name:  metricDataName(name, attrs, dp.Attributes),
			Count: dp.Count,
			Sum:   dp.Sum,
		})
	}

	return result
}

func metricDataName(name string, attrs []attribute.KeyValue, set attribute.Set) string {
	all := make([]attribute.KeyValue, 0, len(attrs)+set.Len())
	all = append(all, attrs...)
	all = append(all, set.ToSlice()...)

	labels := make([]string, len(all))

	for i, attr := range all {
		labels[i] = fmt.Sprintf("%s=%s", attr.Key, attr.Value.Emit())
	}

	return fmt.Sprintf("%s{%s}", name, strings.Join(labels, ","))
}
