package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPricingMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPricingMetrics(reg)
	metrics.ObserveCalculation("calculate", OutcomeSuccess, 250*time.Millisecond)
	metrics.ObserveCalculation("calculate", OutcomeValidation, 10*time.Millisecond)
	metrics.IncDiscountApplied("category")
	metrics.IncDiscountApplied("category")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pricing_calculations_total", map[string]string{"operation": "calculate", "outcome": OutcomeSuccess}); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pricing_calculations_total", map[string]string{"operation": "calculate", "outcome": OutcomeValidation}); err != nil {
		t.Fatalf("fetch validation: %v", err)
	} else if got != 1 {
		t.Fatalf("expected validation=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pricing_discounts_applied_total", map[string]string{"kind": "category"}); err != nil {
		t.Fatalf("fetch discounts: %v", err)
	} else if got != 2 {
		t.Fatalf("expected discounts=2, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "pricing_calculation_duration_seconds", map[string]string{"operation": "calculate"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0.25 {
		t.Fatalf("expected duration sum > 0.25, got %f", got)
	}
}

func TestPricingMetricsNilSafe(t *testing.T) {
	var metrics *PricingMetrics
	metrics.ObserveCalculation("calculate", OutcomeError, time.Second)
	metrics.IncDiscountApplied("customer_group")

	unregistered := NewPricingMetrics(nil)
	unregistered.ObserveCalculation("calculate", OutcomeError, time.Second)
	unregistered.IncDiscountApplied("customer_group")
}

func TestPricingMetricsNormalizesEmptyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPricingMetrics(reg)
	metrics.ObserveCalculation("", "", time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "pricing_calculations_total", map[string]string{"operation": "unknown", "outcome": "unknown"}); err != nil {
		t.Fatalf("fetch unknown: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown=1, got %f", got)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
