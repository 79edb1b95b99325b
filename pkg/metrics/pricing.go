package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for pricing_calculations_total.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

// PricingMetrics records calculation volume, latency, and applied discounts.
// A nil *PricingMetrics is valid and records nothing.
type PricingMetrics struct {
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	discounts    *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_calculations_total",
		Help: "Price calculations by operation and outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_calculation_duration_seconds",
		Help:    "Duration of pricing operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	discounts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_discounts_applied_total",
		Help: "Discounts applied to calculated prices by kind.",
	}, []string{"kind"})
	reg.MustRegister(calculations, duration, discounts)
	return &PricingMetrics{
		calculations: calculations,
		duration:     duration,
		discounts:    discounts,
	}
}

// ObserveCalculation counts one pricing operation and records its duration.
func (m *PricingMetrics) ObserveCalculation(operation, outcome string, duration time.Duration) {
	if m == nil || m.calculations == nil {
		return
	}
	operation = normalizeLabel(operation)
	m.calculations.WithLabelValues(operation, normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncDiscountApplied counts a discount that changed a price.
func (m *PricingMetrics) IncDiscountApplied(kind string) {
	if m == nil || m.discounts == nil {
		return
	}
	m.discounts.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
