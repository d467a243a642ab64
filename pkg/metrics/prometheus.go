package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	unitsTotal    *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	retriesTotal  prometheus.Counter
	unitDuration  prometheus.Histogram
	batchDuration prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		unitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bluebatch_units_total",
				Help: "Total number of processed units by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bluebatch_errors_total",
				Help: "Total number of unit errors by kind",
			},
			[]string{"kind"},
		),
		retriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bluebatch_retries_total",
				Help: "Total number of retry attempts across all units",
			},
		),
		unitDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bluebatch_unit_duration_seconds",
				Help:    "Duration of one unit's processing in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		batchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bluebatch_batch_duration_seconds",
				Help:    "Duration of a whole batch run in seconds",
				Buckets: []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
			},
		),
	}
}

// RecordUnit records a finished unit by outcome.
func (r *Recorder) RecordUnit(outcome string) {
	r.unitsTotal.WithLabelValues(outcome).Inc()
}

// RecordError records a unit error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordRetry records one retry attempt.
func (r *Recorder) RecordRetry() {
	r.retriesTotal.Inc()
}

// RecordUnitDuration records one unit's processing latency in seconds.
func (r *Recorder) RecordUnitDuration(seconds float64) {
	r.unitDuration.Observe(seconds)
}

// RecordBatchDuration records a run's wall-clock duration in seconds.
func (r *Recorder) RecordBatchDuration(seconds float64) {
	r.batchDuration.Observe(seconds)
}
