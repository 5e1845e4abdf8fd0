package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exposes the application metrics through a Prometheus
// registry.
type PrometheusRecorder struct {
	operations     *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
	exportSize     prometheus.Histogram
}

// NewPrometheus registers the collectors with reg and returns the recorder.
func NewPrometheus(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_builder",
			Name:      "resume_operations_total",
			Help:      "Resume store operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resume_builder",
			Name:      "export_duration_seconds",
			Help:      "Time spent producing a PDF export, including browser startup.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"outcome"}),
		exportSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "resume_builder",
			Name:      "export_size_bytes",
			Help:      "Size of produced PDF documents.",
			Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 8),
		}),
	}
	for _, c := range []prometheus.Collector{r.operations, r.exportDuration, r.exportSize} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) IncResumeOperation(op, outcome string) {
	r.operations.WithLabelValues(op, outcome).Inc()
}

func (r *PrometheusRecorder) ObserveExport(outcome string, duration time.Duration) {
	r.exportDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (r *PrometheusRecorder) ObserveExportSize(bytes int) {
	r.exportSize.Observe(float64(bytes))
}
