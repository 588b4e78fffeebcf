package providers

import (
	"sid/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncRunsTotal(outcome string)
	AddPagesFetched(n int)
	AddRecords(action string, n int)
	ObserveRunDuration(duration time.Duration)
	SetRowsTotal(count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	runsTotal       *prometheus.CounterVec
	pagesFetched    prometheus.Counter
	recordsTotal    *prometheus.CounterVec
	runDuration     prometheus.Histogram
	rowsTotal       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRunsTotal(outcome string) {
	m.runsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) AddPagesFetched(n int) {
	m.pagesFetched.Add(float64(n))
}

func (m *MetricsProvider) AddRecords(action string, n int) {
	m.recordsTotal.WithLabelValues(action).Add(float64(n))
}

func (m *MetricsProvider) ObserveRunDuration(duration time.Duration) {
	m.runDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRowsTotal(count int) {
	m.rowsTotal.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sid_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sid_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sid_import_runs_total",
			Help: "Total number of import runs by outcome",
		}, []string{"outcome"}),

		pagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_pages_fetched_total",
			Help: "Total number of upstream pages fetched",
		}),

		recordsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sid_records_total",
			Help: "Total number of records by reconciliation action",
		}, []string{"action"}),

		runDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sid_import_run_duration_seconds",
			Help:    "Import run duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		rowsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sid_data_rows_total",
			Help: "Current number of rows in the data table",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncRunsTotal(_ string)                            {}
func (n *noopMetrics) AddPagesFetched(_ int)                            {}
func (n *noopMetrics) AddRecords(_ string, _ int)                       {}
func (n *noopMetrics) ObserveRunDuration(_ time.Duration)               {}
func (n *noopMetrics) SetRowsTotal(_ int)                               {}
