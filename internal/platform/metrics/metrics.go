// Package metrics collects extraction metrics and exposes them for Prometheus
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records extraction runs. It satisfies extract.Recorder
type Collector struct {
	runs     *prometheus.CounterVec
	rows     *prometheus.CounterVec
	lines    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration prometheus.Histogram
	status   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taupe_extractions_total",
			Help: "Completed extraction runs by mode",
		}, []string{"mode"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taupe_rows_total",
			Help: "Classified archive records by category",
		}, []string{"category"}),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taupe_lines_emitted_total",
			Help: "Output lines emitted by mode",
		}, []string{"mode"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taupe_extraction_failures_total",
			Help: "Failed extraction runs by error code",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "taupe_extraction_duration_seconds",
			Help:    "Extraction run duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		status: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taupe_http_responses_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
	}

	reg.MustRegister(c.runs, c.rows, c.lines, c.failures, c.duration, c.status)
	return c
}

// RecordRun counts a finished run and the lines it emitted
func (c *Collector) RecordRun(mode string, lines int) {
	c.runs.WithLabelValues(mode).Inc()
	c.lines.WithLabelValues(mode).Add(float64(lines))
}

// RecordRows adds n classified rows of category
func (c *Collector) RecordRows(category string, n int) {
	if n <= 0 {
		return
	}
	c.rows.WithLabelValues(category).Add(float64(n))
}

// RecordFailure counts a failed run
func (c *Collector) RecordFailure(reason string) {
	c.failures.WithLabelValues(reason).Inc()
}

// RecordDuration observes how long a run took
func (c *Collector) RecordDuration(d time.Duration) {
	c.duration.Observe(d.Seconds())
}

// RecordHTTPStatus counts a response status
func (c *Collector) RecordHTTPStatus(code int) {
	c.status.WithLabelValues(strconv.Itoa(code)).Inc()
}

// Handler returns the scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
