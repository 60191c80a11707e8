package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records extraction pipeline metrics for Prometheus scraping.
type Collector struct {
	fetchSuccess prometheus.Counter
	fetchFail    prometheus.Counter
	fetchLatency prometheus.Histogram
	recordsAdded *prometheus.CounterVec
	emptyRuns    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetchSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shelfscout_fetch_success_total",
			Help: "Total page fetches that produced a snapshot.",
		}),
		fetchFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shelfscout_fetch_fail_total",
			Help: "Total page fetches where both navigation attempts failed.",
		}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shelfscout_fetch_latency_seconds",
			Help:    "Navigation latency per fetch, including fallback attempts.",
			Buckets: prometheus.DefBuckets,
		}),
		recordsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shelfscout_records_appended_total",
			Help: "Records appended to the extraction store, by kind.",
		}, []string{"kind"}),
		emptyRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shelfscout_empty_runs_total",
			Help: "Extraction runs that produced zero records.",
		}),
	}

	reg.MustRegister(
		c.fetchSuccess,
		c.fetchFail,
		c.fetchLatency,
		c.recordsAdded,
		c.emptyRuns,
	)
	return c
}

// RecordFetch records the outcome and latency of one fetch.
func (c *Collector) RecordFetch(ok bool, d time.Duration) {
	if ok {
		c.fetchSuccess.Inc()
	} else {
		c.fetchFail.Inc()
	}
	c.fetchLatency.Observe(d.Seconds())
}

// RecordBatch records the size of one appended batch. kind is "review"
// or "product".
func (c *Collector) RecordBatch(kind string, n int) {
	if n == 0 {
		c.emptyRuns.Inc()
		return
	}
	c.recordsAdded.WithLabelValues(kind).Add(float64(n))
}
