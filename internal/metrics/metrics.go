// Package metrics provides the centralized Prometheus metrics registry for
// the odds pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	APIRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddsfeed",
		Name:      "api_requests_total",
		Help:      "Total number of physical requests to the odds aggregator",
	})
	APIFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddsfeed",
		Name:      "api_failures_total",
		Help:      "Total number of failed odds aggregator fetches",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddsfeed",
		Name:      "cache_hits_total",
		Help:      "Total number of odds responses served from cache",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddsfeed",
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses requiring a fetch",
	})
	RecordsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddsfeed",
		Name:      "records_skipped_total",
		Help:      "Total number of malformed provider records skipped",
	})
	SnapshotsArchivedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddsfeed",
		Name:      "snapshots_archived_total",
		Help:      "Total number of odds snapshots written to the archive",
	})
)

// Gauge metrics
var (
	ProviderQuotaRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "oddsfeed",
		Name:      "provider_quota_remaining",
		Help:      "Requests remaining on the aggregator plan, from the last response",
	})
	GamesFetched = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "oddsfeed",
		Name:      "games_fetched",
		Help:      "Number of games returned by the most recent batch fetch",
	})
)

// Histogram metrics
var (
	RequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "oddsfeed",
		Name:      "request_duration_seconds",
		Help:      "Odds aggregator request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// Register registers all metrics with the package registry. Safe to call
// multiple times.
func Register() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			APIRequestsTotal,
			APIFailuresTotal,
			CacheHitsTotal,
			CacheMissesTotal,
			RecordsSkippedTotal,
			SnapshotsArchivedTotal,
			ProviderQuotaRemaining,
			GamesFetched,
			RequestDuration,
		)
	})
	return registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Register(), promhttp.HandlerOpts{})
}

// Serve starts a metrics listener on the given address and path. Blocks
// until the server exits.
func Serve(addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, Handler())
	return http.ListenAndServe(addr, mux)
}
