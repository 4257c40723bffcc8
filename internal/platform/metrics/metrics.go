package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nfl_draft"

var (
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Total number of sports data provider calls",
		},
		[]string{"endpoint", "status"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Duration of sports data provider calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ProviderCircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_circuit_open",
			Help:      "1 when the provider circuit breaker is open",
		},
		[]string{"provider"},
	)

	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Total number of ingestion job runs",
		},
		[]string{"job", "status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Duration of ingestion jobs in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"job"},
	)

	RecordsUpsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_upserted_total",
			Help:      "Total number of rows upserted by ingestion jobs",
		},
		[]string{"table"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern and status code",
		},
		[]string{"route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Read cache lookups by result",
		},
		[]string{"result"},
	)
)

func ObserveProviderCall(endpoint, status string, started time.Time) {
	ProviderCallsTotal.WithLabelValues(endpoint, status).Inc()
	ProviderCallDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}

func ObserveJob(job, status string, duration time.Duration) {
	JobRunsTotal.WithLabelValues(job, status).Inc()
	JobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

func ObserveHTTPRequest(route string, code int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func AddUpserted(table string, n int) {
	if n <= 0 {
		return
	}
	RecordsUpsertedTotal.WithLabelValues(table).Add(float64(n))
}

func CacheHit() {
	CacheRequestsTotal.WithLabelValues("hit").Inc()
}

func CacheMiss() {
	CacheRequestsTotal.WithLabelValues("miss").Inc()
}

func SetCircuitOpen(provider string, open bool) {
	v := 0.0
	if open {
		v = 1
	}
	ProviderCircuitState.WithLabelValues(provider).Set(v)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
