package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Burkhanovich/article-site/internal/models"
)

const metricsNamespace = "article_site"

// MetricsService owns a private Prometheus registry for the editorial API and keeps
// running totals that back the admin metrics snapshot. A nil *MetricsService is a no-op.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration   *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	cacheLatency      prometheus.Histogram
	transitions       *prometheus.CounterVec
	operationFailures *prometheus.CounterVec
	deliveries        *prometheus.CounterVec

	cacheHits      atomic.Uint64
	cacheMisses    atomic.Uint64
	requests       atomic.Uint64
	requestNanos   atomic.Uint64
	transitionsN   atomic.Uint64
	delivered      atomic.Uint64
	deliveryFailed atomic.Uint64
}

// NewMetricsService registers the editorial collectors plus the Go runtime and process
// collectors.
func NewMetricsService() *MetricsService {
	m := &MetricsService{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route template and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "lookup_duration_seconds",
			Help:      "Snapshot cache lookup latency.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "workflow",
			Name:      "transitions_total",
			Help:      "Accepted article status transitions.",
		}, []string{"from", "to"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "workflow",
			Name:      "operation_failures_total",
			Help:      "Workflow operations refused by a business rule.",
		}, []string{"operation", "code"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "notifications",
			Name:      "deliveries_total",
			Help:      "Notification delivery attempts by channel and result.",
		}, []string{"channel", "result"}),
	}

	m.registry.MustRegister(
		m.requestDuration, m.cacheLookups, m.cacheLatency,
		m.transitions, m.operationFailures, m.deliveries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request. route is the gin route template.
func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
	m.requests.Add(1)
	m.requestNanos.Add(uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a snapshot cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
		m.cacheHits.Add(1)
	} else {
		m.cacheMisses.Add(1)
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RecordTransition counts an accepted status change.
func (m *MetricsService) RecordTransition(from, to models.ArticleStatus) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
	m.transitionsN.Add(1)
}

// RecordOperationFailure counts a workflow operation rejected by a business rule.
func (m *MetricsService) RecordOperationFailure(operation, code string) {
	if m == nil {
		return
	}
	m.operationFailures.WithLabelValues(operation, code).Inc()
}

// RecordDelivery counts one notification delivery attempt on channel (email, realtime).
func (m *MetricsService) RecordDelivery(channel string, ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if ok {
		m.delivered.Add(1)
	} else {
		result = "failure"
		m.deliveryFailed.Add(1)
	}
	m.deliveries.WithLabelValues(channel, result).Inc()
}

// Snapshot returns the running totals for the admin API.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits, misses := m.cacheHits.Load(), m.cacheMisses.Load()
	requests := m.requests.Load()

	snap := models.SystemMetrics{
		CacheHits:           hits,
		CacheMisses:         misses,
		RequestsTotal:       requests,
		TransitionsTotal:    m.transitionsN.Load(),
		NotificationsSent:   m.delivered.Load(),
		NotificationsFailed: m.deliveryFailed.Load(),
		Goroutines:          runtime.NumGoroutine(),
		GeneratedAt:         time.Now().UTC(),
	}
	if lookups := hits + misses; lookups > 0 {
		snap.CacheHitRatio = float64(hits) / float64(lookups)
	}
	if requests > 0 {
		snap.AverageRequestDurationMs = float64(m.requestNanos.Load()) / float64(requests) / float64(time.Millisecond)
	}
	return snap
}
