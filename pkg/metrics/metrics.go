package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry, so several
// instances (tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	tokenRefreshes   *prometheus.CounterVec
}

func New(serviceName, release, commit string) *Metrics {
	ns := strings.ReplaceAll(serviceName, "-", "_")
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	m.upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "reddit_requests_total",
		Help:      "Requests sent to the Reddit API",
	}, []string{"endpoint", "status"})

	m.upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "reddit_request_duration_seconds",
		Help:      "Reddit API request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	m.tokenRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "token_refreshes_total",
		Help:      "OAuth token exchanges by result",
	}, []string{"result"})

	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: ns,
		Name:      "service_info",
		Help:      "Service information",
	}, []string{"release", "commit"})
	info.WithLabelValues(release, commit).Set(1)

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.upstreamRequests,
		m.upstreamDuration,
		m.tokenRefreshes,
		info,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// All recorders below are no-ops on a nil *Metrics.

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpstream records one Reddit call; status 0 means a transport error.
func (m *Metrics) ObserveUpstream(endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.upstreamRequests.WithLabelValues(endpoint, label).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) TokenRefresh(result string) {
	if m == nil {
		return
	}
	m.tokenRefreshes.WithLabelValues(result).Inc()
}
