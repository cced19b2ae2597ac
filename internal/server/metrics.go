package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-luach/internal/config"
)

// Metrics collects the Prometheus metrics of the server and of feed rebuilds.
type Metrics struct {
	requests     *prometheus.CounterVec
	rateLimited  prometheus.Counter
	rebuilds     *prometheus.CounterVec
	buildLatency prometheus.Histogram
	feedEvents   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricRequestsTotal,
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{config.LabelRoute, config.LabelStatus}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricRateLimitedTotal,
			Help:      "Requests rejected by the rate limiter.",
		}),
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricFeedRebuilds,
			Help:      "Calendar feed rebuilds by result.",
		}, []string{config.LabelResult}),
		buildLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricFeedBuildSeconds,
			Help:      "Time spent building the calendar feed.",
			Buckets:   prometheus.DefBuckets,
		}),
		feedEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricFeedEvents,
			Help:      "Events in the feed currently served.",
		}),
	}

	reg.MustRegister(
		m.requests,
		m.rateLimited,
		m.rebuilds,
		m.buildLatency,
		m.feedEvents,
	)

	return m
}

// ObserveRebuild records one feed rebuild. events is ignored when err is not nil.
func (m *Metrics) ObserveRebuild(duration time.Duration, events int, err error) {
	m.buildLatency.Observe(duration.Seconds())
	if err != nil {
		m.rebuilds.WithLabelValues(config.ResultError).Inc()
		return
	}
	m.rebuilds.WithLabelValues(config.ResultOK).Inc()
	m.feedEvents.Set(float64(events))
}

// Middleware counts requests by chi route pattern, so that path parameters do not
// create a label per value.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

// MetricsHandler returns the Prometheus scrape handler for gatherer.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
