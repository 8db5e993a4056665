package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanshika/degrees/internal/search"
)

// Collector owns a private registry with search and HTTP metrics.
type Collector struct {
	registry *prometheus.Registry

	searches        *prometheus.CounterVec
	searchDuration  *prometheus.HistogramVec
	searchExpanded  *prometheus.HistogramVec
	searchDegrees   prometheus.Histogram
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	datasetSize     *prometheus.GaugeVec
}

// New registers every metric, plus Go runtime and process collectors, on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degrees_searches_total",
			Help: "Path searches by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "degrees_search_duration_seconds",
			Help:    "Path search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"strategy"}),
		searchExpanded: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "degrees_search_expanded_nodes",
			Help:    "Frontier nodes expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"strategy"}),
		searchDegrees: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_path_length",
			Help:    "Degrees of separation of found paths",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degrees_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "degrees_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		datasetSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "degrees_dataset_entities",
			Help: "Entities loaded into the store by kind",
		}, []string{"kind"}),
	}
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveSearch implements search.Observer.
func (c *Collector) ObserveSearch(stats search.Stats) {
	strategy := stats.Strategy.String()
	c.searches.WithLabelValues(strategy, string(stats.Outcome)).Inc()
	c.searchDuration.WithLabelValues(strategy).Observe(stats.Elapsed.Seconds())
	c.searchExpanded.WithLabelValues(strategy).Observe(float64(stats.Expanded))
	if stats.Outcome == search.OutcomeFound || stats.Outcome == search.OutcomeSame {
		c.searchDegrees.Observe(float64(stats.Degrees))
	}
}

// SetDataset records the loaded dataset size.
func (c *Collector) SetDataset(people, works, participations int) {
	c.datasetSize.WithLabelValues("people").Set(float64(people))
	c.datasetSize.WithLabelValues("movies").Set(float64(works))
	c.datasetSize.WithLabelValues("participations").Set(float64(participations))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware counts requests by their chi route pattern to keep label cardinality bounded.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		c.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		c.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
