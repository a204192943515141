package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for inbound HTTP requests and trust
// score computations.
type Collector struct {
	registry            *prometheus.Registry
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	computationDuration *prometheus.HistogramVec
	computationTotal    *prometheus.CounterVec
}

// Computation outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// NewCollector constructs a collector with default histograms/counters.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "verilink",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "verilink",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	computationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "verilink",
		Subsystem: "trust",
		Name:      "computation_duration_seconds",
		Help:      "Latency distribution for trust score computations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	computationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "verilink",
		Subsystem: "trust",
		Name:      "computations_total",
		Help:      "Total number of trust score computations.",
	}, []string{"outcome"})

	collectors := []prometheus.Collector{requestDuration, requestTotal, computationDuration, computationTotal}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:            registry,
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		computationDuration: computationDuration,
		computationTotal:    computationTotal,
	}, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
func (c *Collector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// ObserveComputation records one trust score computation.
func (c *Collector) ObserveComputation(outcome string, duration time.Duration) {
	c.computationTotal.WithLabelValues(outcome).Inc()
	c.computationDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
