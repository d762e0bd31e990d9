package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceMetrics collects the counters each run mode reports.
type ServiceMetrics struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPLatencyMS *prometheus.HistogramVec
	OrdersPlaced  prometheus.Counter
	Transitions   *prometheus.CounterVec
}

func New(service string) *ServiceMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foh",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "foh",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"handler"})
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "foh",
		Subsystem: service,
		Name:      "orders_placed_total",
		Help:      "Orders successfully placed.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foh",
		Subsystem: service,
		Name:      "order_transitions_total",
		Help:      "Applied order status transitions.",
	}, []string{"to"})

	prometheus.MustRegister(requests, latency, placed, transitions)
	return &ServiceMetrics{
		HTTPRequests:  requests,
		HTTPLatencyMS: latency,
		OrdersPlaced:  placed,
		Transitions:   transitions,
	}
}

func Handler() http.Handler { return promhttp.Handler() }

// Middleware records request count and latency for one route.
func (m *ServiceMetrics) Middleware(handler string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		m.HTTPRequests.WithLabelValues(handler, strconv.Itoa(rec.status)).Inc()
		m.HTTPLatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
