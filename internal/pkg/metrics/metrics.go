package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carpool",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carpool",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	// Optimization metrics
	OptimizeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carpool",
		Subsystem: "optimize",
		Name:      "requests_total",
		Help:      "Optimize calls by solve path and outcome",
	}, []string{"path", "outcome"})

	CapacityFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool",
		Subsystem: "optimize",
		Name:      "capacity_fallbacks_total",
		Help:      "Global results discarded for seat-capacity violations",
	})

	UnassignedStudents = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool",
		Subsystem: "optimize",
		Name:      "unassigned_students_total",
		Help:      "Students left unassigned by the greedy partition",
	})

	// Solver gateway metrics
	SolverCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carpool",
		Subsystem: "solver",
		Name:      "calls_total",
		Help:      "Outbound solver calls by scope and status",
	}, []string{"scope", "status"})

	SolverCallDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "carpool",
		Subsystem: "solver",
		Name:      "call_duration_seconds",
		Help:      "Outbound solver call latency in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carpool",
		Subsystem: "solver",
		Name:      "token_refreshes_total",
		Help:      "Access-token refreshes by result",
	}, []string{"result"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
