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

const namespace = "cheapflyer"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})

	DealsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "deals",
		Name:      "generated_total",
		Help:      "Total flight deals synthesized by origin source",
	}, []string{"source"})

	HotDeals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "deals",
		Name:      "hot_total",
		Help:      "Total synthesized deals flagged hot",
	})

	Quotes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quotes",
		Name:      "requests_total",
		Help:      "Total quote searches by result",
	}, []string{"result"})

	NearestLookups = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "geo",
		Name:      "nearest_lookups_total",
		Help:      "Total nearest-airport lookups",
	})

	NearestDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "geo",
		Name:      "nearest_distance_km",
		Help:      "Distance from the caller to the resolved airport",
		Buckets:   []float64{5, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	QuoteLogFlushed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quote_log",
		Name:      "flushed_total",
		Help:      "Total quote log entries written to the database",
	})

	QuoteLogDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quote_log",
		Name:      "dropped_total",
		Help:      "Total quote log entries dropped because the recorder was full",
	})

	QuoteLogFlushErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quote_log",
		Name:      "flush_errors_total",
		Help:      "Total failed quote log batch inserts",
	})

	QuoteLogPruned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quote_log",
		Name:      "pruned_total",
		Help:      "Total quote log entries removed by retention",
	})

	TaskRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scheduler",
		Name:      "task_runs_total",
		Help:      "Total scheduled task runs by outcome",
	}, []string{"task", "outcome"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus exposition.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
