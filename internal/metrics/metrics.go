package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binding_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "binding_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	// BindingsDrawn counts drawn bindings by strategy: vector, raster or placeholder.
	BindingsDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binding_render_bindings_total",
			Help: "Total number of bindings drawn, by drawing strategy",
		},
		[]string{"strategy"},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "binding_render_duration_seconds",
			Help:    "Time spent rasterizing and encoding a scene",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)

	RenderCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binding_render_cache_lookups_total",
			Help: "Render cache lookups by result: hit, miss or error",
		},
		[]string{"result"},
	)

	ProfileOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binding_profile_operations_total",
			Help: "Profile store operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// Middleware records request counts and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		httpRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
