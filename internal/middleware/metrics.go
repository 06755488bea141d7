package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthFailures counts rejected requests by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_auth_failures_total",
		Help: "Total number of rejected requests by reason",
	}, []string{"reason"})

	// UploadsTotal counts accepted and rejected uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_uploads_total",
		Help: "Total number of upload attempts by outcome",
	}, []string{"outcome"})

	// UploadBytes records the size distribution of accepted uploads.
	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inkwell_upload_bytes",
		Help:    "Size in bytes of accepted uploads",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheMisses counts cache-aside misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_misses_total",
		Help: "Total number of cache-aside misses by key prefix",
	}, []string{"prefix"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP metrics middleware for the service.
// The underlying collectors register against the default registry, so the
// instance is created once per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
