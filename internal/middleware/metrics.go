package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthEvents counts register/login/logout/protect outcomes.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinelist_auth_events_total",
		Help: "Total number of authentication events by event and outcome",
	}, []string{"event", "outcome"})

	// WatchlistMutations counts successful watchlist writes by operation.
	WatchlistMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinelist_watchlist_mutations_total",
		Help: "Total number of watchlist mutations by operation",
	}, []string{"operation"})

	// RedisErrors counts failed Redis commands.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinelist_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide HTTP metrics collector. It shares the
// default registry with the counters above so /metrics exposes both, and is
// created only once even when several servers are built (tests).
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.NewWithDefaultRegistry(serviceName)
	})
	return prom
}

// MetricsMiddleware records request counts and latencies.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
