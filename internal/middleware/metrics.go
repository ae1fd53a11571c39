package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SignupsTotal counts successful account creations.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_signups_total",
		Help: "Total number of successful signups",
	})

	// MessagesPosted counts messages created.
	MessagesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_messages_posted_total",
		Help: "Total number of messages posted",
	})

	// LikeToggles counts like toggle operations by resulting state.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_like_toggles_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"state"})

	// FollowChanges counts follow edge mutations by direction.
	FollowChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_follow_changes_total",
		Help: "Total number of follow and unfollow operations",
	}, []string{"direction"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-request HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
