package coherency

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Cache lookups by outcome.",
	},
	[]string{"result"},
)

var cacheInvalidations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "Cache invalidations by prefix and outcome.",
	},
	[]string{"prefix", "result"},
)

var cacheStaleWrites = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "cache",
		Name:      "stale_writes_total",
		Help:      "Loaded values not cached because an invalidation overtook them.",
	},
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
	resultOK    = "ok"
)
