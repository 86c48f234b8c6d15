package commands

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var routeTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "routes",
		Name:      "transitions_total",
		Help:      "Route state change attempts by target state and outcome.",
	},
	[]string{"target", "result"},
)
