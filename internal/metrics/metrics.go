// Package metrics holds the prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labunify_resolutions_total",
		Help: "Term resolutions by the tier that produced the answer.",
	}, []string{"tier"})

	conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labunify_conversions_total",
		Help: "Unit conversions by method and outcome.",
	}, []string{"method", "outcome"})

	graphCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labunify_graph_cache_lookups_total",
		Help: "Conversion graph cache lookups by result.",
	}, []string{"result"})
)

func ObserveResolution(tier string) {
	resolutionsTotal.WithLabelValues(tier).Inc()
}

// ObserveConversion records one conversion; outcome is "ok" or an error kind.
func ObserveConversion(method string, outcome string) {
	conversionsTotal.WithLabelValues(method, outcome).Inc()
}

func ObserveGraphCache(hit bool) {
	if hit {
		graphCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	graphCacheLookups.WithLabelValues("miss").Inc()
}
