// Package metrics exposes Prometheus counters for the resolver's cache and
// upstream lookup activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smartdns"

var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Resolutions served from the cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Resolutions that required an upstream lookup.",
	})

	Lookups = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Upstream lookups performed.",
	})

	LookupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_errors_total",
		Help:      "Upstream lookups that failed or returned no addresses.",
	})
)
