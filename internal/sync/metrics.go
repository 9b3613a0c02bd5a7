package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "repowatch",
		Subsystem: "sync",
		Name:      "checks_total",
		Help:      "Synchronization checks by result.",
	}, []string{"result"})

	cacheEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "repowatch",
		Subsystem: "sync",
		Name:      "cache_events_total",
		Help:      "Result cache hits and misses.",
	}, []string{"event"})
)
