package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"time"
)

const namespace = "pwd_autopsy"

// Breach lookup results.
const (
	LookupFound = "found"
	LookupClean = "clean"
	LookupError = "error"
)

// Collector holds the Prometheus metrics of the autopsy API. Nothing recorded here is derived from the
// password beyond its score and death cause.
type Collector struct {
	registry       *prometheus.Registry
	analyses       *prometheus.CounterVec
	scores         prometheus.Histogram
	breachLookups  *prometheus.CounterVec
	lookupDuration prometheus.Histogram
}

// NewCollector registers the autopsy metrics on registry, a fresh registry is created when nil.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Passwords analysed, by death cause.",
		}, []string{"death_cause"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strength_score",
			Help:      "Distribution of the composite strength score.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		breachLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breach_lookups_total",
			Help:      "Breach range lookups, by result.",
		}, []string{"result"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "breach_lookup_duration_seconds",
			Help:      "Time spent looking up breach counts.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	registry.MustRegister(c.analyses, c.scores, c.breachLookups, c.lookupDuration)
	return c
}

func (c *Collector) RecordAnalysis(deathCause string, score int) {
	c.analyses.WithLabelValues(deathCause).Inc()
	c.scores.Observe(float64(score))
}

// RecordBreachLookup records a finished breach lookup. count is ignored when err is not nil.
func (c *Collector) RecordBreachLookup(count int, err error, duration time.Duration) {
	c.lookupDuration.Observe(duration.Seconds())

	switch {
	case err != nil:
		c.breachLookups.WithLabelValues(LookupError).Inc()
	case count > 0:
		c.breachLookups.WithLabelValues(LookupFound).Inc()
	default:
		c.breachLookups.WithLabelValues(LookupClean).Inc()
	}
}

// Handler exposes the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
