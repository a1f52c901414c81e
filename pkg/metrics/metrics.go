package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the service.
type Metrics struct {
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	UpstreamFetches   *prometheus.CounterVec
	RecordsNormalized prometheus.Counter
	QuestionsAnswered prometheus.Counter
	LLMRequestTime    prometheus.Histogram
}

// New registers all metrics against the given registerer. Tests pass a
// fresh prometheus.NewRegistry to avoid duplicate registration panics.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_cache_hits_total",
			Help:      "The total number of schedule cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_cache_misses_total",
			Help:      "The total number of schedule cache misses",
		}),
		UpstreamFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fetches_total",
			Help:      "Upstream schedule fetches by direction and outcome",
		}, []string{"direction", "outcome"}),
		RecordsNormalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_normalized_total",
			Help:      "The total number of raw flight records normalized",
		}),
		QuestionsAnswered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_answered_total",
			Help:      "The total number of questions answered",
		}),
		LLMRequestTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_time_seconds",
			Help:      "Time taken by language model completions",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
