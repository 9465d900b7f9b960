package textprep

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the pattern cache and the
// preparation pipeline. A nil *Metrics records nothing.
type Metrics struct {
	PatternCacheHits   prometheus.Counter
	PatternCacheMisses prometheus.Counter
	PatternCacheResets prometheus.Counter
	DocumentsPrepared  *prometheus.CounterVec
	StageErrors        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PatternCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "textprep",
				Name:      "pattern_cache_hits_total",
				Help:      "Pattern lookups served from the cache.",
			},
		),
		PatternCacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "textprep",
				Name:      "pattern_cache_misses_total",
				Help:      "Pattern lookups that had to compile.",
			},
		),
		PatternCacheResets: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "textprep",
				Name:      "pattern_cache_resets_total",
				Help:      "Times the pattern cache overflowed and was emptied.",
			},
		),
		DocumentsPrepared: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "textprep",
				Name:      "documents_prepared_total",
				Help:      "Documents that went through the pipeline, by kind.",
			},
			[]string{"kind"},
		),
		StageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "textprep",
				Name:      "prepare_stage_errors_total",
				Help:      "Pipeline stages that failed, by stage.",
			},
			[]string{"stage"},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.PatternCacheHits,
			m.PatternCacheMisses,
			m.PatternCacheResets,
			m.DocumentsPrepared,
			m.StageErrors,
		)
	}
	return m
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.PatternCacheHits.Inc()
	}
}

func (m *Metrics) cacheMiss() {
	if m != nil {
		m.PatternCacheMisses.Inc()
	}
}

func (m *Metrics) cacheReset() {
	if m != nil {
		m.PatternCacheResets.Inc()
	}
}

func (m *Metrics) documentPrepared(kind Kind) {
	if m != nil {
		m.DocumentsPrepared.WithLabelValues(kind.String()).Inc()
	}
}

func (m *Metrics) stageFailed(op Op) {
	if m != nil {
		m.StageErrors.WithLabelValues(op.String()).Inc()
	}
}
