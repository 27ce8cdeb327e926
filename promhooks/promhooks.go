// Package promhooks counts brewxml events with Prometheus counters.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/brewxml"
)

const namespace = "brewxml"

// Hooks implements brewxml.Hooks. Register once per registry.
type Hooks struct {
	additionsSkipped *prometheus.CounterVec
	recipesSkipped   prometheus.Counter
	fieldFallbacks   *prometheus.CounterVec
	cacheSelfHeal    *prometheus.CounterVec
	cacheRejected    prometheus.Counter
	genErrors        *prometheus.CounterVec
}

var _ brewxml.Hooks = (*Hooks)(nil)

// New creates the counters and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Hooks, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &Hooks{
		additionsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "additions_skipped_total",
			Help:      "Ingredient additions dropped during decode.",
		}, []string{"kind"}),
		recipesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipes_skipped_total",
			Help:      "Recipes dropped during decode.",
		}),
		fieldFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_fallbacks_total",
			Help:      "Leaves that failed coercion and used their default.",
		}, []string{"element", "field"}),
		cacheSelfHeal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "self_heal_total",
			Help:      "Cache entries deleted on read.",
		}, []string{"reason"}),
		cacheRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "set_rejected_total",
			Help:      "Cache writes rejected by the provider.",
		}),
		genErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "gen_errors_total",
			Help:      "Generation store failures.",
		}, []string{"op"}),
	}
	for _, c := range []prometheus.Collector{
		h.additionsSkipped, h.recipesSkipped, h.fieldFallbacks,
		h.cacheSelfHeal, h.cacheRejected, h.genErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) AdditionSkipped(kind string, _, _ int, _ error) {
	h.additionsSkipped.WithLabelValues(kind).Inc()
}

func (h *Hooks) RecipeSkipped(int, string, error) { h.recipesSkipped.Inc() }

func (h *Hooks) FieldFallback(element, field, _ string) {
	h.fieldFallbacks.WithLabelValues(element, field).Inc()
}

func (h *Hooks) CacheSelfHeal(_, reason string) { h.cacheSelfHeal.WithLabelValues(reason).Inc() }
func (h *Hooks) CacheSetRejected(string)        { h.cacheRejected.Inc() }
func (h *Hooks) GenSnapshotError(int, error)    { h.genErrors.WithLabelValues("snapshot").Inc() }
func (h *Hooks) GenBumpError(string, error)     { h.genErrors.WithLabelValues("bump").Inc() }
