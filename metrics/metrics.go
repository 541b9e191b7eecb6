// Package metrics exposes Prometheus collectors for the engine's event
// loop, grounded on Cizor-spacetime-constellation-sim's
// internal/observability.SchedulerCollector registration pattern.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineCollector exposes engine-level Prometheus metrics: the global
// propensity, steps executed, per-KProc extents, and scheduler-tree
// rebuild count.
type EngineCollector struct {
	gatherer prometheus.Gatherer

	A0                prometheus.Gauge
	StepsTotal        prometheus.Counter
	TreeRebuildsTotal prometheus.Counter
	KProcExtent       *prometheus.CounterVec
}

// NewEngineCollector registers engine metrics against reg. A nil
// registerer falls back to prometheus.DefaultRegisterer.
func NewEngineCollector(reg prometheus.Registerer, variant string) (*EngineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	a0 := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "engine_propensity_sum",
		Help:        "Current global propensity sum (A0) of the engine's scheduler.",
		ConstLabels: prometheus.Labels{"variant": variant},
	})
	a0, err := registerGauge(reg, a0, "engine_propensity_sum")
	if err != nil {
		return nil, err
	}

	steps := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "engine_steps_total",
		Help:        "Cumulative number of events applied by the engine.",
		ConstLabels: prometheus.Labels{"variant": variant},
	})
	steps, err = registerCounter(reg, steps, "engine_steps_total")
	if err != nil {
		return nil, err
	}

	rebuilds := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "engine_tree_rebuilds_total",
		Help:        "Cumulative number of full scheduler-tree recomputes.",
		ConstLabels: prometheus.Labels{"variant": variant},
	})
	rebuilds, err = registerCounter(reg, rebuilds, "engine_tree_rebuilds_total")
	if err != nil {
		return nil, err
	}

	extent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "engine_kproc_extent_total",
		Help:        "Cumulative fire count per KProc schedIDX.",
		ConstLabels: prometheus.Labels{"variant": variant},
	}, []string{"sched_idx"})
	if err := reg.Register(extent); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, fmt.Errorf("collector engine_kproc_extent_total already registered with incompatible type")
			}
			extent = existing
		} else {
			return nil, err
		}
	}

	return &EngineCollector{
		gatherer:          gatherer,
		A0:                a0,
		StepsTotal:        steps,
		TreeRebuildsTotal: rebuilds,
		KProcExtent:       extent,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *EngineCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveStep records one applied event: updates A0, increments the
// step counter, and increments the firing KProc's extent counter.
func (c *EngineCollector) ObserveStep(a0 float64, schedIDX int) {
	if c == nil {
		return
	}
	if c.A0 != nil {
		c.A0.Set(a0)
	}
	if c.StepsTotal != nil {
		c.StepsTotal.Inc()
	}
	if c.KProcExtent != nil {
		c.KProcExtent.WithLabelValues(fmt.Sprintf("%d", schedIDX)).Inc()
	}
}

// ObserveTreeRebuild increments the tree-rebuild counter.
func (c *EngineCollector) ObserveTreeRebuild() {
	if c == nil || c.TreeRebuildsTotal == nil {
		return
	}
	c.TreeRebuildsTotal.Inc()
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
