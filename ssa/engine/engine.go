// Package engine assembles Comp/Patch/Tet/Tri/KProc topology from a
// model.Model and geom.Geometry into the shared Engine facade, and drives
// reset/run/step, per spec §4.4.
package engine

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/plin1112/steps-go/internal/simerr"
	"github.com/plin1112/steps-go/metrics"
	"github.com/plin1112/steps-go/model"
	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/kproc"
	"github.com/plin1112/steps-go/ssa/scheduler"
	"github.com/plin1112/steps-go/ssa/spatial"
	"github.com/plin1112/steps-go/trace"
)

// Engine is the shared facade for both the wmdirect and tetexact
// variants. It is single-threaded and NOT goroutine-safe, per spec §5:
// Run and Step must never be called concurrently with each other or
// with any query/mutate method.
type Engine struct {
	variant string
	state   State

	mdl model.Model

	tets []*spatial.Tet
	tris []*spatial.Tri

	comps   map[string]*spatial.Comp
	compIDs []string
	patches map[string]*spatial.Patch
	patchIDs []string

	kprocs []kproc.KProc
	tree   *scheduler.Tree

	partitionedRNG *rng.PartitionedRNG

	t      float64
	nsteps uint64

	// compReacIdx[comp][localReacIdx] lists the schedIDX of every Reac
	// instantiating that reaction (one per hosting Tet).
	compReacIdx map[string]map[model.LocalIndex][]int
	compDiffIdx map[string]map[model.LocalIndex][]int
	patchSReacIdx map[string]map[model.LocalIndex][]int

	collector *metrics.EngineCollector
	tracer    *trace.RunTrace
}

// SetMetrics attaches a Prometheus collector; subsequent Run/Step/Reset
// calls report through it. Pass nil to detach.
func (e *Engine) SetMetrics(c *metrics.EngineCollector) { e.collector = c }

// SetTrace attaches an event tracer; subsequent Run/Step calls record
// through it. Pass nil to detach.
func (e *Engine) SetTrace(t *trace.RunTrace) { e.tracer = t }

// Name returns the fixed solver identity string, per STEPS's
// getSolverName (SUPPLEMENTED FEATURES).
func (e *Engine) Name() string { return e.variant }

// Description returns a short human-readable solver description.
func (e *Engine) Description() string {
	switch e.variant {
	case "wmdirect":
		return "well-mixed Gillespie direct-method SSA"
	case "tetexact":
		return "spatial tetrahedral-mesh Gillespie direct-method SSA"
	default:
		return "unknown"
	}
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State { return e.state }

// Time returns the current simulation time.
func (e *Engine) Time() float64 { return e.t }

// NSteps returns the number of events applied since the last reset,
// per STEPS's getNSteps (SUPPLEMENTED FEATURES).
func (e *Engine) NSteps() uint64 { return e.nsteps }

// A0 returns the current global propensity sum.
func (e *Engine) A0() float64 { return e.tree.A0() }

// Tet implements spatial.TetLookup over the engine's owned slice.
func (e *Engine) Tet(idx int) *spatial.Tet {
	if idx < 0 || idx >= len(e.tets) {
		return nil
	}
	return e.tets[idx]
}

// Tri implements spatial.TriLookup over the engine's owned slice.
func (e *Engine) Tri(idx int) *spatial.Tri {
	if idx < 0 || idx >= len(e.tris) {
		return nil
	}
	return e.tris[idx]
}

func (e *Engine) requireState(want State) error {
	if e.state == Destroyed {
		return simerr.NewArgumentError("engine is destroyed")
	}
	if want == Built && e.state != Built && e.state != Paused {
		return simerr.NewArgumentError("engine has not been built")
	}
	return nil
}

// Reset restores every pool to its seeded initial state, rebuilds the
// scheduler from scratch, and zeroes the clock and step counter, per
// spec §4.4 `reset()`.
func (e *Engine) Reset() error {
	if e.state == Destroyed {
		return simerr.NewArgumentError("engine is destroyed")
	}
	for _, tet := range e.tets {
		tet.Reset()
	}
	for _, tri := range e.tris {
		tri.Reset()
	}
	for _, k := range e.kprocs {
		k.ResetExtent()
	}
	e.tree.Reset()
	e.collector.ObserveTreeRebuild()
	e.t = 0
	e.nsteps = 0
	e.state = Built
	return nil
}

// Destroy releases the engine; any subsequent call to Run/Step/Reset
// fails with ArgumentError.
func (e *Engine) Destroy() {
	e.state = Destroyed
}

// Run advances the simulation until t_end, per spec §4.4 `run(t_end)`.
func (e *Engine) Run(tEnd float64) error {
	if err := e.requireState(Built); err != nil {
		return err
	}
	if tEnd < e.t {
		return simerr.NewArgumentError("endtime before current time")
	}
	e.state = Running
	defer func() {
		if e.state == Running {
			e.state = Paused
		}
	}()

	schedSrc := e.partitionedRNG.ForSubsystem(rng.SubsystemScheduler)

	for e.t < tEnd {
		a0 := e.tree.A0()
		if a0 <= 0 {
			e.t = tEnd
			break
		}
		dt := schedSrc.Exponential(a0)
		if e.t+dt > tEnd {
			e.t = tEnd
			break
		}
		idx := e.tree.GetNext(schedSrc)
		if idx < 0 || idx >= len(e.kprocs) {
			panic(errors.WithStack(simerr.NewInvariantViolation("scheduler selected an out-of-range schedIDX")))
		}
		k := e.kprocs[idx]
		upd := k.Apply(schedSrc)
		e.tree.Update(upd)
		e.t += dt
		e.nsteps++
		e.collector.ObserveStep(e.tree.A0(), idx)
		e.tracer.RecordEvent(trace.EventRecord{Step: e.nsteps, Time: e.t, Dt: dt, SchedIDX: idx, A0: e.tree.A0(), UpdSize: len(upd)})
	}
	logrus.Infof("engine %s: run to t=%.6g, nsteps=%d", e.variant, e.t, e.nsteps)
	return nil
}

// Step performs exactly one event with no endtime constraint, per spec
// §4.4 `step()`. No-op if A0 == 0.
func (e *Engine) Step() error {
	if err := e.requireState(Built); err != nil {
		return err
	}
	a0 := e.tree.A0()
	if a0 <= 0 {
		return nil
	}
	schedSrc := e.partitionedRNG.ForSubsystem(rng.SubsystemScheduler)
	dt := schedSrc.Exponential(a0)
	idx := e.tree.GetNext(schedSrc)
	if idx < 0 || idx >= len(e.kprocs) {
		panic(errors.WithStack(simerr.NewInvariantViolation("scheduler selected an out-of-range schedIDX")))
	}
	k := e.kprocs[idx]
	upd := k.Apply(schedSrc)
	e.tree.Update(upd)
	e.t += dt
	e.nsteps++
	e.collector.ObserveStep(e.tree.A0(), idx)
	e.tracer.RecordEvent(trace.EventRecord{Step: e.nsteps, Time: e.t, Dt: dt, SchedIDX: idx, A0: e.tree.A0(), UpdSize: len(upd)})
	return nil
}

// SetCompVol is explicitly unsupported per spec §6, carried through as
// a NotImplemented stub (SUPPLEMENTED FEATURES).
func (e *Engine) SetCompVol(comp string, vol float64) error {
	return simerr.NewNotImplemented("setCompVol")
}

// SetPatchArea is explicitly unsupported per spec §6.
func (e *Engine) SetPatchArea(patch string, area float64) error {
	return simerr.NewNotImplemented("setPatchArea")
}

// SaveState is a terminal no-op in this version, per spec §4.4: the
// on-disk format is undefined and must not be invented (Open Question 3).
func (e *Engine) SaveState(path string) error {
	return simerr.NewNotImplemented("saveState")
}
