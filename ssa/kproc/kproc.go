// Package kproc implements the kinetic-process variants — Reac, Diff,
// SReac — as a small closed set of KProc implementations, per the design
// note "Polymorphic KProc": a tagged sum expressed as interface
// implementations, not a deep virtual hierarchy.
package kproc

import "github.com/plin1112/steps-go/rng"

// avogadro is the Avogadro constant, used to convert molecule counts to
// concentrations when scaling volume/surface reaction rate constants.
const avogadro = 6.02214076e23

// KProc is one stochastic event generator: one reaction, diffusion, or
// surface reaction instance in one spatial element.
type KProc interface {
	// SchedIDX is this KProc's stable index in the scheduler's tree.
	SchedIDX() int
	// Rate is the current propensity. Zero if inactive or any reactant
	// threshold is unmet.
	Rate() float64
	// Apply fires the event: mutates pools, increments extent, and
	// returns the set of schedIDX whose rate may now have changed
	// (this KProc's own index plus its precomputed dependency set).
	Apply(rngSrc rng.Source) []int
	// Dependencies lists every other KProc's schedIDX whose rate() may
	// change when this KProc fires. Immutable after setupDeps.
	Dependencies() []int
	// UpdVecSize upper-bounds the size of the slice Apply returns.
	UpdVecSize() int
	SetActive(active bool)
	Inactive() bool
	Extent() uint64
	ResetExtent()
}

// base holds the fields and behavior common to every KProc variant.
type base struct {
	schedIDX int
	deps     []int
	inactive bool
	extent   uint64
}

func newBase(schedIDX int) base {
	return base{schedIDX: schedIDX}
}

func (b *base) SchedIDX() int { return b.schedIDX }

// setDeps is called once by setupDeps; deps must not include schedIDX
// itself (Apply adds that separately).
func (b *base) setDeps(deps []int) { b.deps = deps }

func (b *base) Dependencies() []int { return b.deps }

func (b *base) UpdVecSize() int { return len(b.deps) + 1 }

func (b *base) SetActive(active bool) { b.inactive = !active }

func (b *base) Inactive() bool { return b.inactive }

func (b *base) Extent() uint64 { return b.extent }

func (b *base) ResetExtent() { b.extent = 0 }

// upd builds the schedIDX set Apply returns: this KProc plus its
// dependencies, per spec §4.1's "union of its own dependency set with
// those of collaborating elements" (self is included because firing
// always invalidates the firing KProc's own rate).
func (b *base) upd() []int {
	out := make([]int, 0, len(b.deps)+1)
	out = append(out, b.schedIDX)
	out = append(out, b.deps...)
	return out
}
