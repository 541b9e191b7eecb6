// Package spatial holds the spatial state carriers — Tet, Tri, Comp, and
// Patch — and the species-pool primitive they share. Cross-references
// between elements (Tet-Tet, Tet-Tri) are indices into engine-owned
// slices, not pointers, per the design note "Back-references without
// ownership cycles": the engine is the sole owner of storage, and every
// cross-reference is a stable index.
package spatial

import "github.com/plin1112/steps-go/model"

// PoolFlags is a per-species flag bitset. Clamped is the only flag the
// spec requires ("at least CLAMPED"); the type leaves room for more.
type PoolFlags uint32

// Clamped marks a species pool as held fixed: apply() computes deltas as
// if the write succeeded, but Pool.Add is a no-op for a clamped index.
const Clamped PoolFlags = 1 << 0

// Pool is a per-element (Tet or Tri), per-local-species-index count and
// flag vector. Counts are unsigned per spec §3; Add takes a signed delta
// and the caller is responsible for never driving a count negative
// (reactant thresholds in KProc.rate() prevent this in practice).
type Pool struct {
	counts        []uint64
	flags         []PoolFlags
	initialCounts []uint64
	initialFlags  []PoolFlags
}

// NewPool creates a pool with n local species slots, all zero.
func NewPool(n int) *Pool {
	return &Pool{
		counts:        make([]uint64, n),
		flags:         make([]PoolFlags, n),
		initialCounts: make([]uint64, n),
		initialFlags:  make([]PoolFlags, n),
	}
}

// Len returns the number of local species slots.
func (p *Pool) Len() int { return len(p.counts) }

// Count returns the current count at local index l, 0 for an undefined
// index (spec §6: unmapped species return a defined zero).
func (p *Pool) Count(l model.LocalIndex) uint64 {
	if !l.Defined() {
		return 0
	}
	return p.counts[l]
}

// Seed sets both the current and the initial (reset target) count and
// flags for local index l. Called during engine setup, before the first
// run; never called from inside the event loop.
func (p *Pool) Seed(l model.LocalIndex, count uint64, flags PoolFlags) {
	if !l.Defined() {
		return
	}
	p.counts[l] = count
	p.flags[l] = flags
	p.initialCounts[l] = count
	p.initialFlags[l] = flags
}

// SetCount overwrites the current count at l without touching the reset
// target. Used by the engine's mutate operations (e.g. setCompCount).
func (p *Pool) SetCount(l model.LocalIndex, count uint64) {
	if !l.Defined() {
		return
	}
	p.counts[l] = count
}

// Add applies a signed delta to the count at l. No-op for an undefined
// index or a clamped one (invariant 4: clamped counts never change).
func (p *Pool) Add(l model.LocalIndex, delta int64) {
	if !l.Defined() || p.Clamped(l) {
		return
	}
	p.counts[l] = uint64(int64(p.counts[l]) + delta)
}

// Clamped reports whether local index l is held fixed.
func (p *Pool) Clamped(l model.LocalIndex) bool {
	if !l.Defined() {
		return false
	}
	return p.flags[l]&Clamped != 0
}

// SetClamped sets or clears the Clamped flag at l. Does not itself touch
// the reset target — a caller wanting the new clamped state to survive
// reset must Seed again.
func (p *Pool) SetClamped(l model.LocalIndex, b bool) {
	if !l.Defined() {
		return
	}
	if b {
		p.flags[l] |= Clamped
	} else {
		p.flags[l] &^= Clamped
	}
}

// Reset restores counts and flags to the values last passed to Seed.
func (p *Pool) Reset() {
	copy(p.counts, p.initialCounts)
	copy(p.flags, p.initialFlags)
}
