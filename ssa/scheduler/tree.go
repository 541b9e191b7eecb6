// Package scheduler implements the N-ary propensity tree: a hierarchical
// sum of KProc propensities supporting O(log_B N) next-event sampling and
// O(|upd|·log_B N) incremental updates, per spec §4.3.
package scheduler

import (
	"sort"

	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/kproc"
)

// DefaultBranching is the tree's default fan-out B, per Design Note
// "Configurable fan-out" — a tuning knob, not a semantic constant.
const DefaultBranching = 16

// Tree is the hierarchical propensity sum over a fixed set of KProcs.
// Not goroutine-safe: callers must not invoke _getNext/_update
// concurrently with each other or with rate-affecting mutation.
type Tree struct {
	branching int
	kprocs    []kproc.KProc
	levels    [][]float64 // levels[0] is leaf level, one slot per KProc (padded)
	a0        float64
}

// NewTree builds an (unbuilt) tree over branching-factor b for the given
// KProcs. Call Build to allocate levels and Reset to populate them.
func NewTree(b int, kprocs []kproc.KProc) *Tree {
	if b < 2 {
		b = DefaultBranching
	}
	return &Tree{branching: b, kprocs: kprocs}
}

// Branching returns the tree's configured fan-out.
func (t *Tree) Branching() int { return t.branching }

// A0 returns the current global propensity sum.
func (t *Tree) A0() float64 { return t.a0 }

// NumKProcs returns the number of registered KProcs (unpadded).
func (t *Tree) NumKProcs() int { return len(t.kprocs) }

// Build allocates the tree levels, per spec §4.3 `_build`: level 0 has
// one slot per KProc padded to a multiple of B; each higher level has
// ceil(len(prev)/B) slots, until a level has ≤ B slots.
func (t *Tree) Build() {
	size0 := len(t.kprocs)
	if rem := size0 % t.branching; rem != 0 {
		size0 += t.branching - rem
	}
	if size0 == 0 {
		size0 = t.branching
	}
	t.levels = [][]float64{make([]float64, size0)}
	for len(t.levels[len(t.levels)-1]) > t.branching {
		prev := t.levels[len(t.levels)-1]
		next := make([]float64, ceilDiv(len(prev), t.branching))
		t.levels = append(t.levels, next)
	}
	t.Reset()
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Reset fully recomputes every level from each KProc's current Rate(),
// per spec §4.3 `_reset`.
func (t *Tree) Reset() {
	leaf := t.levels[0]
	for i := range leaf {
		leaf[i] = 0
	}
	for _, k := range t.kprocs {
		if !k.Inactive() {
			leaf[k.SchedIDX()] = k.Rate()
		}
	}
	for lvl := 1; lvl < len(t.levels); lvl++ {
		t.recomputeLevel(lvl)
	}
	t.a0 = t.sumTop()
}

func (t *Tree) recomputeLevel(lvl int) {
	prev := t.levels[lvl-1]
	cur := t.levels[lvl]
	for s := range cur {
		var sum float64
		base := s * t.branching
		for i := 0; i < t.branching; i++ {
			idx := base + i
			if idx < len(prev) {
				sum += prev[idx]
			}
		}
		cur[s] = sum
	}
}

func (t *Tree) sumTop() float64 {
	var sum float64
	for _, v := range t.levels[len(t.levels)-1] {
		sum += v
	}
	return sum
}

// GetNext samples the next KProc to fire per spec §4.3 `_getNext`: draws
// one uniform per level and descends from the top, returning the chosen
// schedIDX, or -1 if A0 == 0.
func (t *Tree) GetNext(rngSrc rng.Source) int {
	if t.a0 <= 0 {
		return -1
	}
	cur := 0
	a := t.a0
	for lvl := len(t.levels) - 1; lvl >= 0; lvl-- {
		u := rngSrc.Uniform01()
		selector := u * a
		level := t.levels[lvl]
		base := cur * t.branching
		var cum float64
		chosen := base
		for i := 0; i < t.branching; i++ {
			idx := base + i
			if idx >= len(level) {
				break
			}
			cum += level[idx]
			if cum > selector {
				chosen = idx
				break
			}
			chosen = idx
		}
		a = level[chosen]
		cur = chosen
	}
	return cur
}

// Update recomputes the rate of every dirty schedIDX and percolates the
// changes up the tree, per spec §4.3 `_update`. dirty need not be
// sorted or deduplicated; empty and duplicate indices are handled.
func (t *Tree) Update(dirty []int) {
	if len(dirty) == 0 {
		return
	}
	sorted := append([]int(nil), dirty...)
	sort.Ints(sorted)

	leaf := t.levels[0]
	parents := make(map[int]struct{}, len(sorted))
	var last = -1
	for _, idx := range sorted {
		if idx == last {
			continue
		}
		last = idx
		k := t.kprocs[idx]
		if k.Inactive() {
			leaf[idx] = 0
		} else {
			leaf[idx] = k.Rate()
		}
		parents[idx/t.branching] = struct{}{}
	}

	for lvl := 1; lvl < len(t.levels); lvl++ {
		nextParents := make(map[int]struct{}, len(parents))
		prev := t.levels[lvl-1]
		cur := t.levels[lvl]
		for slot := range parents {
			var sum float64
			base := slot * t.branching
			for i := 0; i < t.branching; i++ {
				idx := base + i
				if idx < len(prev) {
					sum += prev[idx]
				}
			}
			cur[slot] = sum
			nextParents[slot/t.branching] = struct{}{}
		}
		parents = nextParents
	}

	t.a0 = t.sumTop()
}
