package spatial

import (
	"math"

	"github.com/plin1112/steps-go/model"
	"github.com/plin1112/steps-go/rng"
)

// DistributeTarget abstracts "a set of weighted elements holding one
// species pool", so DistributeCount serves both Comp/Tet (volume-
// weighted) and Patch/Tri (area-weighted) without duplicating the
// fractional/remainder algorithm from spec §4.2.
type DistributeTarget interface {
	Len() int
	TotalWeight() float64
	// Pick returns the element index whose cumulative-weight interval
	// contains u, in [0,1).
	Pick(u float64) int
	// SeedAdd adds delta directly to element i's count (used for the
	// bulk volume/area-proportional pre-seed pass).
	SeedAdd(i int, delta uint64)
	// Increment adds one molecule to element i's count.
	Increment(i int)
	// WeightAt returns element i's weight (volume or area).
	WeightAt(i int) float64
}

// DistributeCount distributes n molecules of one species across target's
// elements, weighted by volume (Comp) or area (Patch), per spec §4.2.
// Draws come from rngSrc's Uniform01 stream.
func DistributeCount(target DistributeTarget, n float64, rngSrc rng.Source) {
	nInt := math.Floor(n)
	nFrac := n - nInt
	if rngSrc.Uniform01() < nFrac {
		nInt++
	}

	remaining := uint64(nInt)
	tetCount := uint64(target.Len())
	total := target.TotalWeight()

	if remaining >= tetCount && total > 0 {
		var seeded uint64
		for i := 0; i < target.Len(); i++ {
			share := uint64(nInt * target.WeightAt(i) / total)
			target.SeedAdd(i, share)
			seeded += share
		}
		remaining -= seeded
	}

	for remaining > 0 {
		idx := target.Pick(rngSrc.Uniform01())
		target.Increment(idx)
		remaining--
	}
}

// compTarget adapts a Comp to DistributeTarget for one species local
// index within that compartment.
type compTarget struct {
	comp   *Comp
	lookup TetLookup
	lidx   model.LocalIndex
}

// NewCompTarget builds a DistributeTarget over comp's tets for species
// local index lidx.
func NewCompTarget(comp *Comp, lookup TetLookup, lidx model.LocalIndex) DistributeTarget {
	return &compTarget{comp: comp, lookup: lookup, lidx: lidx}
}

func (c *compTarget) Len() int             { return len(c.comp.TetIndices) }
func (c *compTarget) TotalWeight() float64 { return c.comp.Vol(c.lookup) }
func (c *compTarget) WeightAt(i int) float64 {
	return c.lookup.Tet(c.comp.TetIndices[i]).Vol
}
func (c *compTarget) Pick(u float64) int {
	tetIdx := c.comp.PickTetByVol(u, c.lookup)
	for i, idx := range c.comp.TetIndices {
		if idx == tetIdx {
			return i
		}
	}
	return 0
}
func (c *compTarget) SeedAdd(i int, delta uint64) {
	tet := c.lookup.Tet(c.comp.TetIndices[i])
	tet.Pool.SetCount(c.lidx, tet.Pool.Count(c.lidx)+delta)
}
func (c *compTarget) Increment(i int) {
	tet := c.lookup.Tet(c.comp.TetIndices[i])
	tet.Pool.Add(c.lidx, 1)
}

// patchTarget adapts a Patch to DistributeTarget for one species local
// index within that patch's own (surface) pool.
type patchTarget struct {
	patch  *Patch
	lookup TriLookup
	lidx   model.LocalIndex
}

// NewPatchTarget builds a DistributeTarget over patch's tris for species
// local index lidx.
func NewPatchTarget(patch *Patch, lookup TriLookup, lidx model.LocalIndex) DistributeTarget {
	return &patchTarget{patch: patch, lookup: lookup, lidx: lidx}
}

func (p *patchTarget) Len() int             { return len(p.patch.TriIndices) }
func (p *patchTarget) TotalWeight() float64 { return p.patch.Area(p.lookup) }
func (p *patchTarget) WeightAt(i int) float64 {
	return p.lookup.Tri(p.patch.TriIndices[i]).Area
}
func (p *patchTarget) Pick(u float64) int {
	triIdx := p.patch.PickTriByArea(u, p.lookup)
	for i, idx := range p.patch.TriIndices {
		if idx == triIdx {
			return i
		}
	}
	return 0
}
func (p *patchTarget) SeedAdd(i int, delta uint64) {
	tri := p.lookup.Tri(p.patch.TriIndices[i])
	tri.Pool.SetCount(p.lidx, tri.Pool.Count(p.lidx)+delta)
}
func (p *patchTarget) Increment(i int) {
	tri := p.lookup.Tri(p.patch.TriIndices[i])
	tri.Pool.Add(p.lidx, 1)
}
