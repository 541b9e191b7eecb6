package kproc

import (
	"github.com/plin1112/steps-go/model"
	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/spatial"
)

// LocalSLoc is one surface-reaction reactant/product term, resolved to
// a pool-local species index within its own location's pool (Tri,
// inner Tet, or outer Tet).
type LocalSLoc struct {
	Local    model.LocalIndex
	Count    int
	Location model.ReactantLocation
}

// SReac is a surface reaction hosted on one Tri, with reactants and
// products drawn from up to three pools: the Tri itself, its inner
// Tet, and its outer Tet.
type SReac struct {
	base

	tri       *spatial.Tri
	lookup    spatial.TetLookup
	reactants []LocalSLoc
	products  []LocalSLoc
	kcst      float64
	order     int
}

// NewSReac builds an SReac hosted on tri, resolving inner/outer Tets
// through lookup.
func NewSReac(schedIDX int, tri *spatial.Tri, lookup spatial.TetLookup, reactants, products []LocalSLoc, kcst float64) *SReac {
	order := 0
	for _, r := range reactants {
		order += r.Count
	}
	return &SReac{base: newBase(schedIDX), tri: tri, lookup: lookup, reactants: reactants, products: products, kcst: kcst, order: order}
}

// SetDependencies installs the precomputed dependency set (setupDeps).
func (s *SReac) SetDependencies(deps []int) { s.setDeps(deps) }

// pool resolves the pool backing loc for this SReac's Tri.
func (s *SReac) pool(loc model.ReactantLocation) *spatial.Pool {
	switch loc {
	case model.LocInner:
		return s.lookup.Tet(s.tri.InnerTet).Pool
	case model.LocOuter:
		return s.lookup.Tet(s.tri.OuterTet).Pool
	default:
		return s.tri.Pool
	}
}

// normFactor returns the volume (bulk reactant) or area (surface
// reactant) used to scale the rate constant for one unit of order at
// loc, per spec §4.1 ("rate-constant scaling uses the Tri area for
// surface-only orders and the corresponding Tet volumes for bulk
// reactants").
func (s *SReac) normFactor(loc model.ReactantLocation) float64 {
	switch loc {
	case model.LocInner:
		return s.lookup.Tet(s.tri.InnerTet).Vol
	case model.LocOuter:
		return s.lookup.Tet(s.tri.OuterTet).Vol
	default:
		return s.tri.Area
	}
}

// Rate computes h·c: h is the combinatorial term across all three
// pools, c is kcst divided by one N_A·normFactor term per reactant
// unit beyond the first.
func (s *SReac) Rate() float64 {
	if s.inactive {
		return 0
	}
	hVal := 1.0
	for _, byLoc := range groupByLocation(s.reactants) {
		v, ok := h(s.pool(byLoc.loc), byLoc.entries)
		if !ok {
			return 0
		}
		hVal *= v
	}
	if s.order <= 1 {
		return hVal * s.kcst
	}
	c := s.kcst
	unit := 0
	for _, r := range s.reactants {
		for i := 0; i < r.Count; i++ {
			if unit > 0 {
				c /= avogadro * s.normFactor(r.Location)
			}
			unit++
		}
	}
	return hVal * c
}

// H returns the combinatorial reactant term alone (spec glossary "h"),
// 0 if the reactant threshold is unmet across any location's pool.
func (s *SReac) H() float64 {
	hVal := 1.0
	for _, byLoc := range groupByLocation(s.reactants) {
		v, ok := h(s.pool(byLoc.loc), byLoc.entries)
		if !ok {
			return 0
		}
		hVal *= v
	}
	return hVal
}

// C returns the rate-constant/volume-or-area term alone (spec glossary
// "c"), such that Rate() == H()·C() when active and above threshold.
func (s *SReac) C() float64 {
	if s.order <= 1 {
		return s.kcst
	}
	c := s.kcst
	unit := 0
	for _, r := range s.reactants {
		for i := 0; i < r.Count; i++ {
			if unit > 0 {
				c /= avogadro * s.normFactor(r.Location)
			}
			unit++
		}
	}
	return c
}

// Apply decrements reactants and increments products in their
// respective pools, increments extent, and returns the affected
// schedIDX set.
func (s *SReac) Apply(rngSrc rng.Source) []int {
	for _, entry := range s.reactants {
		s.pool(entry.Location).Add(entry.Local, -int64(entry.Count))
	}
	for _, entry := range s.products {
		s.pool(entry.Location).Add(entry.Local, int64(entry.Count))
	}
	s.extent++
	return s.upd()
}

type locGroup struct {
	loc     model.ReactantLocation
	entries []LocalStoich
}

// groupByLocation buckets SLoc entries by location so h() (defined
// over a single pool) can be applied per-location and combined.
func groupByLocation(entries []LocalSLoc) []locGroup {
	var groups []locGroup
	for _, e := range entries {
		found := false
		for i := range groups {
			if groups[i].loc == e.Location {
				groups[i].entries = append(groups[i].entries, LocalStoich{Local: e.Local, Count: e.Count})
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, locGroup{loc: e.Location, entries: []LocalStoich{{Local: e.Local, Count: e.Count}}})
		}
	}
	return groups
}
