package spatial

import "github.com/plin1112/steps-go/geom"

// NoNeighbor mirrors geom.NoNeighbor for readability at call sites that
// only import spatial.
const NoNeighbor = geom.NoNeighbor

// Tet is one tetrahedral spatial element: pools, geometry, and up to four
// neighbour references. Neighbour references are indices into the
// engine's Tet/Tri slices (see package doc), not pointers.
type Tet struct {
	Index int
	Comp  string

	Vol  float64
	Area [4]float64
	Dist [4]float64

	NextTet [4]int // Tet index, NoNeighbor if none
	NextTri [4]int // Tri index, NoNeighbor if none

	Pool *Pool

	// KProcs lists the schedIDX of every KProc hosted on this Tet
	// (reactions and diffusions), assigned by the engine at setup.
	KProcs []int
}

// NewTet builds a Tet from geometry and a fresh pool sized for numLocal
// species in this Tet's compartment.
func NewTet(index int, g geom.TetGeom, numLocal int) *Tet {
	return &Tet{
		Index:   index,
		Comp:    g.Comp,
		Vol:     g.Vol,
		Area:    g.Area,
		Dist:    g.Dist,
		NextTet: g.NextTet,
		NextTri: g.NextTri,
		Pool:    NewPool(numLocal),
	}
}

// HasNeighborTet reports whether face i has a neighbour tet index at all
// (geometry-level only — does not check compartment membership; callers
// computing diffusion eligibility must additionally compare Comp against
// the neighbour's Comp, since cross-compartment adjacency is severed for
// diffusion purposes per spec §3/§9).
func (t *Tet) HasNeighborTet(i int) bool {
	return t.NextTet[i] != NoNeighbor
}

// HasNeighborTri reports whether face i borders a triangle.
func (t *Tet) HasNeighborTri(i int) bool {
	return t.NextTri[i] != NoNeighbor
}

// Reset restores the tet's pool to its seeded initial state. Geometry
// and connectivity are immutable and untouched.
func (t *Tet) Reset() {
	t.Pool.Reset()
}
