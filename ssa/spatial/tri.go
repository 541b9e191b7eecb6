package spatial

import "github.com/plin1112/steps-go/geom"

// Tri is one boundary-triangle spatial element hosting surface reactions.
// InnerTet/OuterTet are optional indices into the engine's Tet slice.
type Tri struct {
	Index int
	Patch string

	Area float64

	InnerTet int // NoNeighbor if none
	OuterTet int // NoNeighbor if none

	Pool *Pool

	// KProcs lists the schedIDX of every SReac hosted on this Tri.
	KProcs []int
}

// NewTri builds a Tri from geometry and a fresh pool sized for numLocal
// species on this Tri's own (surface) pool.
func NewTri(index int, g geom.TriGeom, numLocal int) *Tri {
	return &Tri{
		Index:    index,
		Patch:    g.Patch,
		Area:     g.Area,
		InnerTet: g.InnerTet,
		OuterTet: g.OuterTet,
		Pool:     NewPool(numLocal),
	}
}

// HasInnerTet reports whether this Tri borders an inner tet.
func (t *Tri) HasInnerTet() bool { return t.InnerTet != NoNeighbor }

// HasOuterTet reports whether this Tri borders an outer tet.
func (t *Tri) HasOuterTet() bool { return t.OuterTet != NoNeighbor }

// Reset restores the tri's pool to its seeded initial state.
func (t *Tri) Reset() {
	t.Pool.Reset()
}
