package kproc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plin1112/steps-go/geom"
	"github.com/plin1112/steps-go/model"
	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/spatial"
)

func newTestTri(area float64, inner, outer int, numLocal int) *spatial.Tri {
	return spatial.NewTri(0, geom.TriGeom{Patch: "mem", Area: area, InnerTet: inner, OuterTet: outer}, numLocal)
}

func TestSReacSurfaceOnlyFirstOrder(t *testing.T) {
	tri := newTestTri(1e-12, spatial.NoNeighbor, spatial.NoNeighbor, 1)
	tri.Pool.Seed(0, 50, 0)
	lookup := lookupSlice{}
	s := NewSReac(0, tri, lookup, []LocalSLoc{{Local: 0, Count: 1, Location: model.LocSurface}}, nil, 2.0)

	assert.InDelta(t, 100.0, s.Rate(), 1e-9)
	assert.InDelta(t, 50.0, s.H(), 1e-9)
	assert.InDelta(t, 2.0, s.C(), 1e-9)
}

func TestSReacMixedInnerSurfaceOrder(t *testing.T) {
	tets := newLinearChain([]string{"cyto", "cyto"}, 1e-18)
	tri := newTestTri(1e-12, 0, spatial.NoNeighbor, 1)
	tets[0].Pool.Seed(0, 20, 0) // inner reactant
	tri.Pool.Seed(0, 5, 0)      // surface reactant

	s := NewSReac(0, tri, tets, []LocalSLoc{
		{Local: 0, Count: 1, Location: model.LocInner},
		{Local: 0, Count: 1, Location: model.LocSurface},
	}, nil, 3.0)

	hVal := 20.0 * 5.0
	c := 3.0 / (avogadro * tri.Area) // one factor beyond the first unit
	assert.InDelta(t, hVal, s.H(), 1e-6)
	assert.InDelta(t, c, s.C(), c*1e-6)
	assert.InDelta(t, hVal*c, s.Rate(), hVal*c*1e-6)
}

func TestSReacRequiresInnerTetOrOuterTetPresence(t *testing.T) {
	// Constructing an SReac referencing LocInner when the Tri has no
	// inner Tet is the engine build layer's responsibility to reject
	// (resolveSLoc); at the kproc layer, pool() would nil-deref, so this
	// test documents that invariant lives one layer up.
	tri := newTestTri(1e-12, spatial.NoNeighbor, spatial.NoNeighbor, 1)
	lookup := lookupSlice{}
	s := NewSReac(0, tri, lookup, []LocalSLoc{{Local: 0, Count: 1, Location: model.LocSurface}}, nil, 1.0)
	assert.NotPanics(t, func() { s.Rate() })
}

func TestSReacApplyUpdatesAllLocationPools(t *testing.T) {
	tets := newLinearChain([]string{"cyto", "cyto"}, 1e-18)
	tri := newTestTri(1e-12, 0, spatial.NoNeighbor, 1)
	tets[0].Pool.Seed(0, 20, 0)
	tri.Pool.Seed(0, 5, 0)

	s := NewSReac(0, tri, tets,
		[]LocalSLoc{{Local: 0, Count: 1, Location: model.LocInner}},
		[]LocalSLoc{{Local: 0, Count: 1, Location: model.LocSurface}},
		1.0)

	s.Apply(rng.NewMathRand(1))

	assert.EqualValues(t, 19, tets[0].Pool.Count(0))
	assert.EqualValues(t, 6, tri.Pool.Count(0))
	assert.EqualValues(t, 1, s.Extent())
}

func TestSReacInactiveHasZeroRate(t *testing.T) {
	tri := newTestTri(1e-12, spatial.NoNeighbor, spatial.NoNeighbor, 1)
	tri.Pool.Seed(0, 50, 0)
	lookup := lookupSlice{}
	s := NewSReac(0, tri, lookup, []LocalSLoc{{Local: 0, Count: 1, Location: model.LocSurface}}, nil, 2.0)
	s.SetActive(false)
	assert.Equal(t, 0.0, s.Rate())
}

func TestGroupByLocationBucketsCorrectly(t *testing.T) {
	entries := []LocalSLoc{
		{Local: 0, Count: 1, Location: model.LocSurface},
		{Local: 1, Count: 2, Location: model.LocInner},
		{Local: 2, Count: 1, Location: model.LocSurface},
	}
	groups := groupByLocation(entries)
	assert.Len(t, groups, 2)
	total := 0
	for _, g := range groups {
		total += len(g.entries)
	}
	assert.Equal(t, 3, total)
}
