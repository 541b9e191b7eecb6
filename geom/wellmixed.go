package geom

// WellMixedGeometry backs the wmdirect engine: one Tet per compartment
// (no faces, since a well-mixed compartment has no spatial neighbours)
// and one Tri per patch, optionally bordering the compartments' tets to
// support surface reactions with inner/outer bulk reactants.
type WellMixedGeometry struct {
	tets []TetGeom
	tris []TriGeom
}

// NewWellMixedGeometry creates an empty well-mixed geometry.
func NewWellMixedGeometry() *WellMixedGeometry {
	return &WellMixedGeometry{}
}

// AddCompartment adds one whole-compartment Tet of the given volume and
// returns its tet index.
func (g *WellMixedGeometry) AddCompartment(comp string, vol float64) int {
	idx := len(g.tets)
	g.tets = append(g.tets, TetGeom{
		Comp:    comp,
		Vol:     vol,
		NextTet: [4]int{NoNeighbor, NoNeighbor, NoNeighbor, NoNeighbor},
		NextTri: [4]int{NoNeighbor, NoNeighbor, NoNeighbor, NoNeighbor},
	})
	return idx
}

// AddPatch adds one whole-patch Tri of the given area, bordering the
// given inner/outer compartment tets (NoNeighbor if absent).
func (g *WellMixedGeometry) AddPatch(patch string, area float64, innerTet, outerTet int) int {
	idx := len(g.tris)
	g.tris = append(g.tris, TriGeom{
		Patch:    patch,
		Area:     area,
		InnerTet: innerTet,
		OuterTet: outerTet,
	})
	return idx
}

func (g *WellMixedGeometry) NumTets() int          { return len(g.tets) }
func (g *WellMixedGeometry) NumTris() int          { return len(g.tris) }
func (g *WellMixedGeometry) Tet(i int) TetGeom     { return g.tets[i] }
func (g *WellMixedGeometry) Tri(i int) TriGeom     { return g.tris[i] }
