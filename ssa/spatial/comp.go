package spatial

// TetLookup resolves a Tet by its engine-owned index. The engine
// implements this over its canonical Tet slice; Comp never stores Tet
// pointers directly, only indices, per the no-ownership-cycles design.
type TetLookup interface {
	Tet(idx int) *Tet
}

// Comp aggregates the Tets that realize one compartment. For the
// well-mixed engine a Comp owns exactly one Tet (geom.WellMixedGeometry
// produces one whole-compartment tet); for the spatial engine it owns
// every Tet the mesh assigns to it.
type Comp struct {
	ID         string
	TetIndices []int
}

// NewComp creates a Comp over the given tet indices.
func NewComp(id string, tetIndices []int) *Comp {
	return &Comp{ID: id, TetIndices: tetIndices}
}

// Vol returns the sum of this compartment's tet volumes.
func (c *Comp) Vol(lookup TetLookup) float64 {
	var total float64
	for _, idx := range c.TetIndices {
		total += lookup.Tet(idx).Vol
	}
	return total
}

// PickTetByVol returns the tet index whose cumulative-volume fraction
// interval contains u (u in [0,1)), per spec §4.2.
func (c *Comp) PickTetByVol(u float64, lookup TetLookup) int {
	total := c.Vol(lookup)
	if total <= 0 || len(c.TetIndices) == 0 {
		if len(c.TetIndices) > 0 {
			return c.TetIndices[0]
		}
		return NoNeighbor
	}
	target := u * total
	var cum float64
	for _, idx := range c.TetIndices {
		cum += lookup.Tet(idx).Vol
		if cum > target {
			return idx
		}
	}
	return c.TetIndices[len(c.TetIndices)-1]
}

// Reset restores the pool counts and flags of every tet in the
// compartment to their seeded values (zero unless Pool.Seed was called),
// per spec §4.2.
func (c *Comp) Reset(lookup TetLookup) {
	for _, idx := range c.TetIndices {
		lookup.Tet(idx).Reset()
	}
}
