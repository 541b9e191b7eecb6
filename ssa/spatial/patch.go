package spatial

// TriLookup resolves a Tri by its engine-owned index.
type TriLookup interface {
	Tri(idx int) *Tri
}

// Patch aggregates the Tris that realize one 2D surface patch.
type Patch struct {
	ID         string
	TriIndices []int
}

// NewPatch creates a Patch over the given tri indices.
func NewPatch(id string, triIndices []int) *Patch {
	return &Patch{ID: id, TriIndices: triIndices}
}

// Area returns the sum of this patch's tri areas.
func (p *Patch) Area(lookup TriLookup) float64 {
	var total float64
	for _, idx := range p.TriIndices {
		total += lookup.Tri(idx).Area
	}
	return total
}

// PickTriByArea returns the tri index whose cumulative-area fraction
// interval contains u, the Tri analogue of Comp.PickTetByVol.
func (p *Patch) PickTriByArea(u float64, lookup TriLookup) int {
	total := p.Area(lookup)
	if total <= 0 || len(p.TriIndices) == 0 {
		if len(p.TriIndices) > 0 {
			return p.TriIndices[0]
		}
		return NoNeighbor
	}
	target := u * total
	var cum float64
	for _, idx := range p.TriIndices {
		cum += lookup.Tri(idx).Area
		if cum > target {
			return idx
		}
	}
	return p.TriIndices[len(p.TriIndices)-1]
}

// Reset restores the pool counts and flags of every tri in the patch to
// their seeded values (zero unless Pool.Seed was called).
func (p *Patch) Reset(lookup TriLookup) {
	for _, idx := range p.TriIndices {
		lookup.Tri(idx).Reset()
	}
}
