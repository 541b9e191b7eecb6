package geom

// TetMesh is an explicit tetrahedral mesh: a caller-assembled adjacency
// list of Tets and boundary Tris backing the tetexact engine. Construction
// is two-phase — add all tets and tris first (SetNextTet/SetNextTri
// require both endpoints to already exist).
type TetMesh struct {
	tets []TetGeom
	tris []TriGeom
}

// NewTetMesh creates an empty mesh.
func NewTetMesh() *TetMesh {
	return &TetMesh{}
}

// AddTet appends a tet with the given compartment, volume, and per-face
// areas/distances, and returns its index. Neighbours default to
// NoNeighbor; wire them with SetNextTet/SetNextTri.
func (m *TetMesh) AddTet(comp string, vol float64, area, dist [4]float64) int {
	idx := len(m.tets)
	m.tets = append(m.tets, TetGeom{
		Comp:    comp,
		Vol:     vol,
		Area:    area,
		Dist:    dist,
		NextTet: [4]int{NoNeighbor, NoNeighbor, NoNeighbor, NoNeighbor},
		NextTri: [4]int{NoNeighbor, NoNeighbor, NoNeighbor, NoNeighbor},
	})
	return idx
}

// AddTri appends a tri with the given patch, area, and inner/outer tet
// indices (NoNeighbor if absent), and returns its index.
func (m *TetMesh) AddTri(patch string, area float64, innerTet, outerTet int) int {
	idx := len(m.tris)
	m.tris = append(m.tris, TriGeom{
		Patch:    patch,
		Area:     area,
		InnerTet: innerTet,
		OuterTet: outerTet,
	})
	return idx
}

// SetNextTet wires face i of tet t to neighbour tet n. Both indices must
// already exist. Cross-compartment neighbours are permitted at the
// geometry level; the engine treats them as absent for diffusion
// purposes (spec §3, §9 Open Question 4).
func (m *TetMesh) SetNextTet(t, i, n int) {
	m.tets[t].NextTet[i] = n
}

// SetNextTri wires face i of tet t to bordering tri n.
func (m *TetMesh) SetNextTri(t, i, n int) {
	m.tets[t].NextTri[i] = n
}

func (m *TetMesh) NumTets() int      { return len(m.tets) }
func (m *TetMesh) NumTris() int      { return len(m.tris) }
func (m *TetMesh) Tet(i int) TetGeom { return m.tets[i] }
func (m *TetMesh) Tri(i int) TriGeom { return m.tris[i] }
