// Package geom defines the geometry collaborator (spec §6): the tet/tri
// connectivity and shape data the engine needs to construct KProcs, and
// two concrete implementations — a single-tet-per-compartment well-mixed
// geometry, and an explicit tetrahedral mesh.
package geom

// NoNeighbor is the sentinel index for "no tet/tri here", matching the
// geometry interface's "-1 if none" convention.
const NoNeighbor = -1

// TetGeom is the read-only shape/connectivity data for one tetrahedron.
type TetGeom struct {
	Comp    string
	Vol     float64
	Area    [4]float64 // face areas
	Dist    [4]float64 // centroid-to-neighbour distances
	NextTet [4]int     // neighbour tet index, NoNeighbor if none
	NextTri [4]int     // bordering tri index, NoNeighbor if none
}

// TriGeom is the read-only shape/connectivity data for one triangle.
type TriGeom struct {
	Patch    string
	Area     float64
	InnerTet int // NoNeighbor if none
	OuterTet int // NoNeighbor if none
}

// Geometry is the external geometry collaborator. Implementations are
// read-only after construction (spec §5: "Geometry objects...are
// read-only after setup").
type Geometry interface {
	NumTets() int
	NumTris() int
	Tet(i int) TetGeom
	Tri(i int) TriGeom
}
