package geom

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// GeometryFile is the on-disk geometry description. WellMixed
// (compartment volumes / patch areas) and TetMesh (explicit tet/tri
// records) are mutually exclusive top-level sections; Build picks
// whichever is populated.
type GeometryFile struct {
	WellMixed *WellMixedFile `yaml:"wellMixed,omitempty"`
	TetMesh   *TetMeshFile   `yaml:"tetMesh,omitempty"`
}

// WellMixedFile lists compartment volumes and, optionally, patches that
// name their inner/outer compartments.
type WellMixedFile struct {
	Compartments []struct {
		ID  string  `yaml:"id"`
		Vol float64 `yaml:"vol"`
	} `yaml:"compartments"`
	Patches []struct {
		ID    string  `yaml:"id"`
		Area  float64 `yaml:"area"`
		Inner string  `yaml:"inner"`
		Outer string  `yaml:"outer"`
	} `yaml:"patches"`
}

// TetMeshFile lists explicit tet and tri records with face-index
// adjacency, resolved against each record's position in the file.
type TetMeshFile struct {
	Tets []struct {
		Comp string     `yaml:"comp"`
		Vol  float64    `yaml:"vol"`
		Area [4]float64 `yaml:"area"`
		Dist [4]float64 `yaml:"dist"`
		Next [4]int     `yaml:"next"` // tet index, -1 if none
		Tri  [4]int     `yaml:"tri"`  // tri index, -1 if none
	} `yaml:"tets"`
	Tris []struct {
		Patch string  `yaml:"patch"`
		Area  float64 `yaml:"area"`
		Inner int     `yaml:"inner"` // tet index, -1 if none
		Outer int     `yaml:"outer"` // tet index, -1 if none
	} `yaml:"tris"`
}

// LoadGeometryFile reads and parses a geometry YAML document.
func LoadGeometryFile(path string) (*GeometryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading geometry file %s", path)
	}
	var gf GeometryFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, errors.Wrapf(err, "parsing geometry file %s", path)
	}
	return &gf, nil
}

// Build constructs the concrete Geometry the file describes.
func (gf *GeometryFile) Build() (Geometry, error) {
	switch {
	case gf.WellMixed != nil:
		g := NewWellMixedGeometry()
		compTet := make(map[string]int, len(gf.WellMixed.Compartments))
		for _, c := range gf.WellMixed.Compartments {
			compTet[c.ID] = g.AddCompartment(c.ID, c.Vol)
		}
		for _, p := range gf.WellMixed.Patches {
			inner, outer := NoNeighbor, NoNeighbor
			if p.Inner != "" {
				inner = compTet[p.Inner]
			}
			if p.Outer != "" {
				outer = compTet[p.Outer]
			}
			g.AddPatch(p.ID, p.Area, inner, outer)
		}
		return g, nil
	case gf.TetMesh != nil:
		g := NewTetMesh()
		for _, t := range gf.TetMesh.Tets {
			g.AddTet(t.Comp, t.Vol, t.Area, t.Dist)
		}
		for _, tr := range gf.TetMesh.Tris {
			g.AddTri(tr.Patch, tr.Area, tr.Inner, tr.Outer)
		}
		for i, t := range gf.TetMesh.Tets {
			for face := 0; face < 4; face++ {
				g.SetNextTet(i, face, t.Next[face])
				g.SetNextTri(i, face, t.Tri[face])
			}
		}
		return g, nil
	default:
		return nil, errors.New("geometry file specifies neither wellMixed nor tetMesh")
	}
}
