package geom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const wellMixedYAML = `
wellMixed:
  compartments:
    - id: cyto
      vol: 1e-15
    - id: extra
      vol: 2e-15
  patches:
    - id: mem
      area: 1e-10
      inner: cyto
      outer: extra
`

func TestLoadGeometryFileWellMixed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(wellMixedYAML), 0o644))

	gf, err := LoadGeometryFile(path)
	require.NoError(t, err)
	g, err := gf.Build()
	require.NoError(t, err)

	require.Equal(t, 2, g.NumTets())
	require.Equal(t, 1, g.NumTris())
	require.Equal(t, "cyto", g.Tet(0).Comp)
	require.Equal(t, 0, g.Tri(0).InnerTet)
	require.Equal(t, 1, g.Tri(0).OuterTet)
}

const tetMeshYAML = `
tetMesh:
  tets:
    - comp: cyto
      vol: 1e-18
      area: [1e-12, 1e-12, 1e-12, 1e-12]
      dist: [1e-6, 1e-6, 1e-6, 1e-6]
      next: [-1, 1, -1, -1]
      tri: [-1, -1, 0, -1]
    - comp: cyto
      vol: 1e-18
      area: [1e-12, 1e-12, 1e-12, 1e-12]
      dist: [1e-6, 1e-6, 1e-6, 1e-6]
      next: [0, -1, -1, -1]
      tri: [-1, -1, -1, -1]
  tris:
    - patch: mem
      area: 1e-12
      inner: 0
      outer: -1
`

func TestLoadGeometryFileTetMesh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tetMeshYAML), 0o644))

	gf, err := LoadGeometryFile(path)
	require.NoError(t, err)
	g, err := gf.Build()
	require.NoError(t, err)

	require.Equal(t, 2, g.NumTets())
	require.Equal(t, 1, g.NumTris())
	require.Equal(t, 1, g.Tet(0).NextTet[1])
	require.Equal(t, 0, g.Tet(1).NextTet[0])
	require.Equal(t, 0, g.Tet(0).NextTri[2])
}

func TestLoadGeometryFileEmptyErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	gf, err := LoadGeometryFile(path)
	require.NoError(t, err)
	_, err = gf.Build()
	require.Error(t, err)
}
