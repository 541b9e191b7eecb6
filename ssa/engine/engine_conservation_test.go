package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineReversibleReactionConservesTotalMolecules(t *testing.T) {
	mdl := buildReversibleModel(5.0, 3.0)
	geo := buildWellMixedGeometry(1e-15)
	e, err := newWmdirectFor(mdl, geo, 42)
	require.NoError(t, err)

	require.NoError(t, e.SetCompCount("cyto", 0, 200))
	require.NoError(t, e.SetCompCount("cyto", 1, 0))

	total0 := e.CompCount("cyto", 0) + e.CompCount("cyto", 1)
	require.EqualValues(t, 200, total0)

	require.NoError(t, e.Run(1.0))

	total1 := e.CompCount("cyto", 0) + e.CompCount("cyto", 1)
	assert.EqualValues(t, total0, total1, "A<->B reversible reaction must conserve total molecule count")
}

func TestEngineDiffusionConservesTotalMolecules(t *testing.T) {
	mdl := buildDiffusionModel(1e-12)
	geo := buildLinearMeshGeometry(4, 1e-18)
	e, err := newTetexactFor(mdl, geo, 7)
	require.NoError(t, err)

	require.NoError(t, e.SetTetCount(0, 0, 1000))

	var total0 uint64
	for i := 0; i < 4; i++ {
		total0 += e.TetCount(i, 0)
	}
	require.EqualValues(t, 1000, total0)

	require.NoError(t, e.Run(1e-3))

	var total1 uint64
	for i := 0; i < 4; i++ {
		total1 += e.TetCount(i, 0)
	}
	assert.EqualValues(t, total0, total1, "diffusion must conserve total molecule count across the mesh")
}
