package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioDecayApproachesExponentialCurve(t *testing.T) {
	const kcst = 2.0
	const n0 = 5000
	mdl := buildDecayModel(kcst)
	geo := buildWellMixedGeometry(1e-15)
	e, err := newWmdirectFor(mdl, geo, 100)
	require.NoError(t, err)

	require.NoError(t, e.SetCompCount("cyto", 0, n0))
	require.NoError(t, e.Run(0.5))

	expected := n0 * math.Exp(-kcst*0.5)
	got := float64(e.CompCount("cyto", 0))
	assert.InDelta(t, expected, got, expected*0.15+30, "mean-field decay curve n0*exp(-k*t) should hold within stochastic tolerance for large n0")
}

func TestScenarioReversibleEquilibrium(t *testing.T) {
	const kf, kr = 4.0, 1.0
	const total = 2000
	mdl := buildReversibleModel(kf, kr)
	geo := buildWellMixedGeometry(1e-15)
	e, err := newWmdirectFor(mdl, geo, 200)
	require.NoError(t, err)

	require.NoError(t, e.SetCompCount("cyto", 0, total))
	require.NoError(t, e.SetCompCount("cyto", 1, 0))
	require.NoError(t, e.Run(20.0))

	a := float64(e.CompCount("cyto", 0))
	b := float64(e.CompCount("cyto", 1))
	assert.InDelta(t, float64(total), a+b, 1e-6)

	// Equilibrium ratio [B]/[A] = kf/kr.
	ratio := b / a
	assert.InDelta(t, kf/kr, ratio, kf/kr*0.2)
}

func TestScenario1DDiffusionSpreadsFromSource(t *testing.T) {
	mdl := buildDiffusionModel(1e-13)
	geo := buildLinearMeshGeometry(5, 1e-18)
	e, err := newTetexactFor(mdl, geo, 9)
	require.NoError(t, err)

	require.NoError(t, e.SetTetCount(0, 0, 2000))
	require.NoError(t, e.Run(20.0))

	for i := 1; i < 5; i++ {
		assert.Greater(t, e.TetCount(i, 0), uint64(0), "diffusion should have spread molecules to every tet in the chain")
	}
	assert.Less(t, e.TetCount(0, 0), uint64(2000), "the source tet should have lost molecules to diffusion")
}

func TestScenarioClampedBulkSpeciesNeverChanges(t *testing.T) {
	mdl := buildClampedSReacModel(50.0)
	geo := buildWellMixedGeometryWithPatch(1e-15, 1e-12)
	e, err := newWmdirectFor(mdl, geo, 4)
	require.NoError(t, err)

	require.NoError(t, e.SetTetCount(0, 0, 500))
	require.NoError(t, e.SetCompClamped("cyto", 0, true))

	before := e.TetCount(0, 0)
	require.NoError(t, e.Run(10.0))

	assert.Equal(t, before, e.TetCount(0, 0), "a clamped species must never change count despite reactions consuming it")
	assert.Greater(t, e.PatchCount("mem", 1), uint64(0), "the surface reaction should still fire and produce its output species")
}

func TestScenarioInactiveReactionNeverFires(t *testing.T) {
	mdl := buildDecayModel(100.0)
	geo := buildWellMixedGeometry(1e-15)
	e, err := newWmdirectFor(mdl, geo, 6)
	require.NoError(t, err)

	require.NoError(t, e.SetCompCount("cyto", 0, 100))
	e.SetCompReacActive("cyto", 0, false)
	assert.False(t, e.CompReacActive("cyto", 0))
	assert.EqualValues(t, 0, e.A0())

	require.NoError(t, e.Run(1.0))
	assert.EqualValues(t, 100, e.CompCount("cyto", 0), "an inactive reaction must never fire")

	e.SetCompReacActive("cyto", 0, true)
	assert.True(t, e.CompReacActive("cyto", 0))
	assert.Greater(t, e.A0(), 0.0)
}

func TestScenarioTreeInvariantUnderBulkMutation(t *testing.T) {
	mdl := buildReversibleModel(2.0, 3.0)
	geo := buildWellMixedGeometry(1e-15)
	e, err := newWmdirectFor(mdl, geo, 55)
	require.NoError(t, err)

	require.NoError(t, e.SetCompCount("cyto", 0, 400))
	require.NoError(t, e.SetCompCount("cyto", 1, 100))

	a0Direct := e.CompReacA("cyto", 0) + e.CompReacA("cyto", 1)
	assert.InDelta(t, a0Direct, e.A0(), 1e-6, "the scheduler's A0 must equal the sum of every KProc's own rate after a bulk mutation")

	require.NoError(t, e.SetCompCount("cyto", 0, 50))
	a0Direct2 := e.CompReacA("cyto", 0) + e.CompReacA("cyto", 1)
	assert.InDelta(t, a0Direct2, e.A0(), 1e-6)
}
