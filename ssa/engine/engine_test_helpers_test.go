package engine

import (
	"github.com/plin1112/steps-go/geom"
	"github.com/plin1112/steps-go/model"
	"github.com/plin1112/steps-go/ssa/scheduler"
)

// buildDecayModel is a single compartment "cyto" with species A (global 0)
// undergoing A -> nothing at kcst.
func buildDecayModel(kcst float64) *model.StaticModel {
	sm := model.NewStaticModel(1)
	reac := &model.VolumeReaction{GlobalIndex: 0, Reactants: []model.StoichEntry{{Species: 0, Count: 1}}, Kcst: kcst}
	sm.AddCompartment("cyto", []int{0}, []*model.VolumeReaction{reac}, nil)
	return sm
}

// buildReversibleModel is "cyto" with species A (0), B (1), A->B at kf and
// B->A at kr. GlobalIndex is assigned per the reaction's position in the
// compartment's reaction list, matching how model/yaml.go's Build resolves
// reactions.
func buildReversibleModel(kf, kr float64) *model.StaticModel {
	sm := model.NewStaticModel(2)
	fwd := &model.VolumeReaction{GlobalIndex: 0, Reactants: []model.StoichEntry{{Species: 0, Count: 1}}, Products: []model.StoichEntry{{Species: 1, Count: 1}}, Kcst: kf}
	rev := &model.VolumeReaction{GlobalIndex: 1, Reactants: []model.StoichEntry{{Species: 1, Count: 1}}, Products: []model.StoichEntry{{Species: 0, Count: 1}}, Kcst: kr}
	sm.AddCompartment("cyto", []int{0, 1}, []*model.VolumeReaction{fwd, rev}, nil)
	return sm
}

// buildDiffusionModel is a single compartment with one diffusing species,
// no reactions.
func buildDiffusionModel(dcst float64) *model.StaticModel {
	sm := model.NewStaticModel(1)
	diff := &model.DiffusionRule{Species: 0, Dcst: dcst}
	sm.AddCompartment("cyto", []int{0}, nil, []*model.DiffusionRule{diff})
	return sm
}

// buildClampedSReacModel is a "cyto" compartment with species A, a "mem"
// patch with surface species C, and a surface reaction A(inner) -> C
// consuming the inner reactant.
func buildClampedSReacModel(kcst float64) *model.StaticModel {
	sm := model.NewStaticModel(2)
	sm.AddCompartment("cyto", []int{0}, nil, nil)
	sreac := &model.SurfaceReaction{
		Reactants: []model.SLocEntry{{Species: 0, Count: 1, Location: model.LocInner}},
		Products:  []model.SLocEntry{{Species: 1, Count: 1, Location: model.LocSurface}},
		Kcst:      kcst,
	}
	sm.AddPatch("mem", []int{1}, []*model.SurfaceReaction{sreac})
	return sm
}

func buildWellMixedGeometry(vol float64) geom.Geometry {
	g := geom.NewWellMixedGeometry()
	g.AddCompartment("cyto", vol)
	return g
}

func buildWellMixedGeometryWithPatch(vol, area float64) geom.Geometry {
	g := geom.NewWellMixedGeometry()
	cyto := g.AddCompartment("cyto", vol)
	g.AddPatch("mem", area, cyto, geom.NoNeighbor)
	return g
}

// buildLinearMeshGeometry builds n tets in a single compartment, chained
// tet[i] <-> tet[i+1] via faces 0/1, all identical shape.
func buildLinearMeshGeometry(n int, vol float64) geom.Geometry {
	m := geom.NewTetMesh()
	area := [4]float64{1e-12, 1e-12, 1e-12, 1e-12}
	dist := [4]float64{1e-6, 1e-6, 1e-6, 1e-6}
	for i := 0; i < n; i++ {
		m.AddTet("cyto", vol, area, dist)
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			m.SetNextTet(i, 0, i-1)
		}
		if i < n-1 {
			m.SetNextTet(i, 1, i+1)
		}
	}
	return m
}

func newWmdirectFor(mdl model.Model, geo geom.Geometry, seed int64) (*Engine, error) {
	return NewWmdirect(mdl, geo, seed, scheduler.DefaultBranching)
}

func newTetexactFor(mdl model.Model, geo geom.Geometry, seed int64) (*Engine, error) {
	return NewTetexact(mdl, geo, seed, scheduler.DefaultBranching)
}
