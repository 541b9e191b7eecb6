package engine

import (
	"sort"

	"github.com/plin1112/steps-go/geom"
	"github.com/plin1112/steps-go/internal/simerr"
	"github.com/plin1112/steps-go/model"
	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/kproc"
	"github.com/plin1112/steps-go/ssa/scheduler"
	"github.com/plin1112/steps-go/ssa/spatial"
)

// poolKey identifies one spatial element's pool, the unit dependency
// tracking is keyed on: every KProc that reads a (poolKey, local
// species) pair depends on every KProc that writes it.
type poolKey struct {
	tri bool
	idx int
}

// NewWmdirect builds the well-mixed engine variant over geo (expected
// to be a geom.WellMixedGeometry: one no-face Tet per compartment, one
// no-neighbour Tri per patch).
func NewWmdirect(mdl model.Model, geo geom.Geometry, seed int64, branching int) (*Engine, error) {
	return build(mdl, geo, seed, branching, "wmdirect")
}

// NewTetexact builds the spatial engine variant over a tetrahedral
// mesh geometry.
func NewTetexact(mdl model.Model, geo geom.Geometry, seed int64, branching int) (*Engine, error) {
	return build(mdl, geo, seed, branching, "tetexact")
}

func build(mdl model.Model, geo geom.Geometry, seed int64, branching int, variant string) (*Engine, error) {
	if mdl == nil || geo == nil {
		return nil, simerr.NewArgumentError("model and geometry are required")
	}

	e := &Engine{
		variant:        variant,
		mdl:            mdl,
		partitionedRNG: rng.NewPartitionedRNG(seed),
		comps:          make(map[string]*spatial.Comp),
		patches:        make(map[string]*spatial.Patch),
		compReacIdx:    make(map[string]map[model.LocalIndex][]int),
		compDiffIdx:    make(map[string]map[model.LocalIndex][]int),
		patchSReacIdx:  make(map[string]map[model.LocalIndex][]int),
	}

	e.buildTetsAndTris(geo, mdl)
	e.buildCompsAndPatches()

	reads := make(map[poolKey]map[model.LocalIndex][]int)
	writes := make(map[poolKey]map[model.LocalIndex][]int)
	addRead := func(k poolKey, l model.LocalIndex, schedIDX int) {
		if reads[k] == nil {
			reads[k] = make(map[model.LocalIndex][]int)
		}
		reads[k][l] = append(reads[k][l], schedIDX)
	}
	addWrite := func(k poolKey, l model.LocalIndex, schedIDX int) {
		if writes[k] == nil {
			writes[k] = make(map[model.LocalIndex][]int)
		}
		writes[k][l] = append(writes[k][l], schedIDX)
	}

	e.buildReacsAndDiffs(mdl, addRead, addWrite)
	e.buildSReacs(mdl, addRead, addWrite)

	e.setupDeps(reads, writes)

	e.tree = scheduler.NewTree(branching, e.kprocs)
	e.tree.Build()
	e.state = Built
	return e, nil
}

func (e *Engine) buildTetsAndTris(geo geom.Geometry, mdl model.Model) {
	for i := 0; i < geo.NumTets(); i++ {
		g := geo.Tet(i)
		e.tets = append(e.tets, spatial.NewTet(i, g, mdl.NumLocalSpecies(g.Comp)))
	}
	for i := 0; i < geo.NumTris(); i++ {
		g := geo.Tri(i)
		e.tris = append(e.tris, spatial.NewTri(i, g, mdl.NumLocalPatchSpecies(g.Patch)))
	}
}

func (e *Engine) buildCompsAndPatches() {
	tetsByComp := make(map[string][]int)
	for _, t := range e.tets {
		tetsByComp[t.Comp] = append(tetsByComp[t.Comp], t.Index)
	}
	for _, t := range e.tets {
		if _, ok := e.comps[t.Comp]; !ok {
			e.comps[t.Comp] = spatial.NewComp(t.Comp, tetsByComp[t.Comp])
			e.compIDs = append(e.compIDs, t.Comp)
		}
	}
	trisByPatch := make(map[string][]int)
	for _, tr := range e.tris {
		trisByPatch[tr.Patch] = append(trisByPatch[tr.Patch], tr.Index)
	}
	for _, tr := range e.tris {
		if _, ok := e.patches[tr.Patch]; !ok {
			e.patches[tr.Patch] = spatial.NewPatch(tr.Patch, trisByPatch[tr.Patch])
			e.patchIDs = append(e.patchIDs, tr.Patch)
		}
	}
}

func (e *Engine) nextSchedIDX() int { return len(e.kprocs) }

func (e *Engine) buildReacsAndDiffs(mdl model.Model, addRead, addWrite func(poolKey, model.LocalIndex, int)) {
	for _, compID := range e.compIDs {
		comp := e.comps[compID]
		for _, tetIdx := range comp.TetIndices {
			tet := e.tets[tetIdx]
			key := poolKey{idx: tetIdx}

			for lidx, r := range mdl.CompReactions(compID) {
				reactants := resolveStoich(mdl, compID, r.Reactants)
				products := resolveStoich(mdl, compID, r.Products)
				schedIDX := e.nextSchedIDX()
				rc := kproc.NewReac(schedIDX, tet, reactants, products, r.Kcst)
				e.kprocs = append(e.kprocs, rc)
				tet.KProcs = append(tet.KProcs, schedIDX)
				e.compReacIdx[compID] = ensureMap(e.compReacIdx[compID])
				e.compReacIdx[compID][model.LocalIndex(lidx)] = append(e.compReacIdx[compID][model.LocalIndex(lidx)], schedIDX)
				for _, entry := range reactants {
					addRead(key, entry.Local, schedIDX)
					addWrite(key, entry.Local, schedIDX)
				}
				for _, entry := range products {
					addWrite(key, entry.Local, schedIDX)
				}
			}

			for lidx, d := range mdl.CompDiffusions(compID) {
				species := mdl.SpecG2L(compID, d.Species)
				if !species.Defined() {
					continue
				}
				schedIDX := e.nextSchedIDX()
				dk := kproc.NewDiff(schedIDX, tet, e, species, d.Dcst)
				e.kprocs = append(e.kprocs, dk)
				tet.KProcs = append(tet.KProcs, schedIDX)
				e.compDiffIdx[compID] = ensureMap(e.compDiffIdx[compID])
				e.compDiffIdx[compID][model.LocalIndex(lidx)] = append(e.compDiffIdx[compID][model.LocalIndex(lidx)], schedIDX)

				addRead(key, species, schedIDX)
				addWrite(key, species, schedIDX)
				for face := 0; face < 4; face++ {
					if !tet.HasNeighborTet(face) {
						continue
					}
					neighbor := e.tets[tet.NextTet[face]]
					if neighbor.Comp != tet.Comp {
						continue
					}
					addWrite(poolKey{idx: neighbor.Index}, species, schedIDX)
				}
			}
		}
	}
}

func (e *Engine) buildSReacs(mdl model.Model, addRead, addWrite func(poolKey, model.LocalIndex, int)) {
	for _, patchID := range e.patchIDs {
		patch := e.patches[patchID]
		for _, triIdx := range patch.TriIndices {
			tri := e.tris[triIdx]

			for lidx, sr := range mdl.PatchSReactions(patchID) {
				reactants, ok := e.resolveSLoc(mdl, patchID, tri, sr.Reactants)
				if !ok {
					continue
				}
				products, ok := e.resolveSLoc(mdl, patchID, tri, sr.Products)
				if !ok {
					continue
				}
				schedIDX := e.nextSchedIDX()
				sk := kproc.NewSReac(schedIDX, tri, e, reactants, products, sr.Kcst)
				e.kprocs = append(e.kprocs, sk)
				tri.KProcs = append(tri.KProcs, schedIDX)
				e.patchSReacIdx[patchID] = ensureMap(e.patchSReacIdx[patchID])
				e.patchSReacIdx[patchID][model.LocalIndex(lidx)] = append(e.patchSReacIdx[patchID][model.LocalIndex(lidx)], schedIDX)

				for _, entry := range reactants {
					pk := e.entryPoolKey(tri, entry.Location)
					addRead(pk, entry.Local, schedIDX)
					addWrite(pk, entry.Local, schedIDX)
				}
				for _, entry := range products {
					pk := e.entryPoolKey(tri, entry.Location)
					addWrite(pk, entry.Local, schedIDX)
				}
			}
		}
	}
}

func (e *Engine) entryPoolKey(tri *spatial.Tri, loc model.ReactantLocation) poolKey {
	switch loc {
	case model.LocInner:
		return poolKey{idx: tri.InnerTet}
	case model.LocOuter:
		return poolKey{idx: tri.OuterTet}
	default:
		return poolKey{tri: true, idx: tri.Index}
	}
}

func resolveStoich(mdl model.Model, comp string, entries []model.StoichEntry) []kproc.LocalStoich {
	out := make([]kproc.LocalStoich, 0, len(entries))
	for _, e := range entries {
		l := mdl.SpecG2L(comp, e.Species)
		if !l.Defined() {
			continue
		}
		out = append(out, kproc.LocalStoich{Local: l, Count: e.Count})
	}
	return out
}

// resolveSLoc resolves every SLocEntry to a compartment/patch-local
// index, returning ok=false if a reactant requires an inner/outer Tet
// this Tri does not have.
func (e *Engine) resolveSLoc(mdl model.Model, patch string, tri *spatial.Tri, entries []model.SLocEntry) ([]kproc.LocalSLoc, bool) {
	out := make([]kproc.LocalSLoc, 0, len(entries))
	for _, entry := range entries {
		var l model.LocalIndex
		switch entry.Location {
		case model.LocInner:
			if !tri.HasInnerTet() {
				return nil, false
			}
			l = mdl.SpecG2L(e.tets[tri.InnerTet].Comp, entry.Species)
		case model.LocOuter:
			if !tri.HasOuterTet() {
				return nil, false
			}
			l = mdl.SpecG2L(e.tets[tri.OuterTet].Comp, entry.Species)
		default:
			l = mdl.PatchSpecG2L(patch, entry.Species)
		}
		if !l.Defined() {
			continue
		}
		out = append(out, kproc.LocalSLoc{Local: l, Count: entry.Count, Location: entry.Location})
	}
	return out, true
}

func ensureMap(m map[model.LocalIndex][]int) map[model.LocalIndex][]int {
	if m == nil {
		return make(map[model.LocalIndex][]int)
	}
	return m
}

// setupDeps computes each KProc's dependency vector once, per spec's
// "Dependency-set precomputation vs. on-the-fly": KProc A depends on
// KProc B if B writes a (poolKey, local species) pair that A reads.
func (e *Engine) setupDeps(reads, writes map[poolKey]map[model.LocalIndex][]int) {
	depSets := make([]map[int]struct{}, len(e.kprocs))
	for i := range depSets {
		depSets[i] = make(map[int]struct{})
	}

	// For a (poolKey, local species) pair, every writer's dependency
	// set gains every reader: firing the writer may change what every
	// reader computes as its rate.
	for key, byLocal := range reads {
		for l, readers := range byLocal {
			writerSchedIDXs := writes[key][l]
			if len(writerSchedIDXs) == 0 {
				continue
			}
			for _, writer := range writerSchedIDXs {
				for _, reader := range readers {
					if reader == writer {
						continue
					}
					depSets[writer][reader] = struct{}{}
				}
			}
		}
	}

	for i, k := range e.kprocs {
		deps := make([]int, 0, len(depSets[i]))
		for d := range depSets[i] {
			deps = append(deps, d)
		}
		sort.Ints(deps)
		switch kk := k.(type) {
		case *kproc.Reac:
			kk.SetDependencies(deps)
		case *kproc.Diff:
			kk.SetDependencies(deps)
		case *kproc.SReac:
			kk.SetDependencies(deps)
		}
	}
}
