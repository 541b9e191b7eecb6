package model

import "github.com/google/uuid"

// Model is the external model-definition collaborator (spec §6). It is
// keyed by global indices and exposes, per compartment/patch, the
// global-to-local maps the engine needs to build KProcs and translate
// query/mutate calls.
type Model interface {
	NumSpecies() int

	Compartments() []string
	Patches() []string

	CompReactions(comp string) []*VolumeReaction
	CompDiffusions(comp string) []*DiffusionRule
	PatchSReactions(patch string) []*SurfaceReaction

	// SpecG2L maps a global species index to its local index within comp.
	SpecG2L(comp string, global int) LocalIndex
	ReacG2L(comp string, global int) LocalIndex
	DiffG2L(comp string, global int) LocalIndex

	// PatchSpecG2L maps a global species index to its local index within
	// patch's own (surface) pool.
	PatchSpecG2L(patch string, global int) LocalIndex
	SReacG2L(patch string, global int) LocalIndex

	// NumLocalSpecies returns the number of locally-indexed species
	// slots a Tet in comp needs for its pool.
	NumLocalSpecies(comp string) int
	// NumLocalPatchSpecies returns the number of locally-indexed
	// species slots a Tri in patch needs for its own (surface) pool.
	NumLocalPatchSpecies(patch string) int
}

// compDef holds one compartment's reactions/diffusions and index maps.
type compDef struct {
	specG2L map[int]LocalIndex
	reacG2L map[int]LocalIndex
	diffG2L map[int]LocalIndex
	reacs   []*VolumeReaction
	diffs   []*DiffusionRule
}

// patchDef holds one patch's surface reactions and index maps.
type patchDef struct {
	specG2L map[int]LocalIndex
	sreacG2L map[int]LocalIndex
	sreacs   []*SurfaceReaction
}

// StaticModel is an in-memory Model built once at construction time and
// never mutated afterward, matching spec's "frozen after setup" rule
// (Design Notes: "Dependency-set precomputation vs. on-the-fly").
type StaticModel struct {
	numSpecies int
	comps      map[string]*compDef
	compOrder  []string
	patches    map[string]*patchDef
	patchOrder []string
}

// NewStaticModel creates an empty model with numSpecies globally known
// species. Compartments and patches are added with AddCompartment /
// AddPatch.
func NewStaticModel(numSpecies int) *StaticModel {
	return &StaticModel{
		numSpecies: numSpecies,
		comps:      make(map[string]*compDef),
		patches:    make(map[string]*patchDef),
	}
}

func (m *StaticModel) NumSpecies() int { return m.numSpecies }

func (m *StaticModel) Compartments() []string { return m.compOrder }
func (m *StaticModel) Patches() []string      { return m.patchOrder }

// AddCompartment registers a compartment with the species it contains
// (in local-index order), its volume reactions, and its diffusion rules.
func (m *StaticModel) AddCompartment(id string, localSpecies []int, reacs []*VolumeReaction, diffs []*DiffusionRule) {
	cd := &compDef{
		specG2L: make(map[int]LocalIndex),
		reacG2L: make(map[int]LocalIndex),
		diffG2L: make(map[int]LocalIndex),
		reacs:   reacs,
		diffs:   diffs,
	}
	for lidx, g := range localSpecies {
		cd.specG2L[g] = LocalIndex(lidx)
	}
	for lidx, r := range reacs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		cd.reacG2L[r.GlobalIndex] = LocalIndex(lidx)
	}
	for lidx, d := range diffs {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		cd.diffG2L[d.GlobalIndex] = LocalIndex(lidx)
	}
	if _, exists := m.comps[id]; !exists {
		m.compOrder = append(m.compOrder, id)
	}
	m.comps[id] = cd
}

// AddPatch registers a patch with the species present on its own
// (surface) pool and its surface reactions.
func (m *StaticModel) AddPatch(id string, localSpecies []int, sreacs []*SurfaceReaction) {
	pd := &patchDef{
		specG2L:  make(map[int]LocalIndex),
		sreacG2L: make(map[int]LocalIndex),
		sreacs:   sreacs,
	}
	for lidx, g := range localSpecies {
		pd.specG2L[g] = LocalIndex(lidx)
	}
	for lidx, r := range sreacs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		pd.sreacG2L[r.GlobalIndex] = LocalIndex(lidx)
	}
	if _, exists := m.patches[id]; !exists {
		m.patchOrder = append(m.patchOrder, id)
	}
	m.patches[id] = pd
}

func (m *StaticModel) CompReactions(comp string) []*VolumeReaction {
	cd, ok := m.comps[comp]
	if !ok {
		return nil
	}
	return cd.reacs
}

func (m *StaticModel) CompDiffusions(comp string) []*DiffusionRule {
	cd, ok := m.comps[comp]
	if !ok {
		return nil
	}
	return cd.diffs
}

func (m *StaticModel) PatchSReactions(patch string) []*SurfaceReaction {
	pd, ok := m.patches[patch]
	if !ok {
		return nil
	}
	return pd.sreacs
}

func (m *StaticModel) SpecG2L(comp string, global int) LocalIndex {
	cd, ok := m.comps[comp]
	if !ok {
		return LIDXUndefined
	}
	if l, ok := cd.specG2L[global]; ok {
		return l
	}
	return LIDXUndefined
}

func (m *StaticModel) ReacG2L(comp string, global int) LocalIndex {
	cd, ok := m.comps[comp]
	if !ok {
		return LIDXUndefined
	}
	if l, ok := cd.reacG2L[global]; ok {
		return l
	}
	return LIDXUndefined
}

func (m *StaticModel) DiffG2L(comp string, global int) LocalIndex {
	cd, ok := m.comps[comp]
	if !ok {
		return LIDXUndefined
	}
	if l, ok := cd.diffG2L[global]; ok {
		return l
	}
	return LIDXUndefined
}

func (m *StaticModel) PatchSpecG2L(patch string, global int) LocalIndex {
	pd, ok := m.patches[patch]
	if !ok {
		return LIDXUndefined
	}
	if l, ok := pd.specG2L[global]; ok {
		return l
	}
	return LIDXUndefined
}

func (m *StaticModel) SReacG2L(patch string, global int) LocalIndex {
	pd, ok := m.patches[patch]
	if !ok {
		return LIDXUndefined
	}
	if l, ok := pd.sreacG2L[global]; ok {
		return l
	}
	return LIDXUndefined
}

func (m *StaticModel) NumLocalSpecies(comp string) int {
	cd, ok := m.comps[comp]
	if !ok {
		return 0
	}
	return len(cd.specG2L)
}

func (m *StaticModel) NumLocalPatchSpecies(patch string) int {
	pd, ok := m.patches[patch]
	if !ok {
		return 0
	}
	return len(pd.specG2L)
}
