package engine

import (
	"github.com/plin1112/steps-go/internal/simerr"
	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/kproc"
	"github.com/plin1112/steps-go/ssa/spatial"
)

// avogadro mirrors kproc's unexported constant for concentration
// conversions at the accessor surface.
const avogadro = 6.02214076e23

// CompCount returns the total count of species across every Tet in
// comp. Unmapped species return 0, per spec §6.
func (e *Engine) CompCount(comp string, species int) uint64 {
	c, ok := e.comps[comp]
	if !ok {
		return 0
	}
	l := e.mdl.SpecG2L(comp, species)
	if !l.Defined() {
		return 0
	}
	var total uint64
	for _, idx := range c.TetIndices {
		total += e.tets[idx].Pool.Count(l)
	}
	return total
}

// SetCompCount zeroes and redistributes species across comp's Tets to
// total n, per the §4.2 "distributing a target molecule count" algorithm,
// then does a full scheduler recompute (spec §4.4's "or a full _reset
// when the number of affected KProcs exceeds a simple threshold" — a
// bulk redistribution over an arbitrary Tet count always takes this
// path rather than assembling a targeted schedIDX set).
func (e *Engine) SetCompCount(comp string, species int, n float64) error {
	c, ok := e.comps[comp]
	if !ok {
		return simerr.NewArgumentError("unknown compartment %s", comp)
	}
	l := e.mdl.SpecG2L(comp, species)
	if !l.Defined() {
		return nil
	}
	for _, idx := range c.TetIndices {
		e.tets[idx].Pool.SetCount(l, 0)
	}
	target := spatial.NewCompTarget(c, e, l)
	distributeSrc := e.partitionedRNG.ForSubsystem(rng.SubsystemDistribute)
	spatial.DistributeCount(target, n, distributeSrc)
	e.tree.Reset()
	e.collector.ObserveTreeRebuild()
	return nil
}

// CompConc returns comp's species concentration in mol/L, given comp's
// total volume and Avogadro's number.
func (e *Engine) CompConc(comp string, species int) float64 {
	c, ok := e.comps[comp]
	if !ok {
		return 0
	}
	vol := c.Vol(e)
	if vol <= 0 {
		return 0
	}
	return float64(e.CompCount(comp, species)) / (avogadro * vol)
}

// SetCompConc sets comp's species population to conc·V·N_A molecules.
func (e *Engine) SetCompConc(comp string, species int, conc float64) error {
	c, ok := e.comps[comp]
	if !ok {
		return simerr.NewArgumentError("unknown compartment %s", comp)
	}
	vol := c.Vol(e)
	return e.SetCompCount(comp, species, conc*vol*avogadro)
}

// CompClamped reports whether species is clamped in every Tet of comp
// (mixed clamp states across Tets report false).
func (e *Engine) CompClamped(comp string, species int) bool {
	c, ok := e.comps[comp]
	if !ok {
		return false
	}
	l := e.mdl.SpecG2L(comp, species)
	if !l.Defined() || len(c.TetIndices) == 0 {
		return false
	}
	for _, idx := range c.TetIndices {
		if !e.tets[idx].Pool.Clamped(l) {
			return false
		}
	}
	return true
}

// SetCompClamped sets or clears the clamp flag for species across every
// Tet in comp. Does not require a scheduler update: a clamp flag change
// alone never alters the current rate, only future Add calls.
func (e *Engine) SetCompClamped(comp string, species int, clamped bool) error {
	c, ok := e.comps[comp]
	if !ok {
		return simerr.NewArgumentError("unknown compartment %s", comp)
	}
	l := e.mdl.SpecG2L(comp, species)
	if !l.Defined() {
		return nil
	}
	for _, idx := range c.TetIndices {
		e.tets[idx].Pool.SetClamped(l, clamped)
	}
	return nil
}

// PatchCount returns the total count of species across every Tri's own
// (surface) pool in patch.
func (e *Engine) PatchCount(patch string, species int) uint64 {
	p, ok := e.patches[patch]
	if !ok {
		return 0
	}
	l := e.mdl.PatchSpecG2L(patch, species)
	if !l.Defined() {
		return 0
	}
	var total uint64
	for _, idx := range p.TriIndices {
		total += e.tris[idx].Pool.Count(l)
	}
	return total
}

// SetPatchCount zeroes and redistributes species across patch's Tris to
// total n, the Tri/area analogue of SetCompCount.
func (e *Engine) SetPatchCount(patch string, species int, n float64) error {
	p, ok := e.patches[patch]
	if !ok {
		return simerr.NewArgumentError("unknown patch %s", patch)
	}
	l := e.mdl.PatchSpecG2L(patch, species)
	if !l.Defined() {
		return nil
	}
	for _, idx := range p.TriIndices {
		e.tris[idx].Pool.SetCount(l, 0)
	}
	target := spatial.NewPatchTarget(p, e, l)
	distributeSrc := e.partitionedRNG.ForSubsystem(rng.SubsystemDistribute)
	spatial.DistributeCount(target, n, distributeSrc)
	e.tree.Reset()
	e.collector.ObserveTreeRebuild()
	return nil
}

// PatchClamped reports whether species is clamped in every Tri of patch.
func (e *Engine) PatchClamped(patch string, species int) bool {
	p, ok := e.patches[patch]
	if !ok {
		return false
	}
	l := e.mdl.PatchSpecG2L(patch, species)
	if !l.Defined() || len(p.TriIndices) == 0 {
		return false
	}
	for _, idx := range p.TriIndices {
		if !e.tris[idx].Pool.Clamped(l) {
			return false
		}
	}
	return true
}

// SetPatchClamped sets or clears the clamp flag for species across
// every Tri in patch.
func (e *Engine) SetPatchClamped(patch string, species int, clamped bool) error {
	p, ok := e.patches[patch]
	if !ok {
		return simerr.NewArgumentError("unknown patch %s", patch)
	}
	l := e.mdl.PatchSpecG2L(patch, species)
	if !l.Defined() {
		return nil
	}
	for _, idx := range p.TriIndices {
		e.tris[idx].Pool.SetClamped(l, clamped)
	}
	return nil
}

// TetCount returns species' count in a single Tet, by engine-owned
// index.
func (e *Engine) TetCount(tetIdx int, species int) uint64 {
	tet := e.Tet(tetIdx)
	if tet == nil {
		return 0
	}
	l := e.mdl.SpecG2L(tet.Comp, species)
	return tet.Pool.Count(l)
}

// SetTetCount overwrites species' count in a single Tet and triggers a
// full scheduler recompute.
func (e *Engine) SetTetCount(tetIdx int, species int, count uint64) error {
	tet := e.Tet(tetIdx)
	if tet == nil {
		return simerr.NewArgumentError("tet index out of range")
	}
	l := e.mdl.SpecG2L(tet.Comp, species)
	if !l.Defined() {
		return nil
	}
	tet.Pool.SetCount(l, count)
	e.tree.Reset()
	e.collector.ObserveTreeRebuild()
	return nil
}

// TriCount returns species' count in a single Tri's own pool.
func (e *Engine) TriCount(triIdx int, species int) uint64 {
	tri := e.Tri(triIdx)
	if tri == nil {
		return 0
	}
	l := e.mdl.PatchSpecG2L(tri.Patch, species)
	return tri.Pool.Count(l)
}

// SetTriCount overwrites species' count in a single Tri's own pool and
// triggers a full scheduler recompute.
func (e *Engine) SetTriCount(triIdx int, species int, count uint64) error {
	tri := e.Tri(triIdx)
	if tri == nil {
		return simerr.NewArgumentError("tri index out of range")
	}
	l := e.mdl.PatchSpecG2L(tri.Patch, species)
	if !l.Defined() {
		return nil
	}
	tri.Pool.SetCount(l, count)
	e.tree.Reset()
	e.collector.ObserveTreeRebuild()
	return nil
}

// reacsFor resolves comp+reacGlobal to the concrete *kproc.Reac
// instances hosting that reaction, one per Tet in comp.
func (e *Engine) reacsFor(comp string, reacGlobal int) ([]*kproc.Reac, []int) {
	l := e.mdl.ReacG2L(comp, reacGlobal)
	if !l.Defined() {
		return nil, nil
	}
	schedIDXs := e.compReacIdx[comp][l]
	out := make([]*kproc.Reac, 0, len(schedIDXs))
	for _, s := range schedIDXs {
		if r, ok := e.kprocs[s].(*kproc.Reac); ok {
			out = append(out, r)
		}
	}
	return out, schedIDXs
}

// CompReacH returns the combinatorial term of the first Tet hosting
// this reaction (exact for the well-mixed engine's single Tet per
// compartment; an approximation for a multi-Tet spatial compartment).
func (e *Engine) CompReacH(comp string, reacGlobal int) float64 {
	rs, _ := e.reacsFor(comp, reacGlobal)
	if len(rs) == 0 {
		return 0
	}
	return rs[0].H()
}

// CompReacC returns the rate-constant/volume term of the first Tet
// hosting this reaction, per the same single-Tet-exact caveat as
// CompReacH.
func (e *Engine) CompReacC(comp string, reacGlobal int) float64 {
	rs, _ := e.reacsFor(comp, reacGlobal)
	if len(rs) == 0 {
		return 0
	}
	return rs[0].C()
}

// CompReacA returns the total propensity of this reaction summed over
// every hosting Tet in comp.
func (e *Engine) CompReacA(comp string, reacGlobal int) float64 {
	rs, _ := e.reacsFor(comp, reacGlobal)
	var total float64
	for _, r := range rs {
		total += r.Rate()
	}
	return total
}

// CompReacExtent returns the reaction's total fire count summed over
// every hosting Tet in comp.
func (e *Engine) CompReacExtent(comp string, reacGlobal int) uint64 {
	rs, _ := e.reacsFor(comp, reacGlobal)
	var total uint64
	for _, r := range rs {
		total += r.Extent()
	}
	return total
}

// ResetCompReacExtent zeroes the fire count of every KProc instantiating
// this reaction across comp's Tets.
func (e *Engine) ResetCompReacExtent(comp string, reacGlobal int) {
	rs, _ := e.reacsFor(comp, reacGlobal)
	for _, r := range rs {
		r.ResetExtent()
	}
}

// CompReacActive reports whether the reaction is active in every Tet
// hosting it (mixed active states across Tets report false).
func (e *Engine) CompReacActive(comp string, reacGlobal int) bool {
	rs, _ := e.reacsFor(comp, reacGlobal)
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if r.Inactive() {
			return false
		}
	}
	return true
}

// SetCompReacActive sets the active flag on every KProc instantiating
// this reaction across comp's Tets and issues a targeted scheduler
// update over exactly those schedIDX, per spec §4.4.
func (e *Engine) SetCompReacActive(comp string, reacGlobal int, active bool) {
	_, schedIDXs := e.reacsFor(comp, reacGlobal)
	for _, s := range schedIDXs {
		e.kprocs[s].SetActive(active)
	}
	e.tree.Update(schedIDXs)
}

func (e *Engine) diffsFor(comp string, diffGlobal int) ([]*kproc.Diff, []int) {
	l := e.mdl.DiffG2L(comp, diffGlobal)
	if !l.Defined() {
		return nil, nil
	}
	schedIDXs := e.compDiffIdx[comp][l]
	out := make([]*kproc.Diff, 0, len(schedIDXs))
	for _, s := range schedIDXs {
		if d, ok := e.kprocs[s].(*kproc.Diff); ok {
			out = append(out, d)
		}
	}
	return out, schedIDXs
}

// CompDiffA returns the total diffusive propensity for this diffusion
// rule summed over every hosting Tet in comp.
func (e *Engine) CompDiffA(comp string, diffGlobal int) float64 {
	ds, _ := e.diffsFor(comp, diffGlobal)
	var total float64
	for _, d := range ds {
		total += d.Rate()
	}
	return total
}

// CompDiffExtent returns the diffusion rule's total fire count summed
// over every hosting Tet in comp.
func (e *Engine) CompDiffExtent(comp string, diffGlobal int) uint64 {
	ds, _ := e.diffsFor(comp, diffGlobal)
	var total uint64
	for _, d := range ds {
		total += d.Extent()
	}
	return total
}

// ResetCompDiffExtent zeroes the fire count of every KProc instantiating
// this diffusion rule across comp's Tets.
func (e *Engine) ResetCompDiffExtent(comp string, diffGlobal int) {
	ds, _ := e.diffsFor(comp, diffGlobal)
	for _, d := range ds {
		d.ResetExtent()
	}
}

// SetCompDiffActive sets the active flag on every KProc instantiating
// this diffusion rule across comp's Tets and issues a targeted
// scheduler update.
func (e *Engine) SetCompDiffActive(comp string, diffGlobal int, active bool) {
	_, schedIDXs := e.diffsFor(comp, diffGlobal)
	for _, s := range schedIDXs {
		e.kprocs[s].SetActive(active)
	}
	e.tree.Update(schedIDXs)
}

func (e *Engine) sreacsFor(patch string, sreacGlobal int) ([]*kproc.SReac, []int) {
	l := e.mdl.SReacG2L(patch, sreacGlobal)
	if !l.Defined() {
		return nil, nil
	}
	schedIDXs := e.patchSReacIdx[patch][l]
	out := make([]*kproc.SReac, 0, len(schedIDXs))
	for _, s := range schedIDXs {
		if sr, ok := e.kprocs[s].(*kproc.SReac); ok {
			out = append(out, sr)
		}
	}
	return out, schedIDXs
}

// PatchSReacH returns the combinatorial term of the first Tri hosting
// this surface reaction.
func (e *Engine) PatchSReacH(patch string, sreacGlobal int) float64 {
	srs, _ := e.sreacsFor(patch, sreacGlobal)
	if len(srs) == 0 {
		return 0
	}
	return srs[0].H()
}

// PatchSReacC returns the rate-constant/area-or-volume term of the
// first Tri hosting this surface reaction.
func (e *Engine) PatchSReacC(patch string, sreacGlobal int) float64 {
	srs, _ := e.sreacsFor(patch, sreacGlobal)
	if len(srs) == 0 {
		return 0
	}
	return srs[0].C()
}

// PatchSReacA returns the total propensity of this surface reaction
// summed over every hosting Tri in patch.
func (e *Engine) PatchSReacA(patch string, sreacGlobal int) float64 {
	srs, _ := e.sreacsFor(patch, sreacGlobal)
	var total float64
	for _, sr := range srs {
		total += sr.Rate()
	}
	return total
}

// PatchSReacExtent returns the surface reaction's total fire count
// summed over every hosting Tri in patch.
func (e *Engine) PatchSReacExtent(patch string, sreacGlobal int) uint64 {
	srs, _ := e.sreacsFor(patch, sreacGlobal)
	var total uint64
	for _, sr := range srs {
		total += sr.Extent()
	}
	return total
}

// ResetPatchSReacExtent zeroes the fire count of every KProc
// instantiating this surface reaction across patch's Tris.
func (e *Engine) ResetPatchSReacExtent(patch string, sreacGlobal int) {
	srs, _ := e.sreacsFor(patch, sreacGlobal)
	for _, sr := range srs {
		sr.ResetExtent()
	}
}

// SetPatchSReacActive sets the active flag on every KProc instantiating
// this surface reaction across patch's Tris and issues a targeted
// scheduler update.
func (e *Engine) SetPatchSReacActive(patch string, sreacGlobal int, active bool) {
	_, schedIDXs := e.sreacsFor(patch, sreacGlobal)
	for _, s := range schedIDXs {
		e.kprocs[s].SetActive(active)
	}
	e.tree.Update(schedIDXs)
}
