package kproc

import (
	"math"

	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/spatial"
)

// Reac is a mass-action volume reaction inside one Tet.
type Reac struct {
	base

	tet       *spatial.Tet
	reactants []LocalStoich
	products  []LocalStoich
	kcst      float64
	order     int
}

// NewReac builds a Reac firing inside tet, with reactants/products
// already resolved to tet's compartment-local species indices.
func NewReac(schedIDX int, tet *spatial.Tet, reactants, products []LocalStoich, kcst float64) *Reac {
	order := 0
	for _, r := range reactants {
		order += r.Count
	}
	return &Reac{
		base:      newBase(schedIDX),
		tet:       tet,
		reactants: reactants,
		products:  products,
		kcst:      kcst,
		order:     order,
	}
}

// SetDependencies installs the precomputed dependency set (setupDeps).
func (r *Reac) SetDependencies(deps []int) { r.setDeps(deps) }

// Rate computes h·c per spec §4.1: h is the combinatorial reactant
// term, c is kcst / (N_A·V)^(order-1).
func (r *Reac) Rate() float64 {
	if r.inactive {
		return 0
	}
	hVal, ok := h(r.tet.Pool, r.reactants)
	if !ok {
		return 0
	}
	if r.order <= 1 {
		return hVal * r.kcst
	}
	c := r.kcst / math.Pow(avogadro*r.tet.Vol, float64(r.order-1))
	return hVal * c
}

// H returns the combinatorial reactant term alone (spec glossary "h"),
// 0 if the reactant threshold is unmet.
func (r *Reac) H() float64 {
	hVal, ok := h(r.tet.Pool, r.reactants)
	if !ok {
		return 0
	}
	return hVal
}

// C returns the rate-constant/volume term alone (spec glossary "c"),
// such that Rate() == H()·C() when active and above threshold.
func (r *Reac) C() float64 {
	if r.order <= 1 {
		return r.kcst
	}
	return r.kcst / math.Pow(avogadro*r.tet.Vol, float64(r.order-1))
}

// Apply decrements reactants and increments products in the host Tet,
// increments extent, and returns the affected schedIDX set.
func (r *Reac) Apply(rngSrc rng.Source) []int {
	for _, entry := range r.reactants {
		r.tet.Pool.Add(entry.Local, -int64(entry.Count))
	}
	for _, entry := range r.products {
		r.tet.Pool.Add(entry.Local, int64(entry.Count))
	}
	r.extent++
	return r.upd()
}
