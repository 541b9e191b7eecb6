package kproc

import (
	"github.com/plin1112/steps-go/model"
	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/spatial"
)

// Diff is a diffusive jump of one species out of a Tet, across up to
// four faces.
type Diff struct {
	base

	tet     *spatial.Tet
	lookup  spatial.TetLookup
	species model.LocalIndex
	dcst    float64
}

// NewDiff builds a Diff for species (already resolved to tet's
// compartment-local index) hosted on tet, resolving neighbours through
// lookup.
func NewDiff(schedIDX int, tet *spatial.Tet, lookup spatial.TetLookup, species model.LocalIndex, dcst float64) *Diff {
	return &Diff{base: newBase(schedIDX), tet: tet, lookup: lookup, species: species, dcst: dcst}
}

// SetDependencies installs the precomputed dependency set (setupDeps).
func (d *Diff) SetDependencies(deps []int) { d.setDeps(deps) }

// eligible reports whether face i is a valid diffusion destination:
// it must border a neighbour tet in the same compartment, per spec §3
// ("cross-compartment neighbours are treated as absent for diffusion").
func (d *Diff) eligible(i int) bool {
	if !d.tet.HasNeighborTet(i) {
		return false
	}
	neighbor := d.lookup.Tet(d.tet.NextTet[i])
	return neighbor != nil && neighbor.Comp == d.tet.Comp
}

// faceRates fills rates[0..3] with the per-face jump propensity and
// returns their sum.
func (d *Diff) faceRates(rates *[4]float64) float64 {
	n := float64(d.tet.Pool.Count(d.species))
	var total float64
	for i := 0; i < 4; i++ {
		if !d.eligible(i) || n == 0 {
			rates[i] = 0
			continue
		}
		rates[i] = n * d.dcst * d.tet.Area[i] / (d.tet.Vol * d.tet.Dist[i])
		total += rates[i]
	}
	return total
}

// Rate is the sum of per-face jump propensities, per spec §4.1.
func (d *Diff) Rate() float64 {
	if d.inactive {
		return 0
	}
	var rates [4]float64
	return d.faceRates(&rates)
}

// Apply draws a destination face proportional to its propensity,
// transfers one molecule, increments extent, and returns the affected
// schedIDX set.
func (d *Diff) Apply(rngSrc rng.Source) []int {
	var rates [4]float64
	total := d.faceRates(&rates)
	if total <= 0 {
		return d.upd()
	}
	target := rngSrc.Uniform01() * total
	face := 3
	var cum float64
	for i := 0; i < 4; i++ {
		cum += rates[i]
		if cum > target {
			face = i
			break
		}
	}
	dest := d.lookup.Tet(d.tet.NextTet[face])
	d.tet.Pool.Add(d.species, -1)
	dest.Pool.Add(d.species, 1)
	d.extent++
	return d.upd()
}
