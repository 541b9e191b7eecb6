// Package model defines the chemical model: species, volume reactions,
// surface reactions, and diffusion rules, plus the global-to-local index
// maps a compartment or patch needs to build its KProcs.
//
// This is the "model interface" collaborator from spec §6, out of scope
// for the core engine but given a concrete implementation here so the
// engine can be built and tested end to end.
package model

// LocalIndex is a species/reaction/diffusion index local to one
// compartment or patch. LIDXUndefined marks "not present in this
// compartment/patch" — the engine must treat this as a defined zero
// (return 0 / early-return), never as an error.
type LocalIndex int

// LIDXUndefined is the sentinel local index for an unmapped
// species/reaction/diffusion/surface-reaction.
const LIDXUndefined LocalIndex = -1

// Defined reports whether l refers to a real local slot.
func (l LocalIndex) Defined() bool { return l != LIDXUndefined }

// StoichEntry pairs a species (by global index) with a stoichiometric
// coefficient (how many molecules of it participate).
type StoichEntry struct {
	Species int
	Count   int
}

// Species is a chemical species known to the model, identified globally.
type Species struct {
	ID          string
	GlobalIndex int
}

// VolumeReaction is a mass-action reaction inside a single compartment:
// Reactants -> Products at rate constant Kcst.
type VolumeReaction struct {
	ID          string
	GlobalIndex int
	Reactants   []StoichEntry
	Products    []StoichEntry
	Kcst        float64 // per-molecule rate constant
}

// Order returns the reaction order: total reactant molecule count.
func (r *VolumeReaction) Order() int {
	n := 0
	for _, e := range r.Reactants {
		n += e.Count
	}
	return n
}

// DiffusionRule is a per-species diffusion constant that applies within
// one compartment.
type DiffusionRule struct {
	ID          string
	GlobalIndex int
	Species     int
	Dcst        float64
}

// ReactantLocation identifies which pool a surface-reaction reactant or
// product lives in.
type ReactantLocation int

const (
	// LocSurface: the Tri's own pool.
	LocSurface ReactantLocation = iota
	// LocInner: the inner Tet's pool.
	LocInner
	// LocOuter: the outer Tet's pool.
	LocOuter
)

// SLocEntry pairs a species with a stoichiometric coefficient and the
// pool location it is read from / written to.
type SLocEntry struct {
	Species  int
	Count    int
	Location ReactantLocation
}

// SurfaceReaction is a reaction on a Tri whose reactants/products may
// come from the Tri itself, its inner Tet, or its outer Tet.
type SurfaceReaction struct {
	ID          string
	GlobalIndex int
	Reactants   []SLocEntry
	Products    []SLocEntry
	Kcst        float64
}

// SurfaceOrder returns the number of surface-located reactants (used to
// decide whether rate scaling uses Tri area or Tet volume for the
// surface-only order component, per spec §4.1).
func (r *SurfaceReaction) SurfaceOrder() int {
	n := 0
	for _, e := range r.Reactants {
		if e.Location == LocSurface {
			n += e.Count
		}
	}
	return n
}
