package model

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ModelFile is the on-disk YAML representation of a chemical model,
// decoded the way sim/workload/spec.go decodes a WorkloadSpec: a plain
// struct tree with yaml tags, loaded once at startup and converted into
// the engine's internal types.
type ModelFile struct {
	Species      []string                `yaml:"species"`
	Compartments []CompartmentFile       `yaml:"compartments"`
	Patches      []PatchFile             `yaml:"patches,omitempty"`
}

// CompartmentFile lists one compartment's species, volume reactions, and
// diffusion rules by species name.
type CompartmentFile struct {
	ID          string             `yaml:"id"`
	Species     []string           `yaml:"species"`
	Reactions   []ReactionFile     `yaml:"reactions,omitempty"`
	Diffusions  []DiffusionFile    `yaml:"diffusions,omitempty"`
}

// ReactionFile is a volume reaction keyed by species name.
type ReactionFile struct {
	ID        string         `yaml:"id,omitempty"`
	Reactants map[string]int `yaml:"reactants"`
	Products  map[string]int `yaml:"products"`
	Kcst      float64        `yaml:"kcst"`
}

// DiffusionFile is one species' diffusion constant within a compartment.
type DiffusionFile struct {
	ID      string  `yaml:"id,omitempty"`
	Species string  `yaml:"species"`
	Dcst    float64 `yaml:"dcst"`
}

// PatchFile lists one patch's own surface species and surface reactions.
type PatchFile struct {
	ID        string            `yaml:"id"`
	Species   []string          `yaml:"species,omitempty"`
	SReactions []SReactionFile  `yaml:"sreactions,omitempty"`
}

// SLocFile is a located stoichiometry entry: "surface"/"inner"/"outer".
type SLocFile struct {
	Species  string `yaml:"species"`
	Count    int    `yaml:"count"`
	Location string `yaml:"location"`
}

// SReactionFile is a surface reaction keyed by species name and location.
type SReactionFile struct {
	ID        string     `yaml:"id,omitempty"`
	Reactants []SLocFile `yaml:"reactants"`
	Products  []SLocFile `yaml:"products"`
	Kcst      float64    `yaml:"kcst"`
}

// LoadModelFile reads and decodes a ModelFile from path.
func LoadModelFile(path string) (*ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model file %s", path)
	}
	var mf ModelFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrapf(err, "parsing model file %s", path)
	}
	return &mf, nil
}

// Build converts a decoded ModelFile into a StaticModel, resolving
// species names to global indices in declaration order.
func (mf *ModelFile) Build() (*StaticModel, error) {
	globalIdx := make(map[string]int, len(mf.Species))
	for i, name := range mf.Species {
		globalIdx[name] = i
	}
	resolve := func(name string) (int, error) {
		g, ok := globalIdx[name]
		if !ok {
			return 0, errors.Errorf("unknown species %q", name)
		}
		return g, nil
	}

	sm := NewStaticModel(len(mf.Species))

	for _, c := range mf.Compartments {
		localSpecies := make([]int, 0, len(c.Species))
		for _, name := range c.Species {
			g, err := resolve(name)
			if err != nil {
				return nil, errors.Wrapf(err, "compartment %s", c.ID)
			}
			localSpecies = append(localSpecies, g)
		}

		reacs := make([]*VolumeReaction, 0, len(c.Reactions))
		for i, rf := range c.Reactions {
			r := &VolumeReaction{ID: rf.ID, GlobalIndex: i, Kcst: rf.Kcst}
			for name, count := range rf.Reactants {
				g, err := resolve(name)
				if err != nil {
					return nil, errors.Wrapf(err, "compartment %s reaction %d", c.ID, i)
				}
				r.Reactants = append(r.Reactants, StoichEntry{Species: g, Count: count})
			}
			for name, count := range rf.Products {
				g, err := resolve(name)
				if err != nil {
					return nil, errors.Wrapf(err, "compartment %s reaction %d", c.ID, i)
				}
				r.Products = append(r.Products, StoichEntry{Species: g, Count: count})
			}
			reacs = append(reacs, r)
		}

		diffs := make([]*DiffusionRule, 0, len(c.Diffusions))
		for i, df := range c.Diffusions {
			g, err := resolve(df.Species)
			if err != nil {
				return nil, errors.Wrapf(err, "compartment %s diffusion %d", c.ID, i)
			}
			diffs = append(diffs, &DiffusionRule{ID: df.ID, GlobalIndex: i, Species: g, Dcst: df.Dcst})
		}

		sm.AddCompartment(c.ID, localSpecies, reacs, diffs)
	}

	for _, p := range mf.Patches {
		localSpecies := make([]int, 0, len(p.Species))
		for _, name := range p.Species {
			g, err := resolve(name)
			if err != nil {
				return nil, errors.Wrapf(err, "patch %s", p.ID)
			}
			localSpecies = append(localSpecies, g)
		}

		resolveLoc := func(l string) (ReactantLocation, error) {
			switch l {
			case "surface", "":
				return LocSurface, nil
			case "inner":
				return LocInner, nil
			case "outer":
				return LocOuter, nil
			default:
				return 0, errors.Errorf("unknown reactant location %q", l)
			}
		}

		sreacs := make([]*SurfaceReaction, 0, len(p.SReactions))
		for i, sf := range p.SReactions {
			sr := &SurfaceReaction{ID: sf.ID, GlobalIndex: i, Kcst: sf.Kcst}
			for _, e := range sf.Reactants {
				g, err := resolve(e.Species)
				if err != nil {
					return nil, errors.Wrapf(err, "patch %s sreaction %d", p.ID, i)
				}
				loc, err := resolveLoc(e.Location)
				if err != nil {
					return nil, errors.Wrapf(err, "patch %s sreaction %d", p.ID, i)
				}
				sr.Reactants = append(sr.Reactants, SLocEntry{Species: g, Count: e.Count, Location: loc})
			}
			for _, e := range sf.Products {
				g, err := resolve(e.Species)
				if err != nil {
					return nil, errors.Wrapf(err, "patch %s sreaction %d", p.ID, i)
				}
				loc, err := resolveLoc(e.Location)
				if err != nil {
					return nil, errors.Wrapf(err, "patch %s sreaction %d", p.ID, i)
				}
				sr.Products = append(sr.Products, SLocEntry{Species: g, Count: e.Count, Location: loc})
			}
			sreacs = append(sreacs, sr)
		}

		sm.AddPatch(p.ID, localSpecies, sreacs)
	}

	return sm, nil
}
