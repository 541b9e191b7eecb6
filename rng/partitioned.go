package rng

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// Subsystem name constants for the streams the engine draws from.
const (
	SubsystemScheduler  = "scheduler"
	SubsystemDiffusion  = "diffusion"
	SubsystemDistribute = "distribute"
)

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
// Two runs with the same master seed and identical model/geometry MUST
// produce bit-for-bit identical trajectories, so the derivation is a pure
// function of the master seed and the subsystem name (order-independent —
// which subsystem asks first doesn't matter).
//
// Thread-safety: NOT thread-safe. The engine is single-threaded (spec §5)
// and never calls ForSubsystem from more than one goroutine.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the (cached, lazily created) RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance.
func (p *PartitionedRNG) ForSubsystem(name string) *SourceRand {
	r, ok := p.subsystems[name]
	if !ok {
		r = rand.New(rand.NewSource(p.deriveSeed(name)))
		p.subsystems[name] = r
	}
	return &SourceRand{r: r}
}

// deriveSeed XORs the master seed with an FNV-1a hash of the subsystem
// name, so stream derivation does not depend on registration order.
func (p *PartitionedRNG) deriveSeed(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}

// SourceRand adapts *math/rand.Rand to the Source interface.
type SourceRand struct {
	r *rand.Rand
}

// NewMathRand creates a Source over a new *math/rand.Rand seeded with
// seed, for callers that don't need subsystem partitioning (e.g. a
// single-stream test).
func NewMathRand(seed int64) *SourceRand {
	return &SourceRand{r: rand.New(rand.NewSource(seed))}
}

func (s *SourceRand) Uniform01() float64 {
	return s.r.Float64()
}

// Exponential draws from Exp(rate) using inverse-transform sampling,
// matching the engine's own dt formula (spec §4.4): -ln(U(0,1]) / rate.
// rand.Rand.ExpFloat64 samples Exp(1); scaling by 1/rate gives Exp(rate).
// We use the inverse-transform form directly so a caller supplying a
// scripted Source sees the same formula the engine documents.
func (s *SourceRand) Exponential(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	u := s.r.Float64()
	for u == 0 {
		u = s.r.Float64()
	}
	return -math.Log(u) / rate
}
