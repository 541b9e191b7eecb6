package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedSource returns queued uniforms in order, then repeats the last.
type scriptedSource struct {
	draws []float64
	pos   int
}

func (s *scriptedSource) Uniform01() float64 {
	if s.pos >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	u := s.draws[s.pos]
	s.pos++
	return u
}

func (s *scriptedSource) Exponential(rate float64) float64 { return 0 }

// fakeTarget is a minimal DistributeTarget over an in-memory weight/count
// vector, standing in for compTarget/patchTarget in isolation.
type fakeTarget struct {
	weights []float64
	counts  []uint64
}

func (f *fakeTarget) Len() int { return len(f.weights) }
func (f *fakeTarget) TotalWeight() float64 {
	var total float64
	for _, w := range f.weights {
		total += w
	}
	return total
}
func (f *fakeTarget) WeightAt(i int) float64 { return f.weights[i] }
func (f *fakeTarget) SeedAdd(i int, delta uint64) { f.counts[i] += delta }
func (f *fakeTarget) Increment(i int) { f.counts[i]++ }
func (f *fakeTarget) Pick(u float64) int {
	total := f.TotalWeight()
	target := u * total
	var cum float64
	for i, w := range f.weights {
		cum += w
		if cum > target {
			return i
		}
	}
	return len(f.weights) - 1
}

func TestDistributeCountConservesTotal(t *testing.T) {
	target := &fakeTarget{weights: []float64{1, 1, 2}, counts: make([]uint64, 3)}
	src := &scriptedSource{draws: []float64{0.9, 0.1, 0.5, 0.9}}
	DistributeCount(target, 1000, src)

	var total uint64
	for _, c := range target.counts {
		total += c
	}
	assert.EqualValues(t, 1000, total)
}

func TestDistributeCountFractionalRounding(t *testing.T) {
	target := &fakeTarget{weights: []float64{1}, counts: make([]uint64, 1)}

	// u=0.5 < nFrac=0.7 rounds n=3.7 up to 4.
	src := &scriptedSource{draws: []float64{0.5}}
	DistributeCount(target, 3.7, src)
	assert.EqualValues(t, 4, target.counts[0])

	target2 := &fakeTarget{weights: []float64{1}, counts: make([]uint64, 1)}
	// u=0.9 >= nFrac=0.7 keeps n=3.7 rounded down to 3.
	src2 := &scriptedSource{draws: []float64{0.9}}
	DistributeCount(target2, 3.7, src2)
	assert.EqualValues(t, 3, target2.counts[0])
}

func TestDistributeCountSingleElementGetsEverything(t *testing.T) {
	target := &fakeTarget{weights: []float64{5}, counts: make([]uint64, 1)}
	src := &scriptedSource{draws: []float64{0.0}}
	DistributeCount(target, 42, src)
	assert.EqualValues(t, 42, target.counts[0])
}

func TestDistributeCountZeroWeightFallsBackToDraws(t *testing.T) {
	target := &fakeTarget{weights: []float64{0, 0}, counts: make([]uint64, 2)}
	src := &scriptedSource{draws: []float64{0.1, 0.9, 0.1, 0.9}}
	DistributeCount(target, 4, src)

	var total uint64
	for _, c := range target.counts {
		total += c
	}
	assert.EqualValues(t, 4, total, "zero total weight must still distribute via per-molecule Pick draws")
}
