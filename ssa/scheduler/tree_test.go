package scheduler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plin1112/steps-go/internal/statcheck"
	"github.com/plin1112/steps-go/rng"
	"github.com/plin1112/steps-go/ssa/kproc"
)

// fakeKProc is a minimal kproc.KProc with a mutable rate, for exercising
// the tree in isolation from the reaction/diffusion machinery.
type fakeKProc struct {
	idx      int
	rate     float64
	inactive bool
}

func (f *fakeKProc) SchedIDX() int          { return f.idx }
func (f *fakeKProc) Rate() float64          { return f.rate }
func (f *fakeKProc) Apply(rng.Source) []int { return []int{f.idx} }
func (f *fakeKProc) Dependencies() []int    { return nil }
func (f *fakeKProc) UpdVecSize() int        { return 1 }
func (f *fakeKProc) SetActive(active bool)  { f.inactive = !active }
func (f *fakeKProc) Inactive() bool         { return f.inactive }
func (f *fakeKProc) Extent() uint64         { return 0 }
func (f *fakeKProc) ResetExtent()           {}

func newFakeTree(branching int, rates []float64) (*Tree, []*fakeKProc) {
	kprocs := make([]kproc.KProc, len(rates))
	fakes := make([]*fakeKProc, len(rates))
	for i, r := range rates {
		f := &fakeKProc{idx: i, rate: r}
		fakes[i] = f
		kprocs[i] = f
	}
	tree := NewTree(branching, kprocs)
	tree.Build()
	return tree, fakes
}

func TestTreeA0MatchesSumOfRates(t *testing.T) {
	tree, _ := newFakeTree(4, []float64{1, 2, 3, 4, 5})
	assert.InDelta(t, 15, tree.A0(), 1e-9)
}

func TestTreeUpdateRecomputesA0(t *testing.T) {
	tree, kprocs := newFakeTree(4, []float64{1, 2, 3})
	kprocs[1].rate = 20
	tree.Update([]int{1})
	assert.InDelta(t, 1+20+3, tree.A0(), 1e-9)
}

func TestTreeUpdateHandlesUnsortedDuplicateDirtySet(t *testing.T) {
	tree, kprocs := newFakeTree(4, []float64{1, 2, 3})
	kprocs[0].rate = 10
	kprocs[2].rate = 30
	tree.Update([]int{2, 0, 2, 0})
	assert.InDelta(t, 10+2+30, tree.A0(), 1e-9)
}

func TestTreeInactiveKProcContributesZero(t *testing.T) {
	tree, kprocs := newFakeTree(4, []float64{1, 2, 3})
	kprocs[1].SetActive(false)
	tree.Reset()
	assert.InDelta(t, 1+3, tree.A0(), 1e-9)
}

func TestTreeGetNextZeroA0ReturnsNegativeOne(t *testing.T) {
	tree, _ := newFakeTree(4, []float64{0, 0, 0})
	src := rng.NewMathRand(1)
	assert.Equal(t, -1, tree.GetNext(src))
}

// TestTreeSelectionMatchesCategoricalDistribution draws many samples from a
// 5-way tree with unequal rates and checks the empirical selection
// frequencies against the theoretical p_i = rate_i/A0 via chi-square,
// exercising the tree with a branching factor smaller than the KProc count
// so multiple internal levels are involved.
func TestTreeSelectionMatchesCategoricalDistribution(t *testing.T) {
	rates := []float64{1, 2, 3, 4, 10}
	tree, _ := newFakeTree(2, rates)
	src := rng.NewMathRand(7)

	const n = 200000
	counts := make([]float64, len(rates))
	for i := 0; i < n; i++ {
		idx := tree.GetNext(src)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(rates))
		counts[idx]++
	}

	a0 := tree.A0()
	expectedProb := make([]float64, len(rates))
	for i, r := range rates {
		expectedProb[i] = r / a0
	}

	chi2 := statcheck.ChiSquareGoodnessOfFit(counts, expectedProb)
	// 4 degrees of freedom, alpha=0.001 critical value ~18.47.
	assert.Less(t, chi2, 18.47)
}

func TestTreeBuildPadsToBranchingMultiple(t *testing.T) {
	tree, _ := newFakeTree(4, []float64{1, 2, 3, 4, 5})
	assert.Equal(t, 8, len(tree.levels[0]))
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 3, ceilDiv(9, 3))
	assert.Equal(t, 4, ceilDiv(10, 3))
	assert.Equal(t, 0, ceilDiv(0, 3))
}

func TestTreeA0NeverNegative(t *testing.T) {
	tree, kprocs := newFakeTree(4, []float64{1, 2, 3})
	kprocs[0].rate = 0
	kprocs[1].rate = 0
	kprocs[2].rate = 0
	tree.Update([]int{0, 1, 2})
	assert.False(t, math.Signbit(tree.A0()))
	assert.InDelta(t, 0, tree.A0(), 1e-9)
}
