package kproc

import (
	"github.com/plin1112/steps-go/model"
	"github.com/plin1112/steps-go/ssa/spatial"
)

// LocalStoich is one reactant/product term resolved to a pool-local
// species index, used by Reac/Diff/SReac constructors so this package
// never depends on model.Model directly — the engine resolves global
// indices to local ones once at build time.
type LocalStoich struct {
	Local model.LocalIndex
	Count int
}

// h computes the combinatorial reactant term: the product, over
// reactant entries, of the number of ways to draw Count molecules of
// that species from the pool's current count, i.e. the falling
// factorial n·(n-1)·...·(n-Count+1) / Count!. Returns ok=false if any
// entry's threshold is unmet, per spec §4.1 ("zero if any reactant
// count is below the stoichiometric threshold").
func h(pool *spatial.Pool, entries []LocalStoich) (val float64, ok bool) {
	val = 1
	for _, e := range entries {
		n := pool.Count(e.Local)
		if uint64(e.Count) > n {
			return 0, false
		}
		val *= fallingFactorialOverFactorial(n, e.Count)
	}
	return val, true
}

// fallingFactorialOverFactorial computes n·(n-1)·...·(n-k+1) / k!.
func fallingFactorialOverFactorial(n uint64, k int) float64 {
	if k == 0 {
		return 1
	}
	num := 1.0
	for i := 0; i < k; i++ {
		num *= float64(n - uint64(i))
	}
	den := 1.0
	for i := 2; i <= k; i++ {
		den *= float64(i)
	}
	return num / den
}
