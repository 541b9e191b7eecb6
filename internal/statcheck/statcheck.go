// Package statcheck holds statistical assertions used only by the
// property-based test suite (spec §8): Kolmogorov-Smirnov and
// mean/variance checks against the theoretical distributions the
// engine's Gillespie sampling must match.
package statcheck

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// KSExponential computes the two-sided Kolmogorov-Smirnov statistic
// between samples and Exp(rate), the reference distribution for
// inter-event times under a constant A0 (spec §8 property 4).
func KSExponential(samples []float64, rate float64) float64 {
	if len(samples) == 0 {
		return math.Inf(1)
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	ref := distuv.Exponential{Rate: rate}

	n := float64(len(sorted))
	var maxDiff float64
	for i, x := range sorted {
		empirical := float64(i+1) / n
		theoretical := ref.CDF(x)
		if d := math.Abs(empirical - theoretical); d > maxDiff {
			maxDiff = d
		}
		empiricalBefore := float64(i) / n
		if d := math.Abs(empiricalBefore - theoretical); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

// KSCriticalValue returns the approximate critical value for a
// two-sided KS test at significance level alpha (asymptotic formula),
// good enough for a property-test pass/fail threshold.
func KSCriticalValue(n int, alpha float64) float64 {
	c := math.Sqrt(-0.5 * math.Log(alpha/2))
	return c / math.Sqrt(float64(n))
}

// MeanVariance wraps gonum's stat.MeanVariance for the mass-balance and
// equilibrium scenario checks (spec §8's A↔B and decay scenarios).
func MeanVariance(samples []float64) (mean, variance float64) {
	return stat.MeanVariance(samples, nil)
}

// ChiSquareGoodnessOfFit computes the Pearson chi-square statistic for
// observed category counts against expected probabilities scaled by
// the total observation count (spec §8 property 5 — gonum has no
// built-in categorical goodness-of-fit test).
func ChiSquareGoodnessOfFit(observed []float64, expectedProb []float64) float64 {
	var total float64
	for _, o := range observed {
		total += o
	}
	var chi2 float64
	for i, o := range observed {
		expected := expectedProb[i] * total
		if expected <= 0 {
			continue
		}
		diff := o - expected
		chi2 += diff * diff / expected
	}
	return chi2
}
