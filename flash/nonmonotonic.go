package flash

import (
	"math"

	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/quantity"
)

// inflectionTemperature approximates T_infl(P) (§4.D.3): water's density
// maximum sits near 277.13 K at 1 bar and drifts down toward the triple
// point (273.16 K) as pressure rises, the textbook example of a P,Rho or
// T,Rho spec having two solutions on either side of a single bracket.
// The piecewise-linear approximation below is fixed by the
// implementation, not measured data.
func inflectionTemperature(p float64) float64 {
	const (
		pRefLow = 1e5 // 1 bar
		tAtLow  = 277.13
		tTriple = 273.16
		pHigh   = 2e7 // high-pressure asymptote reference
	)
	pr := (p - pRefLow) / (pHigh - pRefLow)
	if pr < 0 {
		pr = 0
	}
	if pr > 1 {
		pr = 1
	}
	return tAtLow - (tAtLow-tTriple)*pr
}

// run1DDensity handles P,Rho and T,Rho when the backend lacks a native
// density setter (§4.D.3). Density is not guaranteed monotonic in the
// free variable (water's maximum density near 277 K is the canonical
// counterexample), so for P,Rho (free variable T) the search is split at
// the inflection temperature into two monotonic sub-ranges and each is
// tried in turn. T,Rho is searched over the whole pressure envelope as a
// single range.
func run1DDensity(b backend.Contract, spec quantity.Spec, vA, vB float64, opts Options) (Result, error) {
	fixedProp, fixedVal, freeProp, _, targetRho := fixedFreeVar(spec, vA, vB)
	floor, ceil := envelope(b, freeProp)

	residual := func(free float64) float64 {
		if err := setFixedFree(b, fixedProp, fixedVal, free); err != nil {
			return math.NaN()
		}
		return b.Rho() - targetRho
	}

	ranges := [][2]float64{{floor, ceil}}
	if freeProp == quantity.PropT {
		tInfl := inflectionTemperature(fixedVal)
		if floor < tInfl && ceil > tInfl {
			ranges = [][2]float64{{floor, tInfl}, {tInfl, ceil}}
		}
	}

	var best Result
	var bestFree float64
	found := false
	// closest* track the smallest residual reached in any sub-range, so a
	// search that converges nowhere still leaves the backend at that point.
	closestRes, closestFree, closestIters := math.Inf(1), math.NaN(), 0
	for _, r := range ranges {
		lo, hi, ok := expandBracket(residual, (r[0]+r[1])/2, r[0], r[1])
		if !ok {
			continue
		}
		free, iters, converged := defaultRootFinder.FindRoot(residual, lo, hi, opts.Tolerance, opts.MaxIterations)
		res := residual(free)
		if math.Abs(res) < math.Abs(closestRes) {
			closestRes, closestFree, closestIters = res, free, iters
		}
		if converged && (!found || math.Abs(res) < math.Abs(best.Residual)) {
			best = Result{Converged: true, Iterations: iters, Residual: res}
			bestFree = free
			found = true
		}
	}

	if !found {
		opts.Log.WithFields(fieldsFor(spec, vA, vB)).Warn("flash: density solver failed across all sub-ranges")
		if math.IsNaN(closestFree) {
			return Result{Converged: false}, nonConvergenceErr(spec, vA, vB, opts.MaxIterations)
		}
		_ = setFixedFree(b, fixedProp, fixedVal, closestFree)
		return Result{Converged: false, Iterations: closestIters, Residual: closestRes}, nonConvergenceErr(spec, vA, vB, opts.MaxIterations)
	}
	// Leave the backend set to the converged branch.
	_ = setFixedFree(b, fixedProp, fixedVal, bestFree)
	return best, nil
}
