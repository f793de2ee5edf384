package flash

import (
	"math"

	thermocore "github.com/gothermo/thermocore"
	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/quantity"
)

// saturationBranch classifies a monotonic 1-D target against the
// saturated-liquid and saturated-vapor endpoints of the fixed isobar or
// isotherm (§4.D.2 step 2).
type saturationBranch int

const (
	branchSupercritical saturationBranch = iota
	branchLiquid
	branchVapor
	branchTwoPhase
)

// run1DMonotonic handles PH, PS, PU, TH, TS, TU when the backend lacks a
// native setter (§4.D.2): one of {P, T} is already known, the other is
// found by a bracketed 1-D root search on the residual
// target(P or T, free) - targetVal. The target is first classified
// against the saturated-liquid/vapor endpoints of the fixed isobar or
// isotherm; a target inside the two-phase dome is solved for vapor
// quality instead, since H, S and U are discontinuous across the
// saturation curve and bisecting the free P/T variable directly would
// settle on one saturated endpoint rather than the quality-interpolated
// state.
func run1DMonotonic(b backend.Contract, spec quantity.Spec, vA, vB float64, opts Options) (Result, error) {
	fixedProp, fixedVal, freeProp, targetProp, targetVal := fixedFreeVar(spec, vA, vB)
	floor, ceil := envelope(b, freeProp)

	branch, branchLo, branchHi, err := classifyBranch(b, fixedProp, fixedVal, targetProp, targetVal, floor, ceil)
	if err != nil {
		opts.Log.WithFields(fieldsFor(spec, vA, vB)).Warn("flash: saturated-endpoint classification failed, searching the full envelope")
		branch, branchLo, branchHi = branchSupercritical, floor, ceil
	}

	if branch == branchTwoPhase {
		return solveTwoPhaseQuality(b, fixedProp, fixedVal, targetProp, targetVal, spec, vA, vB, opts)
	}

	ranges := [][2]float64{{branchLo, branchHi}}
	if branch == branchLiquid && fixedProp == quantity.PropT {
		// §4.D.4: along an isotherm, H/S/U in the compressed liquid carry
		// a second-derivative inflection at low temperature. Split the
		// liquid branch around the target's inflection pressure and try
		// both sub-ranges, analogously to §4.D.3's density split.
		pInfl := inflectionPressure(targetProp, fixedVal, b.Tc(), b.Pc())
		if pInfl > branchLo && pInfl < branchHi {
			ranges = [][2]float64{{branchLo, pInfl}, {pInfl, branchHi}}
		}
	}

	residual := func(free float64) float64 {
		if err := setFixedFree(b, fixedProp, fixedVal, free); err != nil {
			return math.NaN()
		}
		return propertyAt(b, targetProp) - targetVal
	}

	var best Result
	var bestFree float64
	found := false
	// closest* track the smallest residual reached in any sub-range, so a
	// search that converges nowhere still leaves the backend at that point.
	closestRes, closestFree, closestIters := math.Inf(1), math.NaN(), 0
	for _, r := range ranges {
		guess := guessFree(b, fixedProp, fixedVal, freeProp, targetProp, targetVal, r[0], r[1])
		lo, hi, ok := expandBracket(residual, guess, r[0], r[1])
		if !ok {
			lo, hi = r[0], r[1]
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
		opts.Log.WithFields(fieldsFor(spec, vA, vB)).Warn("flash: 1-D solver did not converge, returning best iterate")
		if math.IsNaN(closestFree) {
			return Result{Converged: false}, nonConvergenceErr(spec, vA, vB, opts.MaxIterations)
		}
		_ = setFixedFree(b, fixedProp, fixedVal, closestFree)
		return Result{Converged: false, Iterations: closestIters, Residual: closestRes}, nonConvergenceErr(spec, vA, vB, opts.MaxIterations)
	}
	_ = setFixedFree(b, fixedProp, fixedVal, bestFree)
	return best, nil
}

// classifyBranch probes the saturated-liquid (X=0) and saturated-vapor
// (X=1) endpoints of the fixed isobar/isotherm via the backend's native
// SetPX/SetTX setters and classifies targetVal against them. A fixed
// value at or above the critical point skips classification entirely,
// since there is no saturation curve to straddle there.
func classifyBranch(b backend.Contract, fixedProp quantity.Property, fixedVal float64, targetProp quantity.Property, targetVal, floor, ceil float64) (saturationBranch, float64, float64, error) {
	if fixedProp == quantity.PropP && fixedVal >= b.Pc() {
		return branchSupercritical, floor, ceil, nil
	}
	if fixedProp == quantity.PropT && fixedVal >= b.Tc() {
		return branchSupercritical, floor, ceil, nil
	}

	var fLiq, fVap, satPoint float64
	if fixedProp == quantity.PropP {
		if err := b.SetPX(fixedVal, 0); err != nil {
			return branchSupercritical, floor, ceil, err
		}
		fLiq = propertyAt(b, targetProp)
		satPoint = b.T()
		if err := b.SetPX(fixedVal, 1); err != nil {
			return branchSupercritical, floor, ceil, err
		}
		fVap = propertyAt(b, targetProp)
	} else {
		if err := b.SetTX(fixedVal, 0); err != nil {
			return branchSupercritical, floor, ceil, err
		}
		fLiq = propertyAt(b, targetProp)
		satPoint = b.P()
		if err := b.SetTX(fixedVal, 1); err != nil {
			return branchSupercritical, floor, ceil, err
		}
		fVap = propertyAt(b, targetProp)
	}
	if math.IsNaN(fLiq) || math.IsNaN(fVap) {
		return branchSupercritical, floor, ceil, nil
	}

	switch {
	case targetVal <= fLiq:
		if fixedProp == quantity.PropP {
			return branchLiquid, floor, satPoint, nil
		}
		return branchLiquid, satPoint, ceil, nil
	case targetVal >= fVap:
		if fixedProp == quantity.PropP {
			return branchVapor, satPoint, ceil, nil
		}
		return branchVapor, floor, satPoint, nil
	default:
		return branchTwoPhase, 0, 0, nil
	}
}

// solveTwoPhaseQuality handles a target that falls between the saturated
// endpoints (§4.D.2 step 2): the free P/T variable is already pinned to
// the saturation curve at fixedVal, so the search is over vapor quality
// X in [0,1] instead.
func solveTwoPhaseQuality(b backend.Contract, fixedProp quantity.Property, fixedVal float64, targetProp quantity.Property, targetVal float64, spec quantity.Spec, vA, vB float64, opts Options) (Result, error) {
	residual := func(x float64) float64 {
		var err error
		if fixedProp == quantity.PropP {
			err = b.SetPX(fixedVal, x)
		} else {
			err = b.SetTX(fixedVal, x)
		}
		if err != nil {
			return math.NaN()
		}
		return propertyAt(b, targetProp) - targetVal
	}
	x, iters, converged := defaultRootFinder.FindRoot(residual, 0, 1, opts.Tolerance, opts.MaxIterations)
	res := residual(x)
	if !converged {
		opts.Log.WithFields(fieldsFor(spec, vA, vB)).Warn("flash: two-phase quality solver did not converge")
		return Result{Converged: false, Iterations: iters, Residual: res}, nonConvergenceErr(spec, vA, vB, iters)
	}
	return Result{Converged: true, Iterations: iters, Residual: res}, nil
}

// inflectionPressure approximates P_infl(T) for the §4.D.4 compressed-
// liquid split along an isotherm: a quadratic in reduced temperature,
// with coefficients fixed per target property (H, S or U each have a
// slightly different inflection locus), clamped by the caller to the
// branch's own bounds.
func inflectionPressure(targetProp quantity.Property, t, tc, pc float64) float64 {
	var coeff float64
	switch targetProp {
	case quantity.PropH:
		coeff = 0.35
	case quantity.PropS:
		coeff = 0.30
	case quantity.PropU:
		coeff = 0.32
	default:
		coeff = 0.30
	}
	tr := t / tc
	return pc * coeff * (1 + 2*tr - 2*tr*tr)
}

// envelope returns the backend's validity bounds for the free property.
func envelope(b backend.Contract, prop quantity.Property) (float64, float64) {
	if prop == quantity.PropP {
		return b.Pmin(), b.Pmax()
	}
	return b.Tmin(), b.Tmax()
}

// guessFree seeds the free-variable search (§4.D.2 step 1): a backend's
// backward-correlation oracle is tried first, then linear interpolation
// between the target property's values at the two range extrema, falling
// back to the midpoint only if both of those are unavailable.
func guessFree(b backend.Contract, fixedProp quantity.Property, fixedVal float64, freeProp, targetProp quantity.Property, targetVal, floor, ceil float64) float64 {
	if oracle, ok := b.(backend.OptionalGuess); ok {
		p, t, ok := oracle.GuessPT(fixedProp.String(), fixedVal, targetProp.String(), targetVal)
		if ok {
			if freeProp == quantity.PropP {
				return clampToRange(p, floor, ceil)
			}
			return clampToRange(t, floor, ceil)
		}
	}

	if err := setFixedFree(b, fixedProp, fixedVal, floor); err != nil {
		return (floor + ceil) / 2
	}
	fLow := propertyAt(b, targetProp)
	if err := setFixedFree(b, fixedProp, fixedVal, ceil); err != nil {
		return (floor + ceil) / 2
	}
	fHigh := propertyAt(b, targetProp)
	if math.IsNaN(fLow) || math.IsNaN(fHigh) || fHigh == fLow {
		return (floor + ceil) / 2
	}

	frac := (targetVal - fLow) / (fHigh - fLow)
	return clampToRange(floor+frac*(ceil-floor), floor, ceil)
}

func clampToRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func fieldsFor(spec quantity.Spec, vA, vB float64) map[string]interface{} {
	return map[string]interface{}{
		spec.A.String(): vA,
		spec.B.String(): vB,
	}
}

func nonConvergenceErr(spec quantity.Spec, vA, vB float64, iters int) error {
	return thermocore.NewError(thermocore.NonConvergence, "flash.Run",
		"solver exhausted its iteration budget without converging",
		map[string]float64{spec.A.String(): vA, spec.B.String(): vB, "iterations": float64(iters)})
}
