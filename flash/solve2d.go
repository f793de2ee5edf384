package flash

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/quantity"
)

// run2DNewton handles HV, UV, DS, DH, DU, SU, and HS-without-native-setter
// (§4.D.5): neither target maps directly to P or T, so the engine solves
// a damped 2x2 Newton iteration in (P, T) against a finite-difference
// Jacobian, using the backend's native PT setter at every trial point.
//
// Each step is scaled by a multiplier that starts at 1.0: a step that
// worsens the L1 residual |f1|+|f2| is rejected (the iterate reverts and
// the multiplier halves, so the next trial retries the same direction
// more cautiously), while an improving step is accepted and resets the
// multiplier to 1.0 for the next Newton direction. The search terminates
// on |f1|+|f2| < tolerance, on the multiplier falling below tolerance, or
// on the iteration budget, and always reports the best-residual iterate
// seen (§4.D.6), not merely the last one.
func run2DNewton(b backend.Contract, spec quantity.Spec, vA, vB float64, opts Options) (Result, error) {
	target := map[quantity.Property]float64{spec.A: vA, spec.B: vB}
	propsInOrder := make([]quantity.Property, 0, 2)
	for prop := range target {
		propsInOrder = append(propsInOrder, prop)
	}

	pMin, pMax := b.Pmin(), b.Pmax()
	tMin, tMax := b.Tmin(), b.Tmax()

	evalAt := func(p, t float64) []float64 {
		if err := b.SetPT(p, t); err != nil {
			return []float64{math.NaN(), math.NaN()}
		}
		return []float64{
			propertyAt(b, propsInOrder[0]) - target[propsInOrder[0]],
			propertyAt(b, propsInOrder[1]) - target[propsInOrder[1]],
		}
	}

	p0, t0 := initialGuess2D(b, propsInOrder, target, pMin, pMax, tMin, tMax)
	x := []float64{p0, t0}
	r := evalAt(x[0], x[1])

	best := append([]float64(nil), x...)
	bestRes := r
	bestNorm := absSum(r)

	multiplier := 1.0
	converged := bestNorm < opts.Tolerance
	iters := 0

	for ; !converged && iters < opts.MaxIterations; iters++ {
		if IsNaNSlice(r) {
			break
		}

		j, ok := jacobian2D(evalAt, x, r)
		if !ok {
			opts.Log.WithFields(fieldsFor(spec, vA, vB)).Warn("flash: singular Jacobian in 2-D Newton solve")
			break
		}
		var jInv mat.Dense
		if err := jInv.Inverse(j); err != nil {
			opts.Log.WithFields(fieldsFor(spec, vA, vB)).Warn("flash: singular Jacobian in 2-D Newton solve")
			break
		}
		rVec := mat.NewVecDense(2, r)
		var stepVec mat.VecDense
		stepVec.MulVec(&jInv, rVec)
		dp, dt := -stepVec.AtVec(0), -stepVec.AtVec(1)

		accepted := false
		for multiplier >= opts.Tolerance {
			trialP := projectBox(x[0]+multiplier*dp, pMin, pMax)
			trialT := projectBox(x[1]+multiplier*dt, tMin, tMax)
			trialR := evalAt(trialP, trialT)
			if !IsNaNSlice(trialR) && absSum(trialR) < absSum(r) {
				x = []float64{trialP, trialT}
				r = trialR
				multiplier = 1.0
				accepted = true
				if n := absSum(r); n < bestNorm {
					bestNorm = n
					best = append([]float64(nil), x...)
					bestRes = r
				}
				break
			}
			multiplier /= 2
		}
		if !accepted {
			opts.Log.WithFields(fieldsFor(spec, vA, vB)).Warn("flash: 2-D Newton step multiplier collapsed without improving the residual")
			break
		}
		converged = absSum(r) < opts.Tolerance
	}

	// Leave the backend set to the best iterate observed, not necessarily
	// the last one evaluated (§4.D.6).
	_ = evalAt(best[0], best[1])
	res := absSum(bestRes)

	if !converged {
		opts.Log.WithFields(fieldsFor(spec, vA, vB)).Warn("flash: 2-D Newton solver did not converge, returning best iterate")
		return Result{Converged: false, Iterations: iters, Residual: res}, nonConvergenceErr(spec, vA, vB, iters)
	}
	return Result{Converged: true, Iterations: iters, Residual: res}, nil
}

// initialGuess2D seeds the Newton search from a backend's backward-
// correlation oracle when available, else from the (P, T) domain
// midpoint (§4.D.5).
func initialGuess2D(b backend.Contract, propsInOrder []quantity.Property, target map[quantity.Property]float64, pMin, pMax, tMin, tMax float64) (float64, float64) {
	if oracle, ok := b.(backend.OptionalGuess); ok {
		p, t, ok := oracle.GuessPT(
			propsInOrder[0].String(), target[propsInOrder[0]],
			propsInOrder[1].String(), target[propsInOrder[1]],
		)
		if ok {
			return clampToRange(p, pMin, pMax), clampToRange(t, tMin, tMax)
		}
	}
	return (pMin + pMax) / 2, (tMin + tMax) / 2
}

// jacobian2D builds a forward-difference Jacobian of evalAt at x, then
// restores the backend to the unperturbed point so the caller's next
// residual call starts clean.
func jacobian2D(evalAt func(p, t float64) []float64, x, r []float64) (*mat.Dense, bool) {
	hp := x[0] * 1e-4
	if hp == 0 {
		hp = 1
	}
	ht := x[1] * 1e-4
	if ht == 0 {
		ht = 1
	}

	rPPlus := evalAt(x[0]+hp, x[1])
	rTPlus := evalAt(x[0], x[1]+ht)
	_ = evalAt(x[0], x[1])

	if IsNaNSlice(rPPlus) || IsNaNSlice(rTPlus) {
		return nil, false
	}

	j := mat.NewDense(2, 2, []float64{
		(rPPlus[0] - r[0]) / hp, (rTPlus[0] - r[0]) / ht,
		(rPPlus[1] - r[1]) / hp, (rTPlus[1] - r[1]) / ht,
	})
	return j, true
}

func projectBox(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absSum(v []float64) float64 {
	s := 0.0
	for _, vi := range v {
		s += math.Abs(vi)
	}
	return s
}

func IsNaNSlice(v []float64) bool {
	for _, vi := range v {
		if vi != vi {
			return true
		}
	}
	return false
}
