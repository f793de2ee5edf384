package flash

import "math"

// RootFinder brackets and refines a root of a scalar residual function.
// The engine's own hand-rolled bracketed-bisection/Brent hybrid
// satisfies this by default (§4.D's notes calls out that pulling in a
// dedicated root-finding package is unwarranted for a single scalar
// residual already bracketed by the caller). The solvers always call the
// package-level defaultRootFinder; Options has no field for substituting
// another implementation.
type RootFinder interface {
	// FindRoot returns x in [lo, hi] with f(x) ~ 0, assuming f(lo) and
	// f(hi) have opposite signs.
	FindRoot(f func(float64) float64, lo, hi, tol float64, maxIter int) (x float64, iterations int, converged bool)
}

// bisectionBrent is the default RootFinder: bisection with an inverse
// quadratic interpolation step attempted each iteration (Brent's method,
// simplified), falling back to bisection whenever the interpolated point
// would fall outside the current bracket.
type bisectionBrent struct{}

func (bisectionBrent) FindRoot(f func(float64) float64, lo, hi, tol float64, maxIter int) (float64, int, bool) {
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo, 0, true
	}
	if fhi == 0 {
		return hi, 0, true
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return lo, 0, false
	}

	a, b, fa, fb := lo, hi, flo, fhi
	c, fc := a, fa
	for i := 0; i < maxIter; i++ {
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, a
			fa, fb, fc = fb, fc, fa
		}
		tolAct := 2*math.SmallestNonzeroFloat64 + tol*math.Abs(b)
		mid := (c - b) / 2
		if math.Abs(mid) <= tolAct || fb == 0 {
			return b, i, true
		}

		var step float64
		if math.Abs(fa) > math.Abs(fb) && a != c {
			// Inverse quadratic interpolation using three points.
			s := fb / fa
			p, q := mid*s, 1-s
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2*p < math.Min(3*mid*q-math.Abs(tolAct*q), math.Abs(mid*q)) {
				step = p / q
			} else {
				step = mid
			}
		} else {
			step = mid
		}

		a, fa = b, fb
		if math.Abs(step) > tolAct {
			b += step
		} else if mid > 0 {
			b += tolAct
		} else {
			b -= tolAct
		}
		fb = f(b)
		if math.Signbit(fb) == math.Signbit(fc) {
			c, fc = a, fa
		}
	}
	return b, maxIter, false
}

var defaultRootFinder RootFinder = bisectionBrent{}

// expandBracket widens [lo, hi] outward until f changes sign or the
// bracket exceeds the [floor, ceil] envelope, per §4.D.2's "outward
// expanding bracket" step.
func expandBracket(f func(float64) float64, guess, floor, ceil float64) (lo, hi float64, ok bool) {
	step := guess * 0.1
	if step == 0 {
		step = 0.1
	}
	lo, hi = guess-step, guess+step
	flo, fhi := f(lo), f(hi)
	for i := 0; i < 60; i++ {
		if math.Signbit(flo) != math.Signbit(fhi) {
			return lo, hi, true
		}
		step *= 2
		lo, hi = guess-step, guess+step
		if lo < floor {
			lo = floor
		}
		if hi > ceil {
			hi = ceil
		}
		flo, fhi = f(lo), f(hi)
		if lo <= floor && hi >= ceil {
			break
		}
	}
	return lo, hi, math.Signbit(flo) != math.Signbit(fhi)
}
