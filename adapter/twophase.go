package adapter

import "github.com/gothermo/thermocore/backend"

// epsQuality is the quality window treated as "genuinely two-phase"
// rather than a saturated endpoint (0 or 1 exactly, or numerical dust
// around them).
const epsQuality = 1e-9

// twoPhaseExtensive mixes an extensive property by quality when the
// backend's current state is strictly inside the two-phase dome
// (§3.4: "linear interpolation in quality between the saturated liquid
// and saturated vapor endpoints"). It returns ok=false when the state is
// not two-phase, letting the caller fall back to the backend's direct
// reading. Auxiliary probes run on a clone so the primary state is left
// untouched (§4.C "copy-on-branch discipline", §9).
func (a *Adapter) twoPhaseExtensive(prop string) (float64, bool) {
	x := a.Backend.X()
	if IsNaNf(x) || x <= epsQuality || x >= 1-epsQuality {
		return 0, false
	}
	cl, ok := a.Backend.(backend.Cloneable)
	if !ok {
		// No cloning capability: cannot probe the endpoints without
		// perturbing the caller's state, so report the raw (unmixed)
		// backend value rather than silently mixing nothing.
		return 0, false
	}
	p := a.Backend.P()

	liqClone := cl.Clone()
	vapClone := cl.Clone()

	setX, okSet := liqClone.(backend.SetterPX)
	if !okSet {
		return 0, false
	}
	if err := setX.SetPX(p, 0); err != nil {
		return 0, false
	}
	if err := vapClone.(backend.SetterPX).SetPX(p, 1); err != nil {
		return 0, false
	}

	liqVal, liqOK := extensiveValue(liqClone, prop)
	vapVal, vapOK := extensiveValue(vapClone, prop)
	if !liqOK || !vapOK {
		return 0, false
	}

	switch prop {
	case propV:
		// Reciprocal rule: linear in specific volume, i.e. linear in 1/rho.
		vLiq, vVap := 1/liqVal, 1/vapVal
		return (1-x)*vLiq + x*vVap, true
	default:
		return (1-x)*liqVal + x*vapVal, true
	}
}

// extensiveValue reads H, S, U, or (as rho, the caller inverts) V off a
// backend instance already set to a saturated endpoint.
func extensiveValue(b backend.Contract, prop string) (float64, bool) {
	switch prop {
	case propH:
		return b.H(), true
	case propS:
		return b.S(), true
	case propU:
		return b.U(), true
	case propV:
		rho := b.Rho()
		if rho == 0 {
			return 0, false
		}
		return rho, true
	default:
		return 0, false
	}
}

// IsNaNf reports whether x is NaN without importing math at every call site.
func IsNaNf(x float64) bool { return x != x }

// twoPhaseCalorimetric mixes Cp or Cv by quality across the saturated
// endpoints, per §3.4's inclusion of Cp/Cv among the quantities mixed
// linearly in the two-phase region. eval is the single-phase Cp/Cv
// evaluator (numerical derivative), applied to each saturated endpoint's
// own Adapter so the recursion terminates (X is exactly 0 or 1 there).
func (a *Adapter) twoPhaseCalorimetric(eval func(*Adapter) float64) (float64, bool) {
	x := a.Backend.X()
	if IsNaNf(x) || x <= epsQuality || x >= 1-epsQuality {
		return 0, false
	}
	cl, ok := a.Backend.(backend.Cloneable)
	if !ok {
		return 0, false
	}
	p := a.Backend.P()
	liqClone := cl.Clone()
	vapClone := cl.Clone()
	setLiq, okL := liqClone.(backend.SetterPX)
	setVap, okV := vapClone.(backend.SetterPX)
	if !okL || !okV {
		return 0, false
	}
	if err := setLiq.SetPX(p, 0); err != nil {
		return 0, false
	}
	if err := setVap.SetPX(p, 1); err != nil {
		return 0, false
	}
	liqAdapter := &Adapter{Backend: liqClone, Log: a.Log}
	vapAdapter := &Adapter{Backend: vapClone, Log: a.Log}
	liqVal := eval(liqAdapter)
	vapVal := eval(vapAdapter)
	if IsNaNf(liqVal) || IsNaNf(vapVal) {
		return 0, false
	}
	return (1-x)*liqVal + x*vapVal, true
}
