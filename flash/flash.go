// Package flash implements the flash solver (§4.D): given any admissible
// specification pair, it drives the backend to the matching state by
// forwarding to a native setter when the backend supports it, or by a
// one- or two-dimensional root search against the backend's native
// (P, T) pair otherwise.
package flash

import (
	"math"

	"github.com/sirupsen/logrus"

	thermocore "github.com/gothermo/thermocore"
	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/quantity"
)

// Options configures solver tolerances and diagnostics (§4.D, §4.D.5).
type Options struct {
	// Tolerance is the convergence epsilon (§4.D default: sqrt(eps)).
	Tolerance float64
	// MaxIterations bounds both the 1-D and 2-D solvers (§4.D.5 default 100).
	MaxIterations int
	// Log receives solver diagnostics (bracket expansion, step-multiplier
	// halving, non-convergence warnings).
	Log logrus.FieldLogger
}

// DefaultOptions mirrors §4.D's stated defaults.
func DefaultOptions() Options {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	return Options{
		Tolerance:     thermocore.Eps,
		MaxIterations: thermocore.MaxIterations,
		Log:           log,
	}
}

// Result reports what the solver actually achieved (§4.D.6): flash never
// silently fails, so a non-convergent search still returns the
// best-residual iterate together with Converged=false.
type Result struct {
	Converged  bool
	Iterations int
	Residual   float64
}

// Run sets b's state to satisfy the specification (s1=v1, s2=v2) to
// Options.Tolerance, dispatching per §4.D.1. Values are taken in the
// backend's native SI molar units. Fluid.Flash passes its arguments
// through unchanged, so specification values are always molar; the
// units.Tag conversion applies only to properties read back through the
// adapter.
func Run(b backend.Contract, s1 quantity.Property, v1 float64, s2 quantity.Property, v2 float64, opts Options) (Result, error) {
	if math.IsNaN(v1) || math.IsInf(v1, 0) || math.IsNaN(v2) || math.IsInf(v2, 0) {
		return Result{}, thermocore.NewError(thermocore.InvalidInput, "flash.Run", "non-finite input value",
			map[string]float64{s1.String(): v1, s2.String(): v2})
	}

	spec, err := quantity.NewSpec(s1, s2)
	if err != nil {
		return Result{}, thermocore.Wrap(thermocore.InvalidInput, "flash.Run", map[string]float64{s1.String(): v1, s2.String(): v2}, err)
	}
	// Re-align values with the normalized (possibly V->Rho-folded, possibly
	// reordered) spec members.
	val := map[quantity.Property]float64{s1: v1, s2: v2}
	if s1 == quantity.PropV {
		val[quantity.PropRho] = 1 / v1
		delete(val, quantity.PropV)
	}
	if s2 == quantity.PropV {
		val[quantity.PropRho] = 1 / v2
		delete(val, quantity.PropV)
	}
	vA, vB := val[spec.A], val[spec.B]

	if opts.Tolerance == 0 {
		opts = withDefaults(opts)
	}

	if err := rangeCheck(b, spec, vA, vB); err != nil {
		return Result{}, err
	}

	if ok, err := tryNativeSetter(b, spec, vA, vB); ok {
		if err != nil {
			return Result{}, thermocore.Wrap(thermocore.UnsupportedSpecification, "flash.Run",
				map[string]float64{spec.A.String(): vA, spec.B.String(): vB}, err)
		}
		return Result{Converged: true, Iterations: 0, Residual: 0}, nil
	}

	switch {
	case isMonotonic1D(spec):
		return run1DMonotonic(b, spec, vA, vB, opts)
	case isDensity1D(spec):
		return run1DDensity(b, spec, vA, vB, opts)
	case isNewton2D(spec):
		return run2DNewton(b, spec, vA, vB, opts)
	default:
		return Result{}, thermocore.NewError(thermocore.UnsupportedSpecification, "flash.Run",
			"no dispatch route for this specification", map[string]float64{spec.A.String(): vA, spec.B.String(): vB})
	}
}

func withDefaults(opts Options) Options {
	d := DefaultOptions()
	if opts.Tolerance == 0 {
		opts.Tolerance = d.Tolerance
	}
	if opts.MaxIterations == 0 {
		opts.MaxIterations = d.MaxIterations
	}
	if opts.Log == nil {
		opts.Log = d.Log
	}
	return opts
}

// rangeCheck enforces §4.D.6: out-of-range inputs raise OutOfRange naming
// the offending variables, checked against the envelope the backend
// itself reports.
func rangeCheck(b backend.Contract, spec quantity.Spec, vA, vB float64) error {
	check := func(p quantity.Property, v float64) error {
		switch p {
		case quantity.PropP:
			if v < b.Pmin() || v > b.Pmax() {
				return thermocore.NewError(thermocore.OutOfRange, "flash.Run", "pressure outside backend validity range",
					map[string]float64{"P": v, "Pmin": b.Pmin(), "Pmax": b.Pmax()})
			}
		case quantity.PropT:
			if v < b.Tmin() || v > b.Tmax() {
				return thermocore.NewError(thermocore.OutOfRange, "flash.Run", "temperature outside backend validity range",
					map[string]float64{"T": v, "Tmin": b.Tmin(), "Tmax": b.Tmax()})
			}
		case quantity.PropX:
			if v < 0 || v > 1 {
				return thermocore.NewError(thermocore.OutOfRange, "flash.Run", "vapor quality outside [0,1]",
					map[string]float64{"X": v})
			}
		}
		return nil
	}
	if err := check(spec.A, vA); err != nil {
		return err
	}
	return check(spec.B, vB)
}

// tryNativeSetter forwards directly to the backend's native setter for
// spec when available, no iteration (§4.D.1 first bullet). ok is false
// when no matching setter exists, signalling the caller to fall through
// to a solver.
func tryNativeSetter(b backend.Contract, spec quantity.Spec, vA, vB float64) (ok bool, err error) {
	p := func(prop quantity.Property) float64 {
		if spec.A == prop {
			return vA
		}
		return vB
	}
	switch {
	case isSpec(spec, quantity.PropP, quantity.PropT):
		return true, b.SetPT(p(quantity.PropP), p(quantity.PropT))
	case isSpec(spec, quantity.PropP, quantity.PropX):
		return true, b.SetPX(p(quantity.PropP), p(quantity.PropX))
	case isSpec(spec, quantity.PropT, quantity.PropX):
		return true, b.SetTX(p(quantity.PropT), p(quantity.PropX))
	case isSpec(spec, quantity.PropP, quantity.PropH):
		if s, ok := b.(backend.SetterPH); ok {
			return true, s.SetPH(p(quantity.PropP), p(quantity.PropH))
		}
	case isSpec(spec, quantity.PropP, quantity.PropS):
		if s, ok := b.(backend.SetterPS); ok {
			return true, s.SetPS(p(quantity.PropP), p(quantity.PropS))
		}
	case isSpec(spec, quantity.PropP, quantity.PropU):
		if s, ok := b.(backend.SetterPU); ok {
			return true, s.SetPU(p(quantity.PropP), p(quantity.PropU))
		}
	case isSpec(spec, quantity.PropP, quantity.PropRho):
		if s, ok := b.(backend.SetterDP); ok {
			return true, s.SetRhoP(p(quantity.PropRho), p(quantity.PropP))
		}
	case isSpec(spec, quantity.PropT, quantity.PropRho):
		if s, ok := b.(backend.SetterDT); ok {
			return true, s.SetRhoT(p(quantity.PropRho), p(quantity.PropT))
		}
	case isSpec(spec, quantity.PropRho, quantity.PropS):
		if s, ok := b.(backend.SetterDS); ok {
			return true, s.SetRhoS(p(quantity.PropRho), p(quantity.PropS))
		}
	case isSpec(spec, quantity.PropRho, quantity.PropH):
		if s, ok := b.(backend.SetterDH); ok {
			return true, s.SetRhoH(p(quantity.PropRho), p(quantity.PropH))
		}
	case isSpec(spec, quantity.PropRho, quantity.PropU):
		if s, ok := b.(backend.SetterDU); ok {
			return true, s.SetRhoU(p(quantity.PropRho), p(quantity.PropU))
		}
	case isSpec(spec, quantity.PropH, quantity.PropS):
		if s, ok := b.(backend.SetterHS); ok {
			return true, s.SetHS(p(quantity.PropH), p(quantity.PropS))
		}
	case isSpec(spec, quantity.PropT, quantity.PropS):
		if s, ok := b.(backend.SetterTS); ok {
			return true, s.SetTS(p(quantity.PropT), p(quantity.PropS))
		}
	}
	return false, nil
}

func isSpec(s quantity.Spec, a, b quantity.Property) bool {
	return (s.A == a && s.B == b) || (s.A == b && s.B == a)
}

// isMonotonic1D is §4.D.1's second bullet: PH, PS, PU, TH, TS, TU.
func isMonotonic1D(s quantity.Spec) bool {
	return isSpec(s, quantity.PropP, quantity.PropH) ||
		isSpec(s, quantity.PropP, quantity.PropS) ||
		isSpec(s, quantity.PropP, quantity.PropU) ||
		isSpec(s, quantity.PropT, quantity.PropH) ||
		isSpec(s, quantity.PropT, quantity.PropS) ||
		isSpec(s, quantity.PropT, quantity.PropU)
}

// isDensity1D is §4.D.1's third bullet: PD/PV, TD/TV (already folded to Rho).
func isDensity1D(s quantity.Spec) bool {
	return isSpec(s, quantity.PropP, quantity.PropRho) || isSpec(s, quantity.PropT, quantity.PropRho)
}

// isNewton2D is §4.D.1's fourth bullet: HV, UV, DS, DH, DU, SU, plus HS
// when the backend has no native SetHS.
func isNewton2D(s quantity.Spec) bool {
	return isSpec(s, quantity.PropH, quantity.PropRho) ||
		isSpec(s, quantity.PropU, quantity.PropRho) ||
		isSpec(s, quantity.PropRho, quantity.PropS) ||
		isSpec(s, quantity.PropRho, quantity.PropH) ||
		isSpec(s, quantity.PropRho, quantity.PropU) ||
		isSpec(s, quantity.PropS, quantity.PropU) ||
		isSpec(s, quantity.PropH, quantity.PropS)
}

// fixedFreeVar returns, for a 1-D spec with one member in {P, T}, the
// fixed property/value and the free property to search over.
func fixedFreeVar(spec quantity.Spec, vA, vB float64) (fixedProp quantity.Property, fixedVal float64, freeProp quantity.Property, targetProp quantity.Property, targetVal float64) {
	if spec.A == quantity.PropP || spec.A == quantity.PropT {
		fixedProp, fixedVal = spec.A, vA
		targetProp, targetVal = spec.B, vB
	} else {
		fixedProp, fixedVal = spec.B, vB
		targetProp, targetVal = spec.A, vA
	}
	if fixedProp == quantity.PropP {
		freeProp = quantity.PropT
	} else {
		freeProp = quantity.PropP
	}
	return
}

func propertyAt(b backend.Contract, prop quantity.Property) float64 {
	switch prop {
	case quantity.PropT:
		return b.T()
	case quantity.PropP:
		return b.P()
	case quantity.PropRho:
		return b.Rho()
	case quantity.PropH:
		return b.H()
	case quantity.PropS:
		return b.S()
	case quantity.PropU:
		return b.U()
	case quantity.PropX:
		return b.X()
	default:
		return math.NaN()
	}
}

func setFixedFree(b backend.Contract, fixedProp quantity.Property, fixedVal, freeVal float64) error {
	if fixedProp == quantity.PropP {
		return b.SetPT(fixedVal, freeVal)
	}
	return b.SetPT(freeVal, fixedVal)
}
