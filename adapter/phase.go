package adapter

import (
	"math"

	thermocore "github.com/gothermo/thermocore"
	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/quantity"
)

// epsPhase is the tolerance epsilon used by the §3.4 region predicates.
const epsPhase = 1e-6

// Psat returns the saturation pressure at temperature t: the backend's
// own correlation if present, else NaN above Tc, else probe a clone at
// (T, X=1/2) and read P back (§4.C). The primary backend state is left
// untouched (copy-on-branch discipline, §9).
func (a *Adapter) Psat(t float64) (float64, error) {
	if os, ok := a.Backend.(backend.OptionalSaturation); ok {
		return os.Psat(t)
	}
	if t > a.Backend.Tc() {
		return math.NaN(), nil
	}
	cl, ok := a.Backend.(backend.Cloneable)
	if !ok {
		return math.NaN(), thermocore.NewError(thermocore.UnsupportedSpecification, "Psat", "backend is not cloneable", nil)
	}
	probe := cl.Clone()
	setter, ok := probe.(backend.SetterTX)
	if !ok {
		return math.NaN(), thermocore.NewError(thermocore.UnsupportedSpecification, "Psat", "backend lacks SetTX", nil)
	}
	if err := setter.SetTX(t, 0.5); err != nil {
		return math.NaN(), err
	}
	return probe.P(), nil
}

// Tsat returns the saturation temperature at pressure p, the mirror of
// Psat using a (P, X=1/2) probe (§4.C).
func (a *Adapter) Tsat(p float64) (float64, error) {
	if os, ok := a.Backend.(backend.OptionalSaturation); ok {
		return os.Tsat(p)
	}
	if p > a.Backend.Pc() {
		return math.NaN(), nil
	}
	cl, ok := a.Backend.(backend.Cloneable)
	if !ok {
		return math.NaN(), thermocore.NewError(thermocore.UnsupportedSpecification, "Tsat", "backend is not cloneable", nil)
	}
	probe := cl.Clone()
	setter, ok := probe.(backend.SetterPX)
	if !ok {
		return math.NaN(), thermocore.NewError(thermocore.UnsupportedSpecification, "Tsat", "backend lacks SetPX", nil)
	}
	if err := setter.SetPX(p, 0.5); err != nil {
		return math.NaN(), err
	}
	return probe.T(), nil
}

// Phase classifies the backend's current (P, T) state per §3.4.
func (a *Adapter) Phase() quantity.Phase {
	if op, ok := a.Backend.(backend.OptionalPhase); ok {
		return parsePhaseName(op.PhaseName())
	}
	p, t := a.Backend.P(), a.Backend.T()
	pc, tc := a.Backend.Pc(), a.Backend.Tc()

	if p > pc && t > tc {
		if math.Abs(p-pc) < epsPhase*pc && math.Abs(t-tc) < epsPhase*tc {
			return quantity.PhaseCritical
		}
		return quantity.PhaseSupercritical
	}

	psat, err := a.Psat(t)
	if err == nil && !IsNaNf(psat) {
		if math.Abs(p-psat) < epsPhase*math.Max(psat, 1) {
			return quantity.PhaseTwoPhase
		}
		if p > psat+epsPhase*math.Max(psat, 1) {
			return quantity.PhaseLiquid
		}
	}

	tsat, err := a.Tsat(p)
	if err == nil && !IsNaNf(tsat) && t > tsat+epsPhase*math.Max(tsat, 1) {
		return quantity.PhaseGas
	}

	return quantity.PhaseUnknown
}

func parsePhaseName(name string) quantity.Phase {
	switch name {
	case "Liquid":
		return quantity.PhaseLiquid
	case "Gas":
		return quantity.PhaseGas
	case "TwoPhase":
		return quantity.PhaseTwoPhase
	case "Critical":
		return quantity.PhaseCritical
	case "Supercritical":
		return quantity.PhaseSupercritical
	default:
		return quantity.PhaseUnknown
	}
}
