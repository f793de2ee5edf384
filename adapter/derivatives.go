package adapter

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/units"
)

// richardson is the shared finite-difference configuration for every
// numerical derivative the adapter takes: central differences with
// Richardson extrapolation, satisfying §4.C's "numerical, central
// Richardson" requirement for Cp and the general "(numerical)" note for
// Cv, W, Kappa, Alpha.
var richardson = &fd.Settings{
	Formula:    fd.Central,
	Richardson: &fd.RichardsonExtrap{},
}

// probeStep is the relative finite-difference step used to perturb
// temperature or pressure when taking a derivative on a cloned backend.
const probeStep = 1e-3

// Cp returns isobaric heat capacity: native if present, else
// dCp = dH/dT at constant P (§4.C), mixed by quality in the two-phase
// region (§3.4).
func (a *Adapter) Cp(tag units.Tag) float64 {
	if v, ok := a.twoPhaseCalorimetric(func(sub *Adapter) float64 { return sub.cpMolar() }); ok {
		return tag.FromBackend(v, a.mw())
	}
	return tag.FromBackend(a.cpMolar(), a.mw())
}

func (a *Adapter) cpMolar() float64 {
	if oc, ok := a.Backend.(backend.OptionalCp); ok {
		return oc.Cp()
	}
	cl, ok := a.Backend.(backend.Cloneable)
	if !ok {
		return math.NaN()
	}
	p := a.Backend.P()
	t := a.Backend.T()
	step := t * probeStep
	if step == 0 {
		step = probeStep
	}
	dHdT := fd.Derivative(func(tt float64) float64 {
		probe := cl.Clone()
		setter, ok := probe.(backend.SetterPT)
		if !ok {
			return math.NaN()
		}
		if err := setter.SetPT(p, tt); err != nil {
			return math.NaN()
		}
		return probe.H()
	}, t, &fd.Settings{Formula: fd.Central, Step: step, Richardson: richardson.Richardson})
	return dHdT
}

// Cv returns isochoric heat capacity: native if present, else dU/dT at
// constant volume (§4.C), mixed by quality in the two-phase region.
func (a *Adapter) Cv(tag units.Tag) float64 {
	if v, ok := a.twoPhaseCalorimetric(func(sub *Adapter) float64 { return sub.cvMolar() }); ok {
		return tag.FromBackend(v, a.mw())
	}
	return tag.FromBackend(a.cvMolar(), a.mw())
}

func (a *Adapter) cvMolar() float64 {
	if oc, ok := a.Backend.(backend.OptionalCv); ok {
		return oc.Cv()
	}
	cl, ok := a.Backend.(backend.Cloneable)
	if !ok {
		return math.NaN()
	}
	t := a.Backend.T()
	rho := a.Backend.Rho()
	step := t * probeStep
	if step == 0 {
		step = probeStep
	}
	dUdT := fd.Derivative(func(tt float64) float64 {
		probe := cl.Clone()
		setter, ok := probe.(backend.SetterDT)
		if !ok {
			return math.NaN()
		}
		if err := setter.SetRhoT(rho, tt); err != nil {
			return math.NaN()
		}
		return probe.U()
	}, t, &fd.Settings{Formula: fd.Central, Step: step, Richardson: richardson.Richardson})
	return dUdT
}

// dPdVAtT estimates (dP/dV)_T by central difference on a cloned backend,
// used by W and Kappa (§4.C).
func (a *Adapter) dPdVAtT() float64 {
	cl, ok := a.Backend.(backend.Cloneable)
	if !ok {
		return math.NaN()
	}
	t := a.Backend.T()
	rho := a.Backend.Rho()
	if rho == 0 {
		return math.NaN()
	}
	v0 := 1 / rho
	step := v0 * probeStep
	return fd.Derivative(func(v float64) float64 {
		probe := cl.Clone()
		setter, ok := probe.(backend.SetterDT)
		if !ok || v == 0 {
			return math.NaN()
		}
		if err := setter.SetRhoT(1/v, t); err != nil {
			return math.NaN()
		}
		return probe.P()
	}, v0, &fd.Settings{Formula: fd.Central, Step: step, Richardson: richardson.Richardson})
}

// W returns the speed of sound: native if present, else
// sqrt(V / (beta*MW)), beta = -(1/V)*(Cv/Cp)/(dP/dV)_T (§4.C). NaN in
// the two-phase region, per the spec's requirement that transport
// quantities be NaN there (§9).
func (a *Adapter) W() float64 {
	if ow, ok := a.Backend.(backend.OptionalSpeedOfSound); ok {
		return ow.W()
	}
	x := a.Backend.X()
	if !IsNaNf(x) && x > epsQuality && x < 1-epsQuality {
		return math.NaN()
	}
	v := a.V(units.Molar)
	cv := a.cvMolar()
	cp := a.cpMolar()
	dpdv := a.dPdVAtT()
	if v <= 0 || dpdv == 0 || IsNaNf(cv) || IsNaNf(cp) || IsNaNf(dpdv) {
		return math.NaN()
	}
	beta := -(1 / v) * (cv / cp) / dpdv
	if beta <= 0 {
		return math.NaN()
	}
	return math.Sqrt(v / (beta * a.mw()))
}

// Kappa returns isothermal compressibility: native if present, else
// -rho*(dV/dP)_T, computed as -rho / (dP/dV)_T (§4.C). Unit-invariant.
func (a *Adapter) Kappa() float64 {
	if ok2, ok := a.Backend.(backend.OptionalKappa); ok {
		return ok2.Kappa()
	}
	dpdv := a.dPdVAtT()
	rho := a.Backend.Rho()
	if rho == 0 || dpdv == 0 || IsNaNf(dpdv) {
		return math.NaN()
	}
	v := 1 / rho
	return -(1 / dpdv) / v
}

// Alpha returns the thermal expansion coefficient: native if present,
// else rho*(dV/dT)_P (§4.C). Unit-invariant.
func (a *Adapter) Alpha() float64 {
	if oa, ok := a.Backend.(backend.OptionalAlpha); ok {
		return oa.Alpha()
	}
	cl, ok := a.Backend.(backend.Cloneable)
	if !ok {
		return math.NaN()
	}
	p := a.Backend.P()
	t := a.Backend.T()
	rho := a.Backend.Rho()
	step := t * probeStep
	dVdT := fd.Derivative(func(tt float64) float64 {
		probe := cl.Clone()
		setter, ok := probe.(backend.SetterPT)
		if !ok {
			return math.NaN()
		}
		if err := setter.SetPT(p, tt); err != nil {
			return math.NaN()
		}
		r := probe.Rho()
		if r == 0 {
			return math.NaN()
		}
		return 1 / r
	}, t, &fd.Settings{Formula: fd.Central, Step: step, Richardson: richardson.Richardson})
	return rho * dVdT
}
