// Package adapter wraps a backend.Contract and presents the full
// property surface the facade needs, filling in whatever the backend
// does not compute natively via thermodynamic identities or numerical
// derivatives (§4.C), and applying the molar/mass unit bridge (§4.C.1).
// The adapter caches nothing across calls; the backend is the sole
// authoritative state (§3.3).
package adapter

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/quantity"
	"github.com/gothermo/thermocore/units"
)

// Adapter presents derived properties for a single backend instance.
// It is the generalization of the teacher's substance.Substance methods
// (LeeKesler, Vsat, ReducedDensity: each tries a correlation and returns
// a typed result or an error) to the full §4.C fallback table.
type Adapter struct {
	Backend backend.Contract
	Log     logrus.FieldLogger
}

// New builds an Adapter with a default text-formatting logger, mirroring
// the injectable-logger pattern used across the example pack rather than
// reaching for the global logrus logger.
func New(b backend.Contract) *Adapter {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	return &Adapter{Backend: b, Log: log}
}

func (a *Adapter) mw() float64 { return a.Backend.MolarMass() }

// T returns the current temperature; unit-invariant (§4.C.1).
func (a *Adapter) T() float64 { return a.Backend.T() }

// P returns the current pressure; unit-invariant.
func (a *Adapter) P() float64 { return a.Backend.P() }

// X returns the current vapor quality; unit-invariant.
func (a *Adapter) X() float64 { return a.Backend.X() }

// Rho returns density converted into tag units.
func (a *Adapter) Rho(tag units.Tag) float64 {
	return tag.DensityFromBackend(a.Backend.Rho(), a.mw())
}

// H returns enthalpy converted into tag units, mixing across the
// two-phase dome when applicable (§3.4).
func (a *Adapter) H(tag units.Tag) float64 {
	if v, ok := a.twoPhaseExtensive(propH); ok {
		return tag.FromBackend(v, a.mw())
	}
	return tag.FromBackend(a.Backend.H(), a.mw())
}

// S returns entropy converted into tag units.
func (a *Adapter) S(tag units.Tag) float64 {
	if v, ok := a.twoPhaseExtensive(propS); ok {
		return tag.FromBackend(v, a.mw())
	}
	return tag.FromBackend(a.Backend.S(), a.mw())
}

// U returns internal energy converted into tag units.
func (a *Adapter) U(tag units.Tag) float64 {
	if v, ok := a.twoPhaseExtensive(propU); ok {
		return tag.FromBackend(v, a.mw())
	}
	return tag.FromBackend(a.Backend.U(), a.mw())
}

// V returns molar/mass volume. Native accessor if present, else 1/Rho
// (§4.C fallback table), mixed by the reciprocal rule in two-phase
// (§3.4: "density uses the reciprocal rule, linear in specific volume").
func (a *Adapter) V(tag units.Tag) float64 {
	if vv, ok := a.twoPhaseExtensive(propV); ok {
		return tag.FromBackend(vv, a.mw())
	}
	if ov, ok := a.Backend.(backend.OptionalVolume); ok {
		return tag.FromBackend(ov.V(), a.mw())
	}
	rho := a.Backend.Rho()
	if rho == 0 {
		return math.NaN()
	}
	return tag.FromBackend(1/rho, a.mw())
}

// G returns Gibbs energy: native if present, else H - T*S (§4.C).
func (a *Adapter) G(tag units.Tag) float64 {
	if og, ok := a.Backend.(backend.OptionalGibbs); ok {
		return tag.FromBackend(og.G(), a.mw())
	}
	h := a.Backend.H()
	s := a.Backend.S()
	t := a.Backend.T()
	return tag.FromBackend(h-t*s, a.mw())
}

// AHelm returns Helmholtz energy: native if present, else U - T*S (§4.C).
func (a *Adapter) AHelm(tag units.Tag) float64 {
	if oa, ok := a.Backend.(backend.OptionalHelmholtz); ok {
		return tag.FromBackend(oa.A(), a.mw())
	}
	u := a.Backend.U()
	s := a.Backend.S()
	t := a.Backend.T()
	return tag.FromBackend(u-t*s, a.mw())
}

// Z returns the compressibility factor: native if present, else
// P / (rho * R * T) (§4.C). Unit-invariant.
func (a *Adapter) Z() float64 {
	if oz, ok := a.Backend.(backend.OptionalCompressibility); ok {
		return oz.Z()
	}
	rho := a.Backend.Rho()
	t := a.Backend.T()
	if rho == 0 || t == 0 {
		return math.NaN()
	}
	const R = 8.314
	return a.Backend.P() / (rho * R * t)
}

// MW returns the substance's molar mass, unit-invariant by definition.
func (a *Adapter) MW() float64 { return a.mw() }

const (
	propH = "H"
	propS = "S"
	propU = "U"
	propV = "V"
)
