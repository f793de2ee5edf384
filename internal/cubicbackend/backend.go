package cubicbackend

import (
	"math"

	"github.com/sirupsen/logrus"

	thermocore "github.com/gothermo/thermocore"
	"github.com/gothermo/thermocore/abbott"
	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/liquids"
	"github.com/gothermo/thermocore/virial"
)

const (
	tRef = 298.15
	pRef = 101325.0
	// dtStep is the finite-difference step used for da/dT in the
	// departure-function property model.
	dtStep = 0.05
)

// Backend is a backend.Contract built on a generalized cubic equation of
// state (§4.B). It is the engine's own reference/test substance model,
// not a public surface: application code supplies its own backend.
type Backend struct {
	Species Species
	R       float64
	log     logrus.FieldLogger

	t, p, v, x float64
}

// New builds a Backend for sp at a default ambient state.
func New(sp Species) *Backend {
	b := &Backend{Species: sp, R: thermocore.RSI, log: logrus.StandardLogger()}
	_ = b.SetPT(pRef, tRef)
	return b
}

// WithLogger attaches a structured logger used for the generalized
// correlation cross-checks performed in SetPT and SetTX.
func (b *Backend) WithLogger(log logrus.FieldLogger) *Backend {
	b.log = log
	return b
}

func (b *Backend) eosCfg() *cfg {
	return &cfg{
		Type:     familyFor(b.Species.Family),
		T:        b.t,
		P:        b.p,
		Tc:       b.Species.Tc,
		Pc:       b.Species.Pc,
		Acentric: b.Species.Acentric,
		R:        b.R,
	}
}

// pickStableRoot chooses between the liquid-like and vapor-like roots of
// a three-root solution by comparing fugacity coefficients: the stable
// phase has the lower ln(phi) (lower Gibbs energy at fixed T, P).
func (b *Backend) pickStableRoot(c *cfg, roots []float64, volRes *volumeResult) float64 {
	if len(roots) == 1 {
		return roots[0]
	}
	vl, vv := roots[0], roots[len(roots)-1]
	rt := c.R * c.T
	aDim := volRes.A * c.P / (rt * rt)
	bDim := volRes.B * c.P / rt
	zl, zv := c.P*vl/rt, c.P*vv/rt
	if zl <= bDim || zv <= bDim {
		return vv
	}
	phiL := logFugacityCoeff(c, zl, aDim, bDim)
	phiV := logFugacityCoeff(c, zv, aDim, bDim)
	if phiL < phiV {
		return vl
	}
	return vv
}

// SetPT solves the cubic EOS for molar volume at (p, t) and picks the
// thermodynamically stable root when more than one exists (§4.B).
func (b *Backend) SetPT(p, t float64) error {
	c := &cfg{Type: familyFor(b.Species.Family), T: t, P: p, Tc: b.Species.Tc, Pc: b.Species.Pc, Acentric: b.Species.Acentric, R: b.R}
	volRes, err := solveForVolume(c)
	if err != nil {
		return err
	}
	roots := volRes.realRoots()
	if len(roots) == 0 {
		return thermocore.NewError(thermocore.NonConvergence, "cubicbackend.SetPT", "no real volume roots", map[string]float64{"P": p, "T": t})
	}
	b.p, b.t = p, t
	b.v = b.pickStableRoot(c, roots, volRes)
	b.x = math.NaN()
	b.checkVaporVirial(c, b.v)
	return nil
}

// checkVaporVirial cross-checks the compressibility factor at low
// reduced pressure against the generalized two-term virial correlation
// (abbott.B0/B1), which is expected to agree with the cubic EOS away
// from the critical region; large disagreement is logged but never
// changes the EOS answer.
func (b *Backend) checkVaporVirial(c *cfg, v float64) {
	if b.log == nil {
		return
	}
	tr, pr := c.T/c.Tc, c.P/c.Pc
	if pr <= 0 || pr > 0.5 || tr <= 0 {
		return
	}
	b0, err := abbott.B0(tr)
	if err != nil {
		return
	}
	b1, err := abbott.B1(tr)
	if err != nil {
		return
	}
	// Dimensional second virial coefficient (m^3/mol) from the
	// generalized correlation, then the 2-term virial Z via the
	// teacher's bar-scaled virial.CompressibilityTwoTerm.
	bDim := (b0 + c.Acentric*b1) * c.R * c.Tc / c.Pc
	pBar, rBar := c.P/1e5, c.R/1e5
	zVirial, err := virial.CompressibilityTwoTerm(c.T, pBar, rBar, bDim)
	if err != nil {
		return
	}
	zEOS := c.P * v / (c.R * c.T)
	if rel := math.Abs(zEOS-zVirial) / math.Max(zVirial, 1e-9); rel > 0.2 {
		b.log.WithFields(logrus.Fields{
			"species": b.Species.Name, "Pr": pr, "Tr": tr,
			"z_eos": zEOS, "z_virial": zVirial, "relative_delta": rel,
		}).Debug("cubicbackend: compressibility factor diverges from the generalized virial correlation")
	}
}

// SetTX sets temperature and vapor quality: pressure is the saturation
// pressure at t (Backend.Psat), and molar volume is the quality-weighted
// mix of the saturated liquid and vapor roots.
func (b *Backend) SetTX(t, x float64) error {
	c := &cfg{Type: familyFor(b.Species.Family), T: t, Tc: b.Species.Tc, Pc: b.Species.Pc, Acentric: b.Species.Acentric, R: b.R, Guess: b.Species.antoineGuess(t)}
	psat, err := saturationPressure(c, t)
	if err != nil {
		return err
	}
	c.P = psat
	volRes, err := solveForVolume(c)
	if err != nil {
		return err
	}
	roots := volRes.realRoots()
	if len(roots) < 2 {
		return thermocore.NewError(thermocore.NonConvergence, "cubicbackend.SetTX", "could not resolve two-phase roots", map[string]float64{"T": t})
	}
	vl, vv := roots[0], roots[len(roots)-1]
	b.t, b.p, b.x = t, psat, x
	b.v = (1-x)*vl + x*vv
	b.checkLiquidVolume(t, vl)
	return nil
}

// checkLiquidVolume cross-checks the cubic EOS's saturated liquid root
// against the Rackett correlation (liquids.Vsat) and logs a warning on
// large disagreement; it never overrides the EOS result.
func (b *Backend) checkLiquidVolume(t, vl float64) {
	if b.log == nil || b.Species.Vc <= 0 || b.Species.Zc <= 0 {
		return
	}
	vRackett, err := liquids.Vsat(b.Species.Vc, b.Species.Zc, t/b.Species.Tc)
	if err != nil || vRackett <= 0 {
		return
	}
	if rel := math.Abs(vl-vRackett) / vRackett; rel > 0.5 {
		b.log.WithFields(logrus.Fields{
			"species":        b.Species.Name,
			"T":              t,
			"eos_vl":         vl,
			"rackett_vsat":   vRackett,
			"relative_delta": rel,
		}).Warn("cubicbackend: saturated liquid volume diverges from the Rackett correlation")
	}
}

// SetPX is the mirror of SetTX: temperature is found by a bracketed
// search for the T at which Psat(T) = p (§4.D.1's native DT/PX family).
func (b *Backend) SetPX(p, x float64) error {
	lo, hi := 150.0, b.Species.Tc
	target := func(t float64) float64 {
		c := &cfg{Type: familyFor(b.Species.Family), T: t, Tc: b.Species.Tc, Pc: b.Species.Pc, Acentric: b.Species.Acentric, R: b.R, Guess: b.Species.antoineGuess(t)}
		ps, err := saturationPressure(c, t)
		if err != nil {
			return math.NaN()
		}
		return ps - p
	}
	t, ok := bisect(target, lo, hi, 1e-8, 100)
	if !ok {
		return thermocore.NewError(thermocore.NonConvergence, "cubicbackend.SetPX", "saturation temperature search did not converge", map[string]float64{"P": p})
	}
	return b.SetTX(t, x)
}

func bisect(f func(float64) float64, lo, hi, tol float64, maxIter int) (float64, bool) {
	flo, fhi := f(lo), f(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || math.Signbit(flo) == math.Signbit(fhi) {
		return 0, false
	}
	for i := 0; i < maxIter; i++ {
		mid := (lo + hi) / 2
		fm := f(mid)
		if math.IsNaN(fm) {
			return 0, false
		}
		if math.Abs(fm) < tol || (hi-lo) < tol {
			return mid, true
		}
		if math.Signbit(fm) == math.Signbit(flo) {
			lo, flo = mid, fm
		} else {
			hi, fhi = mid, fm
		}
	}
	return (lo + hi) / 2, true
}

func (b *Backend) T() float64   { return b.t }
func (b *Backend) P() float64   { return b.p }
func (b *Backend) Rho() float64 { return 1 / b.v }
func (b *Backend) X() float64   { return b.x }

// H returns molar enthalpy as an ideal-gas reference plus a cubic-EOS
// departure function (§4.B): H = H_ig(T) + H_dep(T, V).
func (b *Backend) H() float64 {
	return b.Species.Cp.integral(tRef, b.t) + b.departureH()
}

// S returns molar entropy, ideal-gas reference (including the pressure
// term) plus the departure function.
func (b *Backend) S() float64 {
	sIg := b.Species.Cp.logIntegral(tRef, b.t) - b.R*math.Log(b.p/pRef)
	return sIg + b.departureS()
}

// U is the standard H - PV relation; no separate departure model needed.
func (b *Backend) U() float64 {
	return b.H() - b.p*b.v
}

func (b *Backend) departureH() float64 {
	c := b.eosCfg()
	a, bb := aAndB(c)
	z := b.p * b.v / (b.R * b.t)
	params := c.Type.Params()
	sigma, epsilon := params.Sigma, params.Epsilon

	dadT := (aAt(c, b.t+dtStep) - aAt(c, b.t-dtStep)) / (2 * dtStep)

	rt := b.R * b.t
	diff := epsilon - sigma
	if math.Abs(diff) < 1e-9 {
		return rt*(z-1) - a/b.v
	}
	logTerm := math.Log((b.v + sigma*bb) / (b.v + epsilon*bb))
	return rt*(z-1) + (b.t*dadT-a)/(bb*diff)*logTerm
}

func (b *Backend) departureS() float64 {
	c := b.eosCfg()
	_, bb := aAndB(c)
	z := b.p * b.v / (b.R * b.t)
	params := c.Type.Params()
	sigma, epsilon := params.Sigma, params.Epsilon

	dadT := (aAt(c, b.t+dtStep) - aAt(c, b.t-dtStep)) / (2 * dtStep)

	base := b.R * math.Log(z-b.p*bb/(b.R*b.t))
	diff := epsilon - sigma
	if math.Abs(diff) < 1e-9 {
		return base
	}
	logTerm := math.Log((b.v + sigma*bb) / (b.v + epsilon*bb))
	return base + (dadT/(bb*diff))*logTerm
}

func aAt(c *cfg, t float64) float64 {
	probe := *c
	probe.T = t
	a, _ := aAndB(&probe)
	return a
}

func (b *Backend) MolarMass() float64 { return b.Species.MW }
func (b *Backend) Pc() float64        { return b.Species.Pc }
func (b *Backend) Tc() float64        { return b.Species.Tc }
func (b *Backend) Tmin() float64      { return 150 }
func (b *Backend) Tmax() float64      { return 2 * b.Species.Tc }
func (b *Backend) Pmin() float64      { return 1 }
func (b *Backend) Pmax() float64      { return 100 * b.Species.Pc }

// Clone satisfies backend.Cloneable so the adapter and the flash engine
// can probe auxiliary states without perturbing b.
func (b *Backend) Clone() backend.Contract {
	cp := *b
	return &cp
}

// Psat satisfies backend.OptionalSaturation with the exact fugacity-
// equality correlation rather than the adapter's generic (T, X=1/2) probe.
func (b *Backend) Psat(t float64) (float64, error) {
	c := &cfg{Type: familyFor(b.Species.Family), T: t, Tc: b.Species.Tc, Pc: b.Species.Pc, Acentric: b.Species.Acentric, R: b.R, Guess: b.Species.antoineGuess(t)}
	if t > b.Species.Tc {
		return math.NaN(), nil
	}
	return saturationPressure(c, t)
}

// Tsat mirrors Psat via the same bisection used by SetPX.
func (b *Backend) Tsat(p float64) (float64, error) {
	if p > b.Species.Pc {
		return math.NaN(), nil
	}
	target := func(t float64) float64 {
		c := &cfg{Type: familyFor(b.Species.Family), T: t, Tc: b.Species.Tc, Pc: b.Species.Pc, Acentric: b.Species.Acentric, R: b.R, Guess: b.Species.antoineGuess(t)}
		ps, err := saturationPressure(c, t)
		if err != nil {
			return math.NaN()
		}
		return ps - p
	}
	t, ok := bisect(target, 150, b.Species.Tc, 1e-8, 100)
	if !ok {
		return math.NaN(), thermocore.NewError(thermocore.NonConvergence, "cubicbackend.Tsat", "saturation temperature search did not converge", map[string]float64{"P": p})
	}
	return t, nil
}

// GuessPT is the backward-correlation oracle of §4.D.2 step 1 and §4.D.5:
// a fast, approximate (P, T) for a spec-pair value, built from the
// species' ideal-gas Cp correlation (H, S, U) and Antoine correlation
// (saturation pressure), refined afterward by the flash solver's own
// root search rather than trusted outright.
func (b *Backend) GuessPT(prop1 string, v1 float64, prop2 string, v2 float64) (float64, float64, bool) {
	vals := map[string]float64{prop1: v1, prop2: v2}
	t, tKnown := vals["T"]
	p, pKnown := vals["P"]

	if !tKnown {
		switch {
		case hasKey(vals, "H"):
			t, tKnown = b.Species.Cp.invertH(tRef, vals["H"]), true
		case hasKey(vals, "S"):
			t, tKnown = b.Species.Cp.invertS(tRef, vals["S"], 25), true
		case hasKey(vals, "U"):
			t, tKnown = b.Species.Cp.invertU(tRef, vals["U"], b.R, 25), true
		}
	}

	if !pKnown {
		switch {
		case tKnown && hasKey(vals, "Rho"):
			p, pKnown = vals["Rho"]*b.R*t, true
		case tKnown:
			if guess := b.Species.antoineGuess(t); guess > 0 {
				p, pKnown = guess, true
			} else {
				p, pKnown = b.Species.Pc*0.5, true
			}
		}
	}

	if !tKnown || !pKnown || t <= 0 || p <= 0 {
		return 0, 0, false
	}
	return p, t, true
}

func hasKey(m map[string]float64, k string) bool {
	_, ok := m[k]
	return ok
}

var (
	_ backend.Contract           = (*Backend)(nil)
	_ backend.Cloneable          = (*Backend)(nil)
	_ backend.OptionalSaturation = (*Backend)(nil)
	_ backend.OptionalGuess      = (*Backend)(nil)
)
