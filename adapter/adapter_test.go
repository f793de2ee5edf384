package adapter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gothermo/thermocore/adapter"
	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/units"
)

// idealGas is a minimal ideal-gas backend.Contract used to exercise the
// adapter's fallback identities in isolation from any real EOS.
type idealGas struct {
	t, p, x float64
	mw      float64
	tc, pc  float64
}

const idealR = 8.314

func (g *idealGas) SetPT(p, t float64) error { g.p, g.t, g.x = p, t, math.NaN(); return nil }
func (g *idealGas) SetPX(p, x float64) error { g.p, g.x = p, x; g.t = g.tc * 0.9; return nil }
func (g *idealGas) SetTX(t, x float64) error { g.t, g.x = t, x; g.p = g.pc * 0.9; return nil }
func (g *idealGas) SetRhoT(rho, t float64) error {
	g.t, g.x = t, math.NaN()
	g.p = rho * idealR * t
	return nil
}

func (g *idealGas) T() float64   { return g.t }
func (g *idealGas) P() float64   { return g.p }
func (g *idealGas) Rho() float64 { return g.p / (idealR * g.t) }
func (g *idealGas) X() float64   { return g.x }
func (g *idealGas) H() float64   { return 3.5 * idealR * g.t }
func (g *idealGas) S() float64   { return idealR * math.Log(g.t) }
func (g *idealGas) U() float64   { return 2.5 * idealR * g.t }

func (g *idealGas) MolarMass() float64 { return g.mw }
func (g *idealGas) Pc() float64        { return g.pc }
func (g *idealGas) Tc() float64        { return g.tc }
func (g *idealGas) Tmin() float64      { return 100 }
func (g *idealGas) Tmax() float64      { return 1000 }
func (g *idealGas) Pmin() float64      { return 1000 }
func (g *idealGas) Pmax() float64      { return 1e8 }

// Clone satisfies backend.Cloneable so the adapter can probe saturated
// endpoints and take numerical derivatives without perturbing g.
func (g *idealGas) Clone() backend.Contract {
	cp := *g
	return &cp
}

func newIdealGas() *idealGas {
	return &idealGas{p: 101325, t: 300, x: math.NaN(), mw: 0.018, tc: 647.1, pc: 2.2064e7}
}

func TestAdapter_IdentityFallbacks(t *testing.T) {
	g := newIdealGas()
	a := adapter.New(g)

	require.InDelta(t, 300, a.T(), 1e-9)
	require.InDelta(t, 101325, a.P(), 1e-9)

	z := a.Z()
	assert.InDelta(t, 1.0, z, 0.05, "ideal gas Z should be close to 1 at these conditions")

	v := a.V(units.Molar)
	assert.Greater(t, v, 0.0)

	gEnergy := a.G(units.Molar)
	assert.InDelta(t, g.H()-g.T()*g.S(), gEnergy, 1e-9)

	helm := a.AHelm(units.Molar)
	assert.InDelta(t, g.U()-g.T()*g.S(), helm, 1e-9)
}

func TestAdapter_MassUnitConversion(t *testing.T) {
	g := newIdealGas()
	a := adapter.New(g)

	hMolar := a.H(units.Molar)
	hMass := a.H(units.Mass)
	assert.InDelta(t, hMolar/g.mw, hMass, 1e-9)
}

func TestAdapter_Cv_NumericalDerivative(t *testing.T) {
	g := newIdealGas()
	a := adapter.New(g)

	cv := a.Cv(units.Molar)
	// Ideal gas Cv = 2.5*R, exact by construction of H/U above.
	assert.InDelta(t, 2.5*idealR, cv, 1e-2)
}
